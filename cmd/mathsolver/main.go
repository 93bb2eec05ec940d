// Command mathsolver watches a GitHub repository for uploaded math problems,
// solves them, publishes solutions, and emails the operator.
package main

import (
	"log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
