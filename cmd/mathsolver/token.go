package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mathsolver/internal/service"
)

func newTokenCmd(cfgFile *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token for the mutating API endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}

			tokens := service.NewTokenService(cfg.API)
			token, expiry, err := tokens.Issue(name)
			if err != nil {
				return err
			}

			fmt.Println(token)
			fmt.Printf("expires %s\n", expiry.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "operator", "operator name embedded in the token")
	return cmd
}
