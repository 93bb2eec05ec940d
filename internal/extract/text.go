package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fromText decodes a text file. UTF-8 is assumed first; files saved by older
// tools fall back to Windows-1252 and then Latin-1.
func fromText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data)), nil
	}
	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err == nil {
			return strings.TrimSpace(string(decoded)), nil
		}
	}
	return "", fmt.Errorf("could not decode text file with any supported encoding")
}
