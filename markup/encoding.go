package markup

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// encodeBytes transcodes a rendered Unicode string to the named output
// encoding, mirroring the parser package's charmap-based charsetReader but
// in the opposite direction.
func encodeBytes(s, name string) ([]byte, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return []byte(s), nil
	}
	enc, ok := outputCharmap(name)
	if !ok {
		return nil, fmt.Errorf("markup: unsupported output encoding %q", name)
	}
	return enc.NewEncoder().Bytes([]byte(s))
}

func outputCharmap(name string) (encoding.Encoding, bool) {
	switch strings.ToLower(name) {
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, true
	case "windows-1252", "cp1252":
		return charmap.Windows1252, true
	case "iso-8859-2":
		return charmap.ISO8859_2, true
	case "iso-8859-15":
		return charmap.ISO8859_15, true
	}
	return nil, false
}
