package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// charsetReader wires encoding/xml's CharsetReader hook to
// golang.org/x/text/encoding/charmap so declared non-UTF-8 encodings decode
// correctly instead of producing mojibake.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "":
		return input, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	if enc, ok := charmapByName(charset); ok {
		return enc.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("parser: unsupported charset %q", charset)
}

func charmapByName(name string) (encoding.Encoding, bool) {
	switch strings.ToLower(name) {
	case "iso-8859-2":
		return charmap.ISO8859_2, true
	case "iso-8859-15":
		return charmap.ISO8859_15, true
	}
	return nil, false
}
