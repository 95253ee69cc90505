package parser

import (
	"sync"

	"golang.org/x/net/html"
)

// htmlEntities is encoding/xml's Decoder.Entity table extended with every
// named HTML entity x/net/html knows about (nbsp, eacute, hellip, ...), so
// entity references that XML doesn't define but HTML does still resolve to
// their Unicode codepoint instead of failing to parse.
var (
	htmlEntitiesOnce sync.Once
	htmlEntities     map[string]string
)

func entityTable() map[string]string {
	htmlEntitiesOnce.Do(func() {
		htmlEntities = make(map[string]string, len(html.Entity))
		for name, r := range html.Entity {
			// encoding/xml already understands the five XML built-ins;
			// leave those to it so well-formedness checks still apply.
			switch name {
			case "amp;", "lt;", "gt;", "quot;", "apos;":
				continue
			}
			htmlEntities[trimSemicolon(name)] = string(r)
		}
	})
	return htmlEntities
}

func trimSemicolon(name string) string {
	if len(name) > 0 && name[len(name)-1] == ';' {
		return name[:len(name)-1]
	}
	return name
}
