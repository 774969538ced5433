package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/redline/model"
)

// Signature returns a coarse fingerprint used only to align element
// sequences, never to detect fine-grained differences. The fields folded in
// are the ones that should keep two elements from being paired at all:
// kind, named style, bullet shape, and text for a paragraph; dimensions for
// a table; kind and non-volatile attributes for a special element.
func Signature(el model.Element) string {
	switch e := el.(type) {
	case *model.Paragraph:
		var b strings.Builder
		b.WriteString("p|")
		b.WriteString(e.Style.Named.String())
		b.WriteByte('|')
		if e.Bullet != nil {
			if e.Bullet.Ordered {
				b.WriteString(fmt.Sprintf("o%d", e.Bullet.Nesting))
			} else {
				b.WriteString(fmt.Sprintf("u%d", e.Bullet.Nesting))
			}
		} else {
			b.WriteByte('-')
		}
		b.WriteByte('|')
		b.WriteString(e.Text())
		return b.String()
	case *model.Table:
		return fmt.Sprintf("t|%dx%d", e.RowCount(), e.ColCount())
	case *model.SpecialElement:
		return "s|" + e.Kind.String() + "|" + attrsKey(e.Attrs)
	default:
		return "?"
	}
}

// attrsKey renders an attribute map in sorted key order so signatures are
// deterministic.
func attrsKey(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(attrs[k])
	}
	return b.String()
}
