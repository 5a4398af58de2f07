package m3u8

/*
 This file defines functions related to playlist generation.
*/

import (
	"bytes"
	"strings"
)

// encodeLines writes each tag line as it was read, followed by its URI line.
func encodeLines(lines []*TagLine) *bytes.Buffer {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line.Raw)
		if line.URILine != "" {
			buf.WriteRune('\n')
			buf.WriteString(line.URILine)
		}
		buf.WriteRune('\n')
	}
	return &buf
}

// String renders the attribute list in its canonical form. Values that were
// quoted are quoted again and positional values are written without a name.
func (a Attributes) String() string {
	var b strings.Builder
	for i, attr := range a {
		if i > 0 {
			b.WriteRune(',')
		}
		if !strings.HasPrefix(attr.Key, unnamedPrefix) {
			b.WriteString(attr.Key)
			b.WriteRune('=')
		}
		if attr.Quoted {
			writeQuoted(&b, attr.Val)
		} else {
			b.WriteString(attr.Val)
		}
	}
	return b.String()
}

// String renders the tag line from its name and attributes.
func (t *TagLine) String() string {
	if len(t.Attrs) == 0 {
		return "#" + t.Name
	}
	return "#" + t.Name + ":" + t.Attrs.String()
}

func writeQuoted(b *strings.Builder, value string) {
	b.WriteRune('"')
	b.WriteString(value)
	b.WriteRune('"')
}
