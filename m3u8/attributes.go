package m3u8

/*
 This file defines the tokenizer for tag lines and attribute lists.
*/

import (
	"strconv"
	"strings"
)

// UnnamedKey returns the synthesized key of the i-th positional value of
// an attribute list: UNNAMED0, UNNAMED1 and so on.
func UnnamedKey(i int) string {
	return unnamedPrefix + strconv.Itoa(i)
}

// Get returns the value of the last attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Key == key {
			return a[i].Val, true
		}
	}
	return "", false
}

// Value returns the value of the last attribute named key or an empty string.
func (a Attributes) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Has reports whether an attribute named key is present.
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Keys returns the distinct attribute names in order of first appearance.
func (a Attributes) Keys() []string {
	seen := make(map[string]bool, len(a))
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		if seen[attr.Key] {
			continue
		}
		seen[attr.Key] = true
		keys = append(keys, attr.Key)
	}
	return keys
}

// Len returns the number of attributes, duplicates included.
func (a Attributes) Len() int {
	return len(a)
}

// DecodeAttributes decodes an attribute list, the part of a tag line after
// the first ':'. Values without a name are stored under UnnamedKey keys in
// left-to-right order. Commas and equal signs inside double quotes are
// literal. Unbalanced quotes are tolerated: the rest of the list is read as
// quoted text.
func DecodeAttributes(list string) Attributes {
	var (
		attrs     Attributes
		word      strings.Builder
		name      string
		named     bool // an '=' was seen in the current item
		inQuote   bool
		wasQuoted bool
		dirty     bool // the current item is not empty
		unnamed   int
	)
	commit := func(last bool) {
		switch {
		case named:
			attrs = append(attrs, Attribute{Key: name, Val: word.String(), Quoted: wasQuoted})
		case last && !dirty:
			// nothing follows the final comma
		default:
			attrs = append(attrs, Attribute{Key: UnnamedKey(unnamed), Val: word.String(), Quoted: wasQuoted})
			unnamed++
		}
		word.Reset()
		name, named, wasQuoted, dirty = "", false, false, false
	}

	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			wasQuoted = true
			dirty = true
		case inQuote:
			word.WriteByte(c)
		case c == '=' && !named:
			// later '=' belong to the value, e.g. URI=http://host/p?a=b
			name = word.String()
			word.Reset()
			named = true
			wasQuoted = false
			dirty = true
		case c == ',':
			commit(false)
		default:
			word.WriteByte(c)
			dirty = true
		}
	}
	commit(true)
	return attrs
}

// ParseTagLine splits a tag line into its name and attribute list.
// A line without ':' is a bare tag with no attributes. The line is expected
// to start with '#'; anything else is read as a tag name verbatim.
func ParseTagLine(line string) *TagLine {
	t := &TagLine{Raw: line}
	body := strings.TrimPrefix(line, "#")
	name, list, found := strings.Cut(body, ":")
	t.Name = name
	if !found {
		return t
	}
	t.Attrs = DecodeAttributes(list)
	if uri, ok := t.Attrs.Get("URI"); ok {
		t.URI = uri
	}
	return t
}

// isTagLine reports whether the line is an HLS tag line.
func isTagLine(line string) bool {
	return strings.HasPrefix(line, "#EXT")
}

// attachURI associates a URI line with the tag line.
func (t *TagLine) attachURI(uri string) {
	t.URILine = uri
	t.URI = uri
}
