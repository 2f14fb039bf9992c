// Package ingest loads activity documents: a mapping of category to a
// mapping of activity name to quantity, read from JSON or YAML.
package ingest

import (
	"path/filepath"
	"strings"
)

// Format identifies the encoding of an activity document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Label returns the name used in user-facing diagnostics.
func (f Format) Label() string {
	if f == FormatYAML {
		return "YAML"
	}
	return "JSON"
}

// ParseFormat maps a user-supplied format name to a Format.
// Unknown or empty names return "" so callers can fall back to detection.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return ""
	}
}

// FormatFromPath picks the format from the file extension; JSON is the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Field is one key of an Object together with its decoded value.
type Field struct {
	Name  string
	Value any
}

// Object is a decoded mapping that keeps the document's key order.
// Values are Object, []any, float64, string, bool or nil.
type Object []Field

// Lookup returns the value stored under name.
func (o Object) Lookup(name string) (any, bool) {
	for _, f := range o {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// set replaces an existing key in place or appends a new one. A repeated
// key keeps its first position and its last value.
func (o Object) set(name string, value any) Object {
	for i := range o {
		if o[i].Name == name {
			o[i].Value = value
			return o
		}
	}
	return append(o, Field{Name: name, Value: value})
}

// Keys returns the object's keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, f := range o {
		keys = append(keys, f.Name)
	}
	return keys
}

// Document is a parsed activity document. Entries are the top-level
// categories in document order; their values are left for the analyzer to
// validate so shape errors stay scoped to one category.
type Document struct {
	Source  string
	Format  Format
	Entries Object
}

// Len returns the number of top-level entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// IsEmpty reports whether the document has no entries.
func (d *Document) IsEmpty() bool { return d.Len() == 0 }
