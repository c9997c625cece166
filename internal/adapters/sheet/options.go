// Package sheet reads and writes roster tables as spreadsheet files.
package sheet

import "strings"

// Option applies a configuration option to Load and Save.
type Option func(*options)

type options struct {
	sheet   string
	aliases map[string][]string
}

// WithSheet selects the xlsx worksheet; the first one is used when empty.
func WithSheet(name string) Option {
	return func(o *options) {
		o.sheet = strings.TrimSpace(name)
	}
}

// WithColumnAliases adds header names accepted for a canonical column, e.g.
// WithColumnAliases("score", "Points", "Mark").
func WithColumnAliases(column string, aliases ...string) Option {
	return func(o *options) {
		for _, a := range aliases {
			if a = normalizeHeader(a); a != "" {
				o.aliases[column] = append(o.aliases[column], a)
			}
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		aliases: map[string][]string{
			"name":   {"name", "имя"},
			"score":  {"score", "балл"},
			"status": {"status", "статус"},
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// normalizeHeader also drops the byte order mark spreadsheet tools put in
// front of the first header of UTF-8 CSV exports.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
