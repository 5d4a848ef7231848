// Package importers converts third-party password manager exports into the
// vault's canonical cipher schema.
//
// Every vendor is a table-driven loginMapping over the shared normalizer
// helpers. Importers are pure: Parse never blocks, holds no shared state and
// may run concurrently with other importers (see Run).
package importers

import (
	"errors"
	"fmt"
	"sort"
)

// Format names a supported export format.
type Format string

const (
	FormatAvira    Format = "aviracsv"
	FormatBlur     Format = "blurcsv"
	FormatMeldium  Format = "meldiumcsv"
	FormatChrome   Format = "chromecsv"
	FormatFirefox  Format = "firefoxcsv"
	FormatKeePassX Format = "keepassxcsv"
)

var ErrUnknownFormat = errors.New("unknown import format")

// Importer parses one export into a Result.
type Importer interface {
	Parse(data string) Result
}

var registry = map[Format]Importer{
	FormatAvira:    aviraMapping,
	FormatBlur:     blurMapping,
	FormatMeldium:  meldiumMapping,
	FormatChrome:   chromeMapping,
	FormatFirefox:  firefoxMapping,
	FormatKeePassX: keepassxMapping,
}

// New returns the importer for f.
func New(f Format) (Importer, error) {
	imp, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return imp, nil
}

// Formats lists the supported formats in name order.
func Formats() []Format {
	out := make([]Format, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
