// Package parser turns wire command arguments from the chart control
// protocol into domain types. Structural problems return wrapped
// errors; cosmetic fields fall back to defaults with a warning.
package parser

import (
	"github.com/rs/zerolog"
)

// Parser parses command argument lists.
type Parser struct {
	logger zerolog.Logger
}

// New creates a Parser.
func New(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}
