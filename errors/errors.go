// Package errors defines the terminal errors reported while parsing schemas
// and extracting coordinates from documents. Each one ends its call outright:
// no partial result ever accompanies an error.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Location points at a position in the offending source text.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SchemaParseError reports schema text that does not parse as a schema
// document. No index is produced.
type SchemaParseError struct {
	Err       error
	Locations []Location
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("graphql: parse schema: %s", e.Err)
}

func (e *SchemaParseError) Unwrap() error { return e.Err }

// DocumentParseError reports document text that does not parse as an
// executable document. No coordinates are produced.
type DocumentParseError struct {
	Err       error
	Locations []Location
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("graphql: parse document: %s", e.Err)
}

func (e *DocumentParseError) Unwrap() error { return e.Err }

// SubscriptionNotSupportedError reports a subscription operation in an
// otherwise well-formed document. The whole extraction call fails, discarding
// anything already gathered from sibling operations.
type SubscriptionNotSupportedError struct {
	Operation string // operation name, empty for anonymous operations
}

func (e *SubscriptionNotSupportedError) Error() string {
	if e.Operation == "" {
		return "graphql: schema is not configured to execute subscription"
	}
	return fmt.Sprintf("graphql: schema is not configured to execute subscription %q", e.Operation)
}

// WrapSchemaParse wraps a parser error, carrying over its source locations.
func WrapSchemaParse(err error) *SchemaParseError {
	return &SchemaParseError{Err: err, Locations: locations(err)}
}

// WrapDocumentParse wraps a parser error, carrying over its source locations.
func WrapDocumentParse(err error) *DocumentParseError {
	return &DocumentParseError{Err: err, Locations: locations(err)}
}

func locations(err error) []Location {
	var gqlErr *gqlerror.Error
	if !stderrors.As(err, &gqlErr) {
		return nil
	}
	locs := make([]Location, 0, len(gqlErr.Locations))
	for _, l := range gqlErr.Locations {
		locs = append(locs, Location{Line: l.Line, Column: l.Column})
	}
	return locs
}
