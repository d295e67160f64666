// Package coordinates extracts schema coordinates — canonical "Type.field"
// and bare "Type" identifiers — referenced by GraphQL documents, given a
// parsed schema. It supports tooling that tracks field-level usage,
// deprecation or coverage across a corpus of queries without executing them.
package coordinates

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/graph-tools/coordinates/errors"
	"github.com/graph-tools/coordinates/internal/extract"
	"github.com/graph-tools/coordinates/internal/index"
)

// Schema is an indexed GraphQL schema. It is immutable once built: a single
// Schema serves any number of concurrent ExtractCoordinates calls without
// locking.
type Schema struct {
	index index.TypeIndex
}

// ParseSchema parses schema text and builds the reusable type index. It
// returns a *errors.SchemaParseError when the text does not parse as a schema
// document. A schema that declares no root types, or no object types at all,
// is legal input.
func ParseSchema(schemaText string) (*Schema, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: "schema", Input: schemaText})
	if err != nil {
		return nil, errors.WrapSchemaParse(err)
	}
	return &Schema{index: index.Build(doc)}, nil
}

// MustParseSchema calls ParseSchema and panics on failure. Intended for tests
// and program initialization with trusted schema text.
func MustParseSchema(schemaText string) *Schema {
	s, err := ParseSchema(schemaText)
	if err != nil {
		panic(err)
	}
	return s
}

// ExtractCoordinates parses documentText and returns every schema coordinate
// the document references, deduplicated and in no particular order. Callers
// needing determinism should sort.
//
// It returns a *errors.DocumentParseError when the text does not parse as an
// executable document, and a *errors.SubscriptionNotSupportedError when any
// operation in the document is a subscription. Both outcomes are
// all-or-nothing: no partial coordinate list accompanies an error.
func (s *Schema) ExtractCoordinates(documentText string) ([]string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "document", Input: documentText})
	if err != nil {
		return nil, errors.WrapDocumentParse(err)
	}
	set, err := extract.Coordinates(s.index, doc)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for coord := range set {
		out = append(out, coord)
	}
	return out, nil
}
