package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/graph-tools/coordinates/errors"
	"github.com/graph-tools/coordinates/internal/extract"
	"github.com/graph-tools/coordinates/internal/index"
)

func setup(t *testing.T, schemaText, documentText string) (index.TypeIndex, *ast.QueryDocument) {
	t.Helper()
	schemaDoc, err := parser.ParseSchema(&ast.Source{Name: "schema", Input: schemaText})
	require.NoError(t, err)
	queryDoc, err := parser.ParseQuery(&ast.Source{Name: "document", Input: documentText})
	require.NoError(t, err)
	return index.Build(schemaDoc), queryDoc
}

func TestSubscriptionDiscardsEarlierCoordinates(t *testing.T) {
	idx, doc := setup(t,
		`type Query { ping: String }`,
		`
		{ ping }
		subscription { tick }
		`,
	)

	coords, err := extract.Coordinates(idx, doc)
	require.Error(t, err)
	var subErr *errors.SubscriptionNotSupportedError
	assert.ErrorAs(t, err, &subErr)
	assert.Nil(t, coords)
}

func TestMutuallyRecursiveFragmentsTerminate(t *testing.T) {
	idx, doc := setup(t,
		`
		type Query { human: Human }
		type Human { name: String, friend: Human }
		`,
		`
		{ human { ...a } }
		fragment a on Human {
			name
			friend { ...b }
		}
		fragment b on Human {
			friend { ...a }
		}
		`,
	)

	coords, err := extract.Coordinates(idx, doc)
	require.NoError(t, err)
	assert.Contains(t, coords, "Human.name")
	assert.Contains(t, coords, "Human.friend")
	assert.Contains(t, coords, "Query.human")
}

func TestSameFragmentFromSiblingSpreads(t *testing.T) {
	idx, doc := setup(t,
		`
		type Query { a: Human, b: Human }
		type Human { name: String }
		`,
		`
		{
			a { ...names }
			b { ...names }
		}
		fragment names on Human { name }
		`,
	)

	coords, err := extract.Coordinates(idx, doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{
		"Query.a":    {},
		"Query.b":    {},
		"Human.name": {},
	}, coords)
}

func TestEmptyDocumentYieldsEmptySet(t *testing.T) {
	idx, doc := setup(t,
		`type Query { ping: String }`,
		`fragment unused on Query { ping }`,
	)

	coords, err := extract.Coordinates(idx, doc)
	require.NoError(t, err)
	assert.Empty(t, coords)
}
