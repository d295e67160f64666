package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graph-tools/coordinates"
	"github.com/graph-tools/coordinates/corpus"
)

const scanSchema = `
type Query {
	human: Human
}
type Human {
	name: String
	email: String
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanCountsDocumentsPerCoordinate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "q1.graphql", `{ human { name } }`)
	writeFile(t, dir, "q2.graphql", `{ human { name email } }`)
	writeFile(t, dir, "nested/q3.graphql", `{ human { email } }`)

	schema := coordinates.MustParseSchema(scanSchema)
	report, err := corpus.Scan(schema, []string{filepath.Join(dir, "**", "*.graphql")}, false)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Documents)
	assert.Empty(t, report.Failures)
	assert.Equal(t, map[string]int{
		"Query.human": 3,
		"Human.name":  2,
		"Human.email": 2,
	}, report.Counts)
	assert.Equal(t, []string{"Human.email", "Human.name", "Query.human"}, report.Coordinates())
}

func TestScanRecordsFailuresAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.graphql", `{ human { name } }`)
	bad := writeFile(t, dir, "bad.graphql", `{ human {`)

	schema := coordinates.MustParseSchema(scanSchema)
	report, err := corpus.Scan(schema, []string{filepath.Join(dir, "*.graphql")}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Documents)
	require.Contains(t, report.Failures, bad)
	assert.Equal(t, map[string]int{
		"Query.human": 1,
		"Human.name":  1,
	}, report.Counts)
}

func TestScanFailFast(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.graphql", `{ human {`)

	schema := coordinates.MustParseSchema(scanSchema)
	report, err := corpus.Scan(schema, []string{filepath.Join(dir, "*.graphql")}, true)
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestExpandPatternsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q.graphql", `{ x }`)

	files, err := corpus.ExpandPatterns([]string{path, filepath.Join(dir, "*.graphql")})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestExpandPatternsMissingLiteralPath(t *testing.T) {
	_, err := corpus.ExpandPatterns([]string{filepath.Join(t.TempDir(), "nope.graphql")})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gqlcoords.yaml", `
schema: schema.graphql
documents:
  - queries/**/*.graphql
fail_fast: true
`)

	cfg, err := corpus.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "schema.graphql", cfg.Schema)
	assert.Equal(t, []string{"queries/**/*.graphql"}, cfg.Documents)
	assert.True(t, cfg.FailFast)
}

func TestLoadConfigRejectsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gqlcoords.yaml", `schema: schema.graphql`)

	_, err := corpus.LoadConfig(path)
	assert.ErrorContains(t, err, "documents is required")
}
