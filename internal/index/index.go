// Package index builds the immutable type index that coordinate extraction
// resolves against.
package index

import "github.com/vektah/gqlparser/v2/ast"

// TypeInfo describes one indexed type: its canonical name and, for object and
// interface types, the unwrapped named return type of each field.
type TypeInfo struct {
	Name   string
	Fields map[string]string
}

// TypeIndex maps type names to type information. The literal keys "Query" and
// "Mutation" always work as lookup entry points: when the schema names its
// root types differently, the entries at the literal keys alias the real
// types. A TypeIndex is never mutated after Build returns, so it may be read
// by any number of goroutines without locking.
type TypeIndex map[string]*TypeInfo

const (
	queryKey    = "Query"
	mutationKey = "Mutation"
)

// Build scans a parsed schema document into a TypeIndex.
//
// Object and interface definitions are indexed with their fields. Input
// object definitions are indexed with no fields: their internals never
// produce coordinates, only the type name itself does. Enum, scalar and union
// definitions carry no resolvable fields and are not indexed. Object type
// extensions merge into their base entry; an extension whose base is never
// declared still creates one. A schema without root types, or without object
// types at all, is legal and yields a minimal index.
func Build(doc *ast.SchemaDocument) TypeIndex {
	idx := make(TypeIndex)

	for _, def := range doc.Definitions {
		switch def.Kind {
		case ast.Object, ast.Interface:
			info := &TypeInfo{Name: def.Name, Fields: make(map[string]string, len(def.Fields))}
			for _, f := range def.Fields {
				info.Fields[f.Name] = NamedType(f.Type)
			}
			idx[def.Name] = info
		case ast.InputObject:
			idx[def.Name] = &TypeInfo{Name: def.Name, Fields: map[string]string{}}
		}
	}

	for _, ext := range doc.Extensions {
		if ext.Kind != ast.Object {
			continue
		}
		info, ok := idx[ext.Name]
		if !ok {
			info = &TypeInfo{Name: ext.Name, Fields: make(map[string]string, len(ext.Fields))}
			idx[ext.Name] = info
		}
		for _, f := range ext.Fields {
			info.Fields[f.Name] = NamedType(f.Type)
		}
	}

	queryRoot, mutationRoot := rootTypes(doc)
	idx.alias(queryKey, queryRoot)
	idx.alias(mutationKey, mutationRoot)

	return idx
}

// Canonical resolves key to the canonical type name. Unindexed keys resolve to
// themselves, which is how coordinates under undeclared types keep the name
// the document used.
func (idx TypeIndex) Canonical(key string) string {
	if info, ok := idx[key]; ok {
		return info.Name
	}
	return key
}

// alias inserts an entry at the literal root key pointing at the declared root
// type. The fields are copied so the alias stays self-contained even when the
// declared type was never defined.
func (idx TypeIndex) alias(key, declared string) {
	if declared == key {
		return
	}
	fields := map[string]string{}
	if base, ok := idx[declared]; ok {
		for name, typ := range base.Fields {
			fields[name] = typ
		}
	}
	idx[key] = &TypeInfo{Name: declared, Fields: fields}
}

// rootTypes returns the declared query and mutation root type names,
// defaulting to the conventional names. A declared subscription root is
// ignored; subscriptions are rejected at extraction time.
func rootTypes(doc *ast.SchemaDocument) (query, mutation string) {
	query, mutation = queryKey, mutationKey
	for _, def := range doc.Schema {
		for _, op := range def.OperationTypes {
			switch op.Operation {
			case ast.Query:
				query = op.Type
			case ast.Mutation:
				mutation = op.Type
			}
		}
	}
	return query, mutation
}

// NamedType unwraps list and non-null wrappers down to the innermost named
// type.
func NamedType(t *ast.Type) string {
	for t.NamedType == "" && t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}
