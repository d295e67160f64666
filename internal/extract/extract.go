// Package extract walks executable documents and collects the schema
// coordinates they reference.
package extract

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/graph-tools/coordinates/errors"
	"github.com/graph-tools/coordinates/internal/index"
)

// Variables of built-in scalar type never contribute whole-type coordinates.
var builtinScalar = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

type walker struct {
	index  index.TypeIndex
	doc    *ast.QueryDocument
	coords map[string]struct{}
	active map[string]bool // fragment names on the current descent path
}

// Coordinates collects the deduplicated coordinates referenced by every
// operation in doc. A subscription operation anywhere in the document fails
// the whole call: no partial set is returned, even when sibling operations had
// already contributed.
func Coordinates(idx index.TypeIndex, doc *ast.QueryDocument) (map[string]struct{}, error) {
	w := &walker{
		index:  idx,
		doc:    doc,
		coords: make(map[string]struct{}),
		active: make(map[string]bool),
	}
	for _, op := range doc.Operations {
		if err := w.operation(op); err != nil {
			return nil, err
		}
	}
	return w.coords, nil
}

func (w *walker) operation(op *ast.OperationDefinition) error {
	var root string
	switch op.Operation {
	case ast.Mutation:
		root = "Mutation"
	case ast.Subscription:
		return &errors.SubscriptionNotSupportedError{Operation: op.Name}
	default:
		// Named queries and anonymous shorthand operations both root at the
		// query type.
		root = "Query"
	}

	for _, v := range op.VariableDefinitions {
		name := index.NamedType(v.Type)
		if _, ok := w.index[name]; ok && !builtinScalar[name] {
			w.coords[name] = struct{}{}
		}
	}

	w.selectionSet(op.SelectionSet, root)
	return nil
}

// selectionSet walks one nesting level with parent as the current type key.
// parent may name a type absent from the index; fields under it still emit
// coordinates but are never descended into.
func (w *walker) selectionSet(set ast.SelectionSet, parent string) {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			w.field(sel, parent)
		case *ast.FragmentSpread:
			w.spread(sel)
		case *ast.InlineFragment:
			if sel.TypeCondition != "" {
				w.selectionSet(sel.SelectionSet, sel.TypeCondition)
			} else {
				// A bare fragment block, typically directive-gated, is
				// transparent: the parent type carries through.
				w.selectionSet(sel.SelectionSet, parent)
			}
		}
	}
}

func (w *walker) field(f *ast.Field, parent string) {
	// The coordinate is emitted whether or not the schema declares the field;
	// unknown-field usage has to stay visible.
	w.coords[w.index.Canonical(parent)+"."+f.Name] = struct{}{}

	if len(f.SelectionSet) == 0 {
		return
	}
	// Descend only through fields the schema declares. Children of an unknown
	// field have no resolvable parent type and would fabricate coordinates.
	info, ok := w.index[parent]
	if !ok {
		return
	}
	ret, ok := info.Fields[f.Name]
	if !ok {
		return
	}
	w.selectionSet(f.SelectionSet, ret)
}

func (w *walker) spread(s *ast.FragmentSpread) {
	if w.active[s.Name] {
		// A fragment transitively spreading itself would never terminate;
		// cut the cycle at the point of re-entry.
		return
	}
	for _, frag := range w.doc.Fragments {
		if frag.Name != s.Name {
			continue
		}
		w.active[s.Name] = true
		w.selectionSet(frag.SelectionSet, frag.TypeCondition)
		delete(w.active, s.Name)
		return
	}
	// Spreads of fragments the document never defines are a no-op.
}
