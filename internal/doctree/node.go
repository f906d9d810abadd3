// Package doctree rebuilds the documentation hierarchy from the flat doclet
// table produced by jsdoc.
package doctree

import "strings"

// Kind tags a Node with the doclet kind it was built from.
type Kind string

const (
	KindRoot        Kind = ""
	KindNamespace   Kind = "namespace"
	KindMixin       Kind = "mixin"
	KindFunction    Kind = "function"
	KindMember      Kind = "member"
	KindEvent       Kind = "event"
	KindModule      Kind = "module"
	KindClass       Kind = "class"
	KindConstructor Kind = "constructor"
)

// Tristate keeps "not stated" apart from an explicit false.
type Tristate uint8

const (
	Unset Tristate = iota
	True
	False
)

// IsTrue reports whether the flag was explicitly set to true.
func (t Tristate) IsTrue() bool { return t == True }

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return ""
	}
}

// TypeExpr is the list of candidate type names for a value.
type TypeExpr []string

// String joins the candidates with the word "or".
func (t TypeExpr) String() string {
	return strings.Join(t, " or ")
}

// Param is a normalized function, event or constructor parameter.
type Param struct {
	Name        string
	Kind        string
	Type        TypeExpr
	Description string
	Default     string
	HasDefault  bool
	Optional    Tristate
	Nullable    Tristate
}

// Returns describes a return value.
type Returns struct {
	Type        TypeExpr
	Description string
}

// Node is one entry of the documentation tree. The root has KindRoot and only
// its child collections populated.
type Node struct {
	Kind        Kind
	Name        string
	Longname    string
	Description string
	Access      string
	Scope       string
	Virtual     bool

	// Type is set on members.
	Type TypeExpr
	// Parameters and Returns are set on functions, events and constructors.
	Parameters []Param
	Returns    *Returns
	Examples   []string
	See        []string

	// Extends, Fires and Constructor are set on classes.
	Extends     []string
	Fires       []string
	Constructor *Node

	Namespaces []*Node
	Mixins     []*Node
	Functions  []*Node
	Properties []*Node
	Events     []*Node
	Modules    []*Node
	Classes    []*Node
}

// IsConstructor reports whether n is the synthetic constructor of a class.
func (n *Node) IsConstructor() bool {
	return n.Kind == KindConstructor
}

// Walk visits n and then every descendant depth-first, collections in
// declaration order. Constructors are not visited.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, group := range [][]*Node{n.Namespaces, n.Mixins, n.Functions, n.Properties, n.Events, n.Modules, n.Classes} {
		for _, child := range group {
			child.Walk(fn)
		}
	}
}
