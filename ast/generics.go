package ast

import "github.com/oxparse-dev/oxparse/source"

// GenericDeclarationLifetime declares a lifetime parameter with optional
// outlives bounds: 'a: 'b + 'c.
type GenericDeclarationLifetime struct {
	Extent source.Extent
	Name   Lifetime
	Bounds []Lifetime
}

func (g GenericDeclarationLifetime) Span() source.Extent { return g.Extent }

// GenericDeclarationType declares a type parameter with optional trait
// bounds and an optional default: T: Clone = Foo.
type GenericDeclarationType struct {
	Extent  source.Extent
	Name    Ident
	Bounds  []TypeAdditional
	Default *Type
}

func (g GenericDeclarationType) Span() source.Extent { return g.Extent }

// GenericDeclarations is the <'a, T, ...> parameter list of an item header.
// Lifetimes always precede types.
type GenericDeclarations struct {
	Extent    source.Extent
	Lifetimes []Attributed[GenericDeclarationLifetime]
	Types     []Attributed[GenericDeclarationType]
}

func (g *GenericDeclarations) Span() source.Extent { return g.Extent }

// WhereClause is one item of a where clause.
type WhereClause interface {
	Node
	whereClause()
}

// WhereLifetime bounds a lifetime: 'a: 'b + 'c.
type WhereLifetime struct {
	Extent source.Extent
	Name   Lifetime
	Bounds []Lifetime
}

// WhereType bounds a type, optionally under a for<'a> quantifier.
type WhereType struct {
	Extent    source.Extent
	Lifetimes []Lifetime
	Type      Type
	Bounds    []TypeAdditional
}

// WhereEquality is the T = U form, accepted syntactically.
type WhereEquality struct {
	Extent source.Extent
	Left   Type
	Right  Type
}

func (w *WhereLifetime) Span() source.Extent { return w.Extent }
func (w *WhereType) Span() source.Extent     { return w.Extent }
func (w *WhereEquality) Span() source.Extent { return w.Extent }

func (*WhereLifetime) whereClause() {}
func (*WhereType) whereClause()     {}
func (*WhereEquality) whereClause() {}
