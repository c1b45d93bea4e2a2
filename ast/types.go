package ast

import "github.com/oxparse-dev/oxparse/source"

// Type is a type expression: a kind optionally followed by +-separated
// additional bounds (`+ Trait`, `+ 'lifetime`).
type Type struct {
	Extent     source.Extent
	Kind       TypeKind
	Additional []TypeAdditional
}

func (t Type) Span() source.Extent { return t.Extent }

// TypeKind is the head of a type expression.
type TypeKind interface {
	Node
	typeKind()
}

// TypeAdditional is one +-separated tail bound of a type.
type TypeAdditional interface {
	Node
	typeAdditional()
}

// AdditionalTrait is a trait bound, optionally relaxed (?Sized).
type AdditionalTrait struct {
	Extent  source.Extent
	Relaxed bool
	Type    TypeKind
}

// AdditionalLifetime is a lifetime bound.
type AdditionalLifetime struct {
	Extent   source.Extent
	Lifetime Lifetime
}

func (a *AdditionalTrait) Span() source.Extent    { return a.Extent }
func (a *AdditionalLifetime) Span() source.Extent { return a.Extent }

func (*AdditionalTrait) typeAdditional()    {}
func (*AdditionalLifetime) typeAdditional() {}

// TypeGenerics is the argument list of one named-type path component,
// either angle-bracketed or function-sugared.
type TypeGenerics interface {
	Node
	typeGenerics()
}

// TypeGenericsAngle is <'a, T, Name = T>.
type TypeGenericsAngle struct {
	Extent    source.Extent
	Lifetimes []Lifetime
	Types     []Type
	Bindings  []TypeBinding
}

// TypeBinding is an associated-type binding: Name = T.
type TypeBinding struct {
	Extent source.Extent
	Name   Ident
	Type   Type
}

// TypeGenericsFunction is the (T, U) -> R sugar.
type TypeGenericsFunction struct {
	Extent    source.Extent
	Arguments []Type
	Return    *Type
}

func (g *TypeGenericsAngle) Span() source.Extent    { return g.Extent }
func (g TypeBinding) Span() source.Extent           { return g.Extent }
func (g *TypeGenericsFunction) Span() source.Extent { return g.Extent }

func (*TypeGenericsAngle) typeGenerics()    {}
func (*TypeGenericsFunction) typeGenerics() {}

// TypeComponent is one segment of a named type's path.
type TypeComponent struct {
	Extent   source.Extent
	Ident    Ident
	Generics TypeGenerics
}

func (c TypeComponent) Span() source.Extent { return c.Extent }

// TypeNamed is a path type such as Vec<u8> or std::io::Result<T>.
type TypeNamed struct {
	Extent     source.Extent
	Global     bool
	Components []TypeComponent
}

// TypeReference is &['a] [mut] T.
type TypeReference struct {
	Extent   source.Extent
	Lifetime *Lifetime
	Mutable  bool
	Inner    *Type
}

// TypePointer is *const T or *mut T.
type TypePointer struct {
	Extent  source.Extent
	Mutable bool
	Inner   *Type
}

// TypeArray is [T; count].
type TypeArray struct {
	Extent source.Extent
	Elem   *Type
	Count  Expression
}

// TypeSlice is [T].
type TypeSlice struct {
	Extent source.Extent
	Elem   *Type
}

// TypeTuple is (T, U, ...).
type TypeTuple struct {
	Extent source.Extent
	Elems  []Type
}

// TypeFunction is [unsafe] [extern "abi"] fn(T, U[, ...]) [-> R].
type TypeFunction struct {
	Extent    source.Extent
	Unsafe    bool
	Abi       *source.Extent
	Arguments []Type
	Variadic  bool
	Return    *Type
}

// TypeImplTrait is impl Trait.
type TypeImplTrait struct {
	Extent source.Extent
	Inner  *Type
}

// TypeHigherRanked is for<'a, 'b> T.
type TypeHigherRanked struct {
	Extent    source.Extent
	Lifetimes []Lifetime
	Inner     *Type
}

// TypeDisambiguation is <From as To>::Path.
type TypeDisambiguation struct {
	Extent     source.Extent
	From       *Type
	To         *TypeNamed
	Components []TypeComponent
}

// TypeUninhabited is the never type !.
type TypeUninhabited struct {
	Extent source.Extent
}

func (t *TypeNamed) Span() source.Extent          { return t.Extent }
func (t *TypeReference) Span() source.Extent      { return t.Extent }
func (t *TypePointer) Span() source.Extent        { return t.Extent }
func (t *TypeArray) Span() source.Extent          { return t.Extent }
func (t *TypeSlice) Span() source.Extent          { return t.Extent }
func (t *TypeTuple) Span() source.Extent          { return t.Extent }
func (t *TypeFunction) Span() source.Extent       { return t.Extent }
func (t *TypeImplTrait) Span() source.Extent      { return t.Extent }
func (t *TypeHigherRanked) Span() source.Extent   { return t.Extent }
func (t *TypeDisambiguation) Span() source.Extent { return t.Extent }
func (t *TypeUninhabited) Span() source.Extent    { return t.Extent }

func (*TypeNamed) typeKind()          {}
func (*TypeReference) typeKind()      {}
func (*TypePointer) typeKind()        {}
func (*TypeArray) typeKind()          {}
func (*TypeSlice) typeKind()          {}
func (*TypeTuple) typeKind()          {}
func (*TypeFunction) typeKind()       {}
func (*TypeImplTrait) typeKind()      {}
func (*TypeHigherRanked) typeKind()   {}
func (*TypeDisambiguation) typeKind() {}
func (*TypeUninhabited) typeKind()    {}
