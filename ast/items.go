package ast

import "github.com/oxparse-dev/oxparse/source"

// Item is a top-level or block-level declaration.
type Item interface {
	Node
	itemNode()
}

// Const is `const NAME: Type = value;`.
type Const struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Type       Type
	Value      Expression
}

// StaticItem is `static [mut] NAME: Type = value;`.
type StaticItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Mutable    bool
	Name       Ident
	Type       Type
	Value      Expression
}

// EnumVariantBody distinguishes the three variant shapes.
type EnumVariantBody interface {
	Node
	enumVariantBody()
}

// EnumVariantTuple is `Variant(T, U)`.
type EnumVariantTuple struct {
	Extent source.Extent
	Types  []Attributed[Type]
}

// EnumVariantStruct is `Variant { field: T }`.
type EnumVariantStruct struct {
	Extent source.Extent
	Fields []Attributed[*StructField]
}

// EnumVariantDiscriminant is `Variant = expr`.
type EnumVariantDiscriminant struct {
	Extent source.Extent
	Value  Expression
}

func (v *EnumVariantTuple) Span() source.Extent        { return v.Extent }
func (v *EnumVariantStruct) Span() source.Extent       { return v.Extent }
func (v *EnumVariantDiscriminant) Span() source.Extent { return v.Extent }

func (*EnumVariantTuple) enumVariantBody()        {}
func (*EnumVariantStruct) enumVariantBody()       {}
func (*EnumVariantDiscriminant) enumVariantBody() {}

// EnumVariant is one arm of an enum declaration.
type EnumVariant struct {
	Extent source.Extent
	Name   Ident
	Body   EnumVariantBody
}

func (v *EnumVariant) Span() source.Extent { return v.Extent }

// EnumItem is an enum declaration.
type EnumItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Generics   *GenericDeclarations
	Wheres     []WhereClause
	Variants   []Attributed[*EnumVariant]
}

// StructField is one named field of a struct, union, or struct variant.
type StructField struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Type       Type
}

func (f *StructField) Span() source.Extent { return f.Extent }

// StructBody is the braced, tuple, or unit body of a struct.
type StructBody interface {
	Node
	structBody()
}

// StructBodyBraced is `{ field: T, ... }`.
type StructBodyBraced struct {
	Extent source.Extent
	Fields []Attributed[*StructField]
}

// StructBodyTuple is `(T, U);`.
type StructBodyTuple struct {
	Extent source.Extent
	Types  []Attributed[Type]
}

// StructBodyUnit is the bare `;`.
type StructBodyUnit struct {
	Extent source.Extent
}

func (b *StructBodyBraced) Span() source.Extent { return b.Extent }
func (b *StructBodyTuple) Span() source.Extent  { return b.Extent }
func (b *StructBodyUnit) Span() source.Extent   { return b.Extent }

func (*StructBodyBraced) structBody() {}
func (*StructBodyTuple) structBody()  {}
func (*StructBodyUnit) structBody()   {}

// StructItem is a struct declaration.
type StructItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Generics   *GenericDeclarations
	Wheres     []WhereClause
	Body       StructBody
}

// UnionItem is a union declaration; the body is always braced.
type UnionItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Generics   *GenericDeclarations
	Wheres     []WhereClause
	Fields     []Attributed[*StructField]
}

// TraitMember is a member of a trait declaration.
type TraitMember interface {
	Node
	traitMember()
}

// TraitMemberFunction is a method signature with an optional default body.
type TraitMemberFunction struct {
	Extent source.Extent
	Header FunctionHeader
	Body   *Block
}

// TraitMemberType is `type Name[: bounds];`.
type TraitMemberType struct {
	Extent  source.Extent
	Name    Ident
	Bounds  []TypeAdditional
	Default *Type
}

// TraitMemberConst is `const NAME: Type [= value];`.
type TraitMemberConst struct {
	Extent source.Extent
	Name   Ident
	Type   Type
	Value  Expression
}

// TraitMemberMacroCall is a macro invocation in trait position.
type TraitMemberMacroCall struct {
	Extent source.Extent
	Call   *MacroCall
}

func (m *TraitMemberFunction) Span() source.Extent  { return m.Extent }
func (m *TraitMemberType) Span() source.Extent      { return m.Extent }
func (m *TraitMemberConst) Span() source.Extent     { return m.Extent }
func (m *TraitMemberMacroCall) Span() source.Extent { return m.Extent }

func (*TraitMemberFunction) traitMember()  {}
func (*TraitMemberType) traitMember()      {}
func (*TraitMemberConst) traitMember()     {}
func (*TraitMemberMacroCall) traitMember() {}

// TraitItem is a trait declaration.
type TraitItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Unsafe     bool
	Name       Ident
	Generics   *GenericDeclarations
	Bounds     []TypeAdditional
	Wheres     []WhereClause
	Members    []Attributed[TraitMember]
}

// ImplMember is a member of an impl block.
type ImplMember interface {
	Node
	implMember()
}

// ImplMemberFunction is a method definition.
type ImplMemberFunction struct {
	Extent     source.Extent
	Visibility *Visibility
	Default    bool
	Function   *Function
}

// ImplMemberType is an associated type definition.
type ImplMemberType struct {
	Extent source.Extent
	Name   Ident
	Type   Type
}

// ImplMemberConst is an associated const definition.
type ImplMemberConst struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Type       Type
	Value      Expression
}

// ImplMemberMacroCall is a macro invocation in impl position.
type ImplMemberMacroCall struct {
	Extent source.Extent
	Call   *MacroCall
}

func (m *ImplMemberFunction) Span() source.Extent  { return m.Extent }
func (m *ImplMemberType) Span() source.Extent      { return m.Extent }
func (m *ImplMemberConst) Span() source.Extent     { return m.Extent }
func (m *ImplMemberMacroCall) Span() source.Extent { return m.Extent }

func (*ImplMemberFunction) implMember()  {}
func (*ImplMemberType) implMember()      {}
func (*ImplMemberConst) implMember()     {}
func (*ImplMemberMacroCall) implMember() {}

// ImplOfTrait names the trait an impl block implements, with the negative
// `impl !Send for T` form.
type ImplOfTrait struct {
	Extent   source.Extent
	Negative bool
	Trait    Type
}

func (i *ImplOfTrait) Span() source.Extent { return i.Extent }

// Impl is an inherent or trait impl block.
type Impl struct {
	Extent   source.Extent
	Unsafe   bool
	Generics *GenericDeclarations
	OfTrait  *ImplOfTrait
	Type     Type
	Wheres   []WhereClause
	Members  []Attributed[ImplMember]
}

// FunctionQualifiers collects the markers preceding fn.
type FunctionQualifiers struct {
	Extent source.Extent
	Const  bool
	Unsafe bool
	Extern bool
	Abi    *source.Extent
}

// SelfArgumentKind distinguishes receiver shapes.
type SelfArgumentKind int

const (
	SelfValue SelfArgumentKind = iota
	SelfReference
	SelfTyped
)

// Argument is one formal parameter of a function.
type Argument interface {
	Node
	argumentNode()
}

// SelfArgument is a method receiver: self, &self, &'a mut self, self: T.
type SelfArgument struct {
	Extent   source.Extent
	Kind     SelfArgumentKind
	Lifetime *Lifetime
	Mutable  bool
	Type     *Type
}

// NamedArgument is `pattern: Type`.
type NamedArgument struct {
	Extent source.Extent
	Name   Pattern
	Type   Type
}

func (a *SelfArgument) Span() source.Extent  { return a.Extent }
func (a *NamedArgument) Span() source.Extent { return a.Extent }

func (*SelfArgument) argumentNode()  {}
func (*NamedArgument) argumentNode() {}

// FunctionHeader is everything of a function before its body.
type FunctionHeader struct {
	Extent     source.Extent
	Visibility *Visibility
	Qualifiers FunctionQualifiers
	Name       Ident
	Generics   *GenericDeclarations
	Arguments  []Argument
	ReturnType *Type
	Wheres     []WhereClause
}

func (h FunctionHeader) Span() source.Extent { return h.Extent }

// Function is a function definition.
type Function struct {
	Extent source.Extent
	Header FunctionHeader
	Body   *Block
}

// TypeAliasItem is `type Name<...> = Type;`.
type TypeAliasItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Generics   *GenericDeclarations
	Wheres     []WhereClause
	Defn       Type
}

// UseTail is the ending of a use path.
type UseTail interface {
	Node
	useTail()
}

// UseTailIdent is a plain terminal segment with an optional rename.
type UseTailIdent struct {
	Extent source.Extent
	Name   Ident
	Rename *Ident
}

// UseTailGlob is the trailing ::*.
type UseTailGlob struct {
	Extent source.Extent
}

// UseTailMulti is the braced {a, b::c} form.
type UseTailMulti struct {
	Extent source.Extent
	Names  []UsePath
}

func (u *UseTailIdent) Span() source.Extent { return u.Extent }
func (u *UseTailGlob) Span() source.Extent  { return u.Extent }
func (u *UseTailMulti) Span() source.Extent { return u.Extent }

func (*UseTailIdent) useTail() {}
func (*UseTailGlob) useTail()  {}
func (*UseTailMulti) useTail() {}

// UsePath is the path of a use declaration: leading segments plus a tail.
type UsePath struct {
	Extent   source.Extent
	Global   bool
	Segments []Ident
	Tail     UseTail
}

func (u UsePath) Span() source.Extent { return u.Extent }

// UseItem is a use declaration.
type UseItem struct {
	Extent     source.Extent
	Visibility *Visibility
	Path       UsePath
}

// Module is `mod name;` or `mod name { items }`. Items is nil for the
// file-less form.
type Module struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Items      []Attributed[Item]
	Inline     bool
}

// ExternCrate is `extern crate name [as rename];`.
type ExternCrate struct {
	Extent     source.Extent
	Visibility *Visibility
	Name       Ident
	Rename     *Ident
}

// ExternBlockMember is a declaration inside an extern block.
type ExternBlockMember interface {
	Node
	externBlockMember()
}

// ExternBlockFunction is a foreign function declaration.
type ExternBlockFunction struct {
	Extent     source.Extent
	Visibility *Visibility
	Header     FunctionHeader
}

// ExternBlockStatic is a foreign static declaration.
type ExternBlockStatic struct {
	Extent     source.Extent
	Visibility *Visibility
	Mutable    bool
	Name       Ident
	Type       Type
}

func (m *ExternBlockFunction) Span() source.Extent { return m.Extent }
func (m *ExternBlockStatic) Span() source.Extent   { return m.Extent }

func (*ExternBlockFunction) externBlockMember() {}
func (*ExternBlockStatic) externBlockMember()   {}

// ExternBlock is `extern ["abi"] { members }`.
type ExternBlock struct {
	Extent  source.Extent
	Abi     *source.Extent
	Members []Attributed[ExternBlockMember]
}

// InnerAttribute is a containing #![...] attribute in item position.
type InnerAttribute struct {
	Extent source.Extent
	Text   source.Extent
}

// MacroCallItem is a macro invocation in item position.
type MacroCallItem struct {
	Extent source.Extent
	Call   *MacroCall
}

func (i *Const) Span() source.Extent         { return i.Extent }
func (i *StaticItem) Span() source.Extent    { return i.Extent }
func (i *EnumItem) Span() source.Extent      { return i.Extent }
func (i *StructItem) Span() source.Extent    { return i.Extent }
func (i *UnionItem) Span() source.Extent     { return i.Extent }
func (i *TraitItem) Span() source.Extent     { return i.Extent }
func (i *Impl) Span() source.Extent          { return i.Extent }
func (i *Function) Span() source.Extent      { return i.Extent }
func (i *TypeAliasItem) Span() source.Extent { return i.Extent }
func (i *UseItem) Span() source.Extent       { return i.Extent }
func (i *Module) Span() source.Extent        { return i.Extent }
func (i *ExternCrate) Span() source.Extent   { return i.Extent }
func (i *ExternBlock) Span() source.Extent   { return i.Extent }
func (i *InnerAttribute) Span() source.Extent { return i.Extent }
func (i *MacroCallItem) Span() source.Extent  { return i.Extent }

func (*Const) itemNode()          {}
func (*StaticItem) itemNode()     {}
func (*EnumItem) itemNode()       {}
func (*StructItem) itemNode()     {}
func (*UnionItem) itemNode()      {}
func (*TraitItem) itemNode()      {}
func (*Impl) itemNode()           {}
func (*Function) itemNode()       {}
func (*TypeAliasItem) itemNode()  {}
func (*UseItem) itemNode()        {}
func (*Module) itemNode()         {}
func (*ExternCrate) itemNode()    {}
func (*ExternBlock) itemNode()    {}
func (*InnerAttribute) itemNode() {}
func (*MacroCallItem) itemNode()  {}
