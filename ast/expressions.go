package ast

import (
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// Expression is any expression node. MayTerminateStatement reports whether
// the shape can end a statement without a semicolon (block-like forms and
// curly-brace macro calls).
type Expression interface {
	Node
	exprNode()
	MayTerminateStatement() bool
}

// terminating is embedded by the block-like expression shapes.
type terminating struct{}

func (terminating) MayTerminateStatement() bool { return true }

// nonTerminating is embedded by every other expression shape.
type nonTerminating struct{}

func (nonTerminating) MayTerminateStatement() bool { return false }

// BinaryOp enumerates the binary operators in precedence groups.
type BinaryOp int

const (
	// Multiplicative
	OpMul BinaryOp = iota
	OpDiv
	OpMod
	// Additive
	OpAdd
	OpSub
	// Shift
	OpShl
	OpShr
	// Bitwise
	OpBitAnd
	OpBitXor
	OpBitOr
	// Comparison
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
	OpNotEqual
	// Lazy boolean
	OpAnd
	OpOr
	// Assignment
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpShlAssign
	OpShrAssign
	OpBitAndAssign
	OpBitXorAssign
	OpBitOrAssign
)

// UnaryOp enumerates the prefix operators.
type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpNot
)

// ExprNumber is a numeric literal; the digit sub-extents come straight from
// the tokenizer, no conversion occurs.
type ExprNumber struct {
	Extent source.Extent
	Parts  lexer.NumberParts
	nonTerminating
}

// ExprCharacter is a character literal including its quotes.
type ExprCharacter struct {
	Extent source.Extent
	nonTerminating
}

// ExprString is a string literal; Raw marks the r"..." form.
type ExprString struct {
	Extent source.Extent
	Raw    bool
	nonTerminating
}

// ExprByte is a byte literal b'x'.
type ExprByte struct {
	Extent source.Extent
	nonTerminating
}

// ExprByteString is a byte-string literal; Raw marks the br"..." form.
type ExprByteString struct {
	Extent source.Extent
	Raw    bool
	nonTerminating
}

// ExprBool is true or false.
type ExprBool struct {
	Extent source.Extent
	Value  bool
	nonTerminating
}

// ExprValue is a path used as a value.
type ExprValue struct {
	Extent source.Extent
	Path   Path
	nonTerminating
}

// StructLiteralField is one field of a struct literal; Value is nil in the
// shorthand form.
type StructLiteralField struct {
	Extent source.Extent
	Name   Ident
	Value  Expression
}

func (f StructLiteralField) Span() source.Extent { return f.Extent }

// ExprStructLiteral is Path { fields [, ..base] }.
type ExprStructLiteral struct {
	Extent source.Extent
	Path   Path
	Fields []StructLiteralField
	Spread Expression
	nonTerminating
}

// ExprBinary is a binary operation.
type ExprBinary struct {
	Extent source.Extent
	Op     BinaryOp
	Lhs    Expression
	Rhs    Expression
	nonTerminating
}

// ExprUnary is a prefix operation.
type ExprUnary struct {
	Extent source.Extent
	Op     UnaryOp
	Value  Expression
	nonTerminating
}

// ExprCall is target(args).
type ExprCall struct {
	Extent source.Extent
	Target Expression
	Args   []Expression
	nonTerminating
}

// FieldName is an identifier or a tuple index after a dot.
type FieldName struct {
	Extent source.Extent
	Number bool
}

func (f FieldName) Span() source.Extent { return f.Extent }

// ExprFieldAccess is target.name or target.0, with an optional turbofish
// for the method-call form; a following ExprCall makes it a method call.
type ExprFieldAccess struct {
	Extent    source.Extent
	Target    Expression
	Field     FieldName
	Turbofish *Turbofish
	nonTerminating
}

// ExprIndex is target[index].
type ExprIndex struct {
	Extent source.Extent
	Target Expression
	Index  Expression
	nonTerminating
}

// ExprSlice is target[range].
type ExprSlice struct {
	Extent source.Extent
	Target Expression
	Range  Expression
	nonTerminating
}

// ExprRange is start..end with both sides optional.
type ExprRange struct {
	Extent source.Extent
	Start  Expression
	End    Expression
	nonTerminating
}

// ExprRangeInclusive is start..=end (or the legacy start...end).
type ExprRangeInclusive struct {
	Extent source.Extent
	Start  Expression
	End    Expression
	nonTerminating
}

// ExprIf is if cond { } [else ...]; Else is a *ExprBlock, *ExprIf, or
// *ExprIfLet.
type ExprIf struct {
	Extent    source.Extent
	Condition Expression
	Body      *Block
	Else      Expression
	terminating
}

// ExprIfLet is if let pattern = value { } [else ...].
type ExprIfLet struct {
	Extent  source.Extent
	Pattern Pattern
	Value   Expression
	Body    *Block
	Else    Expression
	terminating
}

// ExprWhile is ['label:] while cond { }.
type ExprWhile struct {
	Extent    source.Extent
	Label     *Lifetime
	Condition Expression
	Body      *Block
	terminating
}

// ExprWhileLet is ['label:] while let pattern = value { }.
type ExprWhileLet struct {
	Extent  source.Extent
	Label   *Lifetime
	Pattern Pattern
	Value   Expression
	Body    *Block
	terminating
}

// ExprFor is ['label:] for pattern in iter { }.
type ExprFor struct {
	Extent  source.Extent
	Label   *Lifetime
	Pattern Pattern
	Iter    Expression
	Body    *Block
	terminating
}

// ExprLoop is ['label:] loop { }.
type ExprLoop struct {
	Extent source.Extent
	Label  *Lifetime
	Body   *Block
	terminating
}

// MatchArm is patterns [if guard] => body.
type MatchArm struct {
	Extent     source.Extent
	Attributes []Attribute
	Patterns   []Pattern
	Guard      Expression
	Body       Expression
}

func (a MatchArm) Span() source.Extent { return a.Extent }

// ExprMatch is match head { arms }.
type ExprMatch struct {
	Extent source.Extent
	Head   Expression
	Arms   []MatchArm
	terminating
}

// ExprReturn is return [value].
type ExprReturn struct {
	Extent source.Extent
	Value  Expression
	nonTerminating
}

// ExprBreak is break ['label].
type ExprBreak struct {
	Extent source.Extent
	Label  *Lifetime
	nonTerminating
}

// ExprContinue is continue ['label].
type ExprContinue struct {
	Extent source.Extent
	Label  *Lifetime
	nonTerminating
}

// ExprBlock is a block in expression position.
type ExprBlock struct {
	Extent source.Extent
	Block  *Block
	terminating
}

// ExprUnsafeBlock is unsafe { }.
type ExprUnsafeBlock struct {
	Extent source.Extent
	Body   *Block
	terminating
}

// ClosureParam is one |...| parameter with an optional type.
type ClosureParam struct {
	Extent  source.Extent
	Pattern Pattern
	Type    *Type
}

func (c ClosureParam) Span() source.Extent { return c.Extent }

// ExprClosure is [move] |params| [-> Type] body.
type ExprClosure struct {
	Extent source.Extent
	Move   bool
	Params []ClosureParam
	Return *Type
	Body   Expression
	nonTerminating
}

// ExprLet is let pattern [: Type] [= value], an expression in statement
// position.
type ExprLet struct {
	Extent  source.Extent
	Pattern Pattern
	Type    *Type
	Value   Expression
	nonTerminating
}

// ExprReference is &[mut] value.
type ExprReference struct {
	Extent  source.Extent
	Mutable bool
	Value   Expression
	nonTerminating
}

// ExprDereference is *value.
type ExprDereference struct {
	Extent source.Extent
	Value  Expression
	nonTerminating
}

// ExprTry is value?.
type ExprTry struct {
	Extent source.Extent
	Value  Expression
	nonTerminating
}

// ExprAsType is value as Type.
type ExprAsType struct {
	Extent source.Extent
	Value  Expression
	Type   Type
	nonTerminating
}

// ExprAscription is value: Type.
type ExprAscription struct {
	Extent source.Extent
	Value  Expression
	Type   Type
	nonTerminating
}

// ExprBox is box value.
type ExprBox struct {
	Extent source.Extent
	Value  Expression
	nonTerminating
}

// ExprTuple is (a, b, ...).
type ExprTuple struct {
	Extent  source.Extent
	Members []Expression
	nonTerminating
}

// ExprArrayExplicit is [a, b, ...].
type ExprArrayExplicit struct {
	Extent  source.Extent
	Members []Expression
	nonTerminating
}

// ExprArrayRepeated is [value; count].
type ExprArrayRepeated struct {
	Extent source.Extent
	Value  Expression
	Count  Expression
	nonTerminating
}

// ExprParenthetical is (value).
type ExprParenthetical struct {
	Extent source.Extent
	Value  Expression
	nonTerminating
}

// ExprMacroCall is a macro invocation in expression position. It terminates
// a statement without a semicolon only in the curly-brace form.
type ExprMacroCall struct {
	Extent source.Extent
	Call   *MacroCall
}

func (e *ExprMacroCall) MayTerminateStatement() bool {
	return e.Call.Brace == MacroCurly
}

func (e *ExprNumber) Span() source.Extent        { return e.Extent }
func (e *ExprCharacter) Span() source.Extent     { return e.Extent }
func (e *ExprString) Span() source.Extent        { return e.Extent }
func (e *ExprByte) Span() source.Extent          { return e.Extent }
func (e *ExprByteString) Span() source.Extent    { return e.Extent }
func (e *ExprBool) Span() source.Extent          { return e.Extent }
func (e *ExprValue) Span() source.Extent         { return e.Extent }
func (e *ExprStructLiteral) Span() source.Extent { return e.Extent }
func (e *ExprBinary) Span() source.Extent        { return e.Extent }
func (e *ExprUnary) Span() source.Extent         { return e.Extent }
func (e *ExprCall) Span() source.Extent          { return e.Extent }
func (e *ExprFieldAccess) Span() source.Extent   { return e.Extent }
func (e *ExprIndex) Span() source.Extent         { return e.Extent }
func (e *ExprSlice) Span() source.Extent         { return e.Extent }
func (e *ExprRange) Span() source.Extent         { return e.Extent }
func (e *ExprRangeInclusive) Span() source.Extent { return e.Extent }
func (e *ExprIf) Span() source.Extent            { return e.Extent }
func (e *ExprIfLet) Span() source.Extent         { return e.Extent }
func (e *ExprWhile) Span() source.Extent         { return e.Extent }
func (e *ExprWhileLet) Span() source.Extent      { return e.Extent }
func (e *ExprFor) Span() source.Extent           { return e.Extent }
func (e *ExprLoop) Span() source.Extent          { return e.Extent }
func (e *ExprMatch) Span() source.Extent         { return e.Extent }
func (e *ExprReturn) Span() source.Extent        { return e.Extent }
func (e *ExprBreak) Span() source.Extent         { return e.Extent }
func (e *ExprContinue) Span() source.Extent      { return e.Extent }
func (e *ExprBlock) Span() source.Extent         { return e.Extent }
func (e *ExprUnsafeBlock) Span() source.Extent   { return e.Extent }
func (e *ExprClosure) Span() source.Extent       { return e.Extent }
func (e *ExprLet) Span() source.Extent           { return e.Extent }
func (e *ExprReference) Span() source.Extent     { return e.Extent }
func (e *ExprDereference) Span() source.Extent   { return e.Extent }
func (e *ExprTry) Span() source.Extent           { return e.Extent }
func (e *ExprAsType) Span() source.Extent        { return e.Extent }
func (e *ExprAscription) Span() source.Extent    { return e.Extent }
func (e *ExprBox) Span() source.Extent           { return e.Extent }
func (e *ExprTuple) Span() source.Extent         { return e.Extent }
func (e *ExprArrayExplicit) Span() source.Extent { return e.Extent }
func (e *ExprArrayRepeated) Span() source.Extent { return e.Extent }
func (e *ExprParenthetical) Span() source.Extent { return e.Extent }
func (e *ExprMacroCall) Span() source.Extent     { return e.Extent }

func (*ExprNumber) exprNode()         {}
func (*ExprCharacter) exprNode()      {}
func (*ExprString) exprNode()         {}
func (*ExprByte) exprNode()           {}
func (*ExprByteString) exprNode()     {}
func (*ExprBool) exprNode()           {}
func (*ExprValue) exprNode()          {}
func (*ExprStructLiteral) exprNode()  {}
func (*ExprBinary) exprNode()         {}
func (*ExprUnary) exprNode()          {}
func (*ExprCall) exprNode()           {}
func (*ExprFieldAccess) exprNode()    {}
func (*ExprIndex) exprNode()          {}
func (*ExprSlice) exprNode()          {}
func (*ExprRange) exprNode()          {}
func (*ExprRangeInclusive) exprNode() {}
func (*ExprIf) exprNode()             {}
func (*ExprIfLet) exprNode()          {}
func (*ExprWhile) exprNode()          {}
func (*ExprWhileLet) exprNode()       {}
func (*ExprFor) exprNode()            {}
func (*ExprLoop) exprNode()           {}
func (*ExprMatch) exprNode()          {}
func (*ExprReturn) exprNode()         {}
func (*ExprBreak) exprNode()          {}
func (*ExprContinue) exprNode()       {}
func (*ExprBlock) exprNode()          {}
func (*ExprUnsafeBlock) exprNode()    {}
func (*ExprClosure) exprNode()        {}
func (*ExprLet) exprNode()            {}
func (*ExprReference) exprNode()      {}
func (*ExprDereference) exprNode()    {}
func (*ExprTry) exprNode()            {}
func (*ExprAsType) exprNode()         {}
func (*ExprAscription) exprNode()     {}
func (*ExprBox) exprNode()            {}
func (*ExprTuple) exprNode()          {}
func (*ExprArrayExplicit) exprNode()  {}
func (*ExprArrayRepeated) exprNode()  {}
func (*ExprParenthetical) exprNode()  {}
func (*ExprMacroCall) exprNode()      {}
