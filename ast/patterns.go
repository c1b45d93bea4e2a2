package ast

import (
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// PatternName is the binding before an @: [ref] [mut] name @.
type PatternName struct {
	Extent source.Extent
	Ref    bool
	Mut    bool
	Name   Ident
}

func (n PatternName) Span() source.Extent { return n.Extent }

// Pattern is a pattern with an optional @-binding and a kind.
type Pattern struct {
	Extent source.Extent
	Name   *PatternName
	Kind   PatternKind
}

func (p Pattern) Span() source.Extent { return p.Extent }

// PatternKind is the shape of a pattern.
type PatternKind interface {
	Node
	patternKind()
}

// PatternIdent covers plain bindings and unit enum variants: [ref] [mut]
// path.
type PatternIdent struct {
	Extent source.Extent
	Ref    bool
	Mut    bool
	Path   Path
}

// PatternMember is a tuple or slice member: a nested pattern or the
// interior wildcard `..`.
type PatternMember interface {
	Node
	patternMember()
}

// PatternMemberPattern is a nested pattern member.
type PatternMemberPattern struct {
	Pattern Pattern
}

// PatternMemberWildcard is the interior `..`.
type PatternMemberWildcard struct {
	Extent source.Extent
}

func (m PatternMemberPattern) Span() source.Extent   { return m.Pattern.Extent }
func (m *PatternMemberWildcard) Span() source.Extent { return m.Extent }

func (PatternMemberPattern) patternMember()   {}
func (*PatternMemberWildcard) patternMember() {}

// PatternTuple is (a, b, ..) or Path(a, b, ..).
type PatternTuple struct {
	Extent  source.Extent
	Path    *Path
	Members []PatternMember
}

// PatternStructField is a long (name: pattern) or short (name) field.
type PatternStructField struct {
	Extent  source.Extent
	Name    Ident
	Pattern *Pattern
}

func (f PatternStructField) Span() source.Extent { return f.Extent }

// PatternStruct is Path { fields [, ..] }.
type PatternStruct struct {
	Extent   source.Extent
	Path     Path
	Fields   []PatternStructField
	Wildcard bool
}

// PatternSlice is [a, b, ..].
type PatternSlice struct {
	Extent  source.Extent
	Members []PatternMember
}

// PatternBox is box pattern.
type PatternBox struct {
	Extent source.Extent
	Inner  *Pattern
}

// PatternReference is &[mut] pattern.
type PatternReference struct {
	Extent  source.Extent
	Mutable bool
	Inner   *Pattern
}

// PatternCharacter is a character literal pattern.
type PatternCharacter struct {
	Extent source.Extent
}

// PatternByte is a byte literal pattern.
type PatternByte struct {
	Extent source.Extent
}

// PatternString is a string literal pattern.
type PatternString struct {
	Extent source.Extent
}

// PatternByteString is a byte-string literal pattern.
type PatternByteString struct {
	Extent source.Extent
}

// PatternNumber is a numeric literal pattern, optionally negated.
type PatternNumber struct {
	Extent  source.Extent
	Negated bool
	Parts   lexer.NumberParts
}

// PatternRangeComponent is one endpoint of a range pattern: a path,
// character, byte, or number.
type PatternRangeComponent interface {
	Node
	patternRangeComponent()
}

func (*PatternIdent) patternRangeComponent()     {}
func (*PatternCharacter) patternRangeComponent() {}
func (*PatternByte) patternRangeComponent()      {}
func (*PatternNumber) patternRangeComponent()    {}

// PatternRangeExclusive is start..end.
type PatternRangeExclusive struct {
	Extent source.Extent
	Start  PatternRangeComponent
	End    PatternRangeComponent
}

// PatternRangeInclusive is start..=end or the legacy start...end.
type PatternRangeInclusive struct {
	Extent source.Extent
	Start  PatternRangeComponent
	End    PatternRangeComponent
}

// PatternMacroCall is a macro invocation in pattern position.
type PatternMacroCall struct {
	Extent source.Extent
	Call   *MacroCall
}

func (p *PatternIdent) Span() source.Extent          { return p.Extent }
func (p *PatternTuple) Span() source.Extent          { return p.Extent }
func (p *PatternStruct) Span() source.Extent         { return p.Extent }
func (p *PatternSlice) Span() source.Extent          { return p.Extent }
func (p *PatternBox) Span() source.Extent            { return p.Extent }
func (p *PatternReference) Span() source.Extent      { return p.Extent }
func (p *PatternCharacter) Span() source.Extent      { return p.Extent }
func (p *PatternByte) Span() source.Extent           { return p.Extent }
func (p *PatternString) Span() source.Extent         { return p.Extent }
func (p *PatternByteString) Span() source.Extent     { return p.Extent }
func (p *PatternNumber) Span() source.Extent         { return p.Extent }
func (p *PatternRangeExclusive) Span() source.Extent { return p.Extent }
func (p *PatternRangeInclusive) Span() source.Extent { return p.Extent }
func (p *PatternMacroCall) Span() source.Extent      { return p.Extent }

func (*PatternIdent) patternKind()          {}
func (*PatternTuple) patternKind()          {}
func (*PatternStruct) patternKind()         {}
func (*PatternSlice) patternKind()          {}
func (*PatternBox) patternKind()            {}
func (*PatternReference) patternKind()      {}
func (*PatternCharacter) patternKind()      {}
func (*PatternByte) patternKind()           {}
func (*PatternString) patternKind()         {}
func (*PatternByteString) patternKind()     {}
func (*PatternNumber) patternKind()         {}
func (*PatternRangeExclusive) patternKind() {}
func (*PatternRangeInclusive) patternKind() {}
func (*PatternMacroCall) patternKind()      {}
