package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxparse-dev/oxparse/ast"
)

// parseItem parses a whole input expected to contain exactly one item.
func parseItem(t *testing.T, input string) ast.Item {
	t.Helper()
	file := parseOK(t, input)
	require.Len(t, file.Items, 1, "input %q should hold one item", input)
	return file.Items[0].Value
}

func TestConstAndStatic(t *testing.T) {
	item := parseItem(t, "const MAX: usize = 64;")
	konst, ok := item.(*ast.Const)
	require.True(t, ok)
	assert.Nil(t, konst.Visibility)

	item = parseItem(t, "pub static mut COUNTER: u64 = 0;")
	static, ok := item.(*ast.StaticItem)
	require.True(t, ok)
	assert.True(t, static.Mutable)
	assert.NotNil(t, static.Visibility)
}

func TestEnumVariants(t *testing.T) {
	input := "enum Shape { Empty, Circle(f64), Rect { w: f64, h: f64 }, Other = 9 }"
	item := parseItem(t, input)
	enum, ok := item.(*ast.EnumItem)
	require.True(t, ok)
	require.Len(t, enum.Variants, 4)

	assert.Nil(t, enum.Variants[0].Value.Body)
	_, isTuple := enum.Variants[1].Value.Body.(*ast.EnumVariantTuple)
	assert.True(t, isTuple)
	_, isStruct := enum.Variants[2].Value.Body.(*ast.EnumVariantStruct)
	assert.True(t, isStruct)
	_, isDisc := enum.Variants[3].Value.Body.(*ast.EnumVariantDiscriminant)
	assert.True(t, isDisc)
}

func TestStructBodies(t *testing.T) {
	item := parseItem(t, "struct Braced { pub a: u8, b: u16 }")
	st, ok := item.(*ast.StructItem)
	require.True(t, ok)
	braced, ok := st.Body.(*ast.StructBodyBraced)
	require.True(t, ok)
	require.Len(t, braced.Fields, 2)
	assert.NotNil(t, braced.Fields[0].Value.Visibility)

	item = parseItem(t, "struct Tuple(u8, pub u16);")
	st, ok = item.(*ast.StructItem)
	require.True(t, ok)
	tuple, ok := st.Body.(*ast.StructBodyTuple)
	require.True(t, ok)
	assert.Len(t, tuple.Types, 2)

	item = parseItem(t, "struct Unit;")
	st, ok = item.(*ast.StructItem)
	require.True(t, ok)
	_, isUnit := st.Body.(*ast.StructBodyUnit)
	assert.True(t, isUnit)

	item = parseItem(t, "struct Bound<T>(T) where T: Send;")
	st, ok = item.(*ast.StructItem)
	require.True(t, ok)
	assert.NotEmpty(t, st.Wheres)
}

func TestUnion(t *testing.T) {
	item := parseItem(t, "union Bits { int: u32, float: f32 }")
	u, ok := item.(*ast.UnionItem)
	require.True(t, ok)
	assert.Len(t, u.Fields, 2)
}

func TestTraitDeclaration(t *testing.T) {
	input := `trait Visit: Sized {
		type Output;
		const DEPTH: usize = 1;
		fn enter(&self) -> Self::Output;
		fn exit(&self) {}
	}`
	item := parseItem(t, input)
	tr, ok := item.(*ast.TraitItem)
	require.True(t, ok)
	assert.NotEmpty(t, tr.Bounds)
	require.Len(t, tr.Members, 4)

	_, isType := tr.Members[0].Value.(*ast.TraitMemberType)
	assert.True(t, isType)
	_, isConst := tr.Members[1].Value.(*ast.TraitMemberConst)
	assert.True(t, isConst)
	sig, isFn := tr.Members[2].Value.(*ast.TraitMemberFunction)
	require.True(t, isFn)
	assert.Nil(t, sig.Body, "declaration only")
	deflt, isFn := tr.Members[3].Value.(*ast.TraitMemberFunction)
	require.True(t, isFn)
	assert.NotNil(t, deflt.Body, "default body")
}

func TestUnsafeTrait(t *testing.T) {
	item := parseItem(t, "unsafe trait Marker {}")
	tr, ok := item.(*ast.TraitItem)
	require.True(t, ok)
	assert.True(t, tr.Unsafe)
}

func TestImplForms(t *testing.T) {
	item := parseItem(t, "impl Widget { fn area(&self) -> f64 { self.w * self.h } }")
	impl, ok := item.(*ast.Impl)
	require.True(t, ok)
	assert.Nil(t, impl.OfTrait)
	require.Len(t, impl.Members, 1)

	item = parseItem(t, "impl Drop for Widget { fn drop(&mut self) {} }")
	impl, ok = item.(*ast.Impl)
	require.True(t, ok)
	require.NotNil(t, impl.OfTrait)
	assert.False(t, impl.OfTrait.Negative)

	item = parseItem(t, "impl !Send for Widget {}")
	impl, ok = item.(*ast.Impl)
	require.True(t, ok)
	require.NotNil(t, impl.OfTrait)
	assert.True(t, impl.OfTrait.Negative)

	item = parseItem(t, "unsafe impl Sync for Widget {}")
	impl, ok = item.(*ast.Impl)
	require.True(t, ok)
	assert.True(t, impl.Unsafe)
}

func TestImplMembers(t *testing.T) {
	input := `impl Foo {
		type Out = u8;
		const K: u8 = 3;
		pub fn get(&self) -> u8 { self.k }
		default fn fallback() {}
		derive!();
	}`
	item := parseItem(t, input)
	impl, ok := item.(*ast.Impl)
	require.True(t, ok)
	require.Len(t, impl.Members, 5)

	_, isType := impl.Members[0].Value.(*ast.ImplMemberType)
	assert.True(t, isType)
	_, isConst := impl.Members[1].Value.(*ast.ImplMemberConst)
	assert.True(t, isConst)
	fn, isFn := impl.Members[2].Value.(*ast.ImplMemberFunction)
	require.True(t, isFn)
	assert.NotNil(t, fn.Visibility)
	dflt, isFn := impl.Members[3].Value.(*ast.ImplMemberFunction)
	require.True(t, isFn)
	assert.True(t, dflt.Default)
	_, isMacro := impl.Members[4].Value.(*ast.ImplMemberMacroCall)
	assert.True(t, isMacro)
}

func TestFunctionQualifiers(t *testing.T) {
	item := parseItem(t, `pub const unsafe extern "C" fn raw() {}`)
	fn, ok := item.(*ast.Function)
	require.True(t, ok)
	assert.NotNil(t, fn.Header.Visibility)
	assert.True(t, fn.Header.Qualifiers.Const)
	assert.True(t, fn.Header.Qualifiers.Unsafe)
	assert.True(t, fn.Header.Qualifiers.Extern)
	assert.NotNil(t, fn.Header.Qualifiers.Abi)
}

func TestFunctionArguments(t *testing.T) {
	input := "fn take(self, (a, b): (u8, u8), rest: Vec<u8>) {}"
	item := parseItem(t, input)
	fn, ok := item.(*ast.Function)
	require.True(t, ok)
	require.Len(t, fn.Header.Arguments, 3)

	_, isSelf := fn.Header.Arguments[0].(*ast.SelfArgument)
	assert.True(t, isSelf)
	named, isNamed := fn.Header.Arguments[1].(*ast.NamedArgument)
	require.True(t, isNamed)
	_, isTuplePat := named.Name.Kind.(*ast.PatternTuple)
	assert.True(t, isTuplePat)
}

func TestSelfReceivers(t *testing.T) {
	inputs := []string{
		"fn a(self) {}",
		"fn b(mut self) {}",
		"fn c(&self) {}",
		"fn d(&mut self) {}",
		"fn e(&'a self) {}",
		"fn f(self: Box<Self>) {}",
		"fn g(&self, x: u8) {}",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			item := parseItem(t, input)
			fn, ok := item.(*ast.Function)
			require.True(t, ok)
			require.NotEmpty(t, fn.Header.Arguments)
			_, isSelf := fn.Header.Arguments[0].(*ast.SelfArgument)
			assert.True(t, isSelf)
		})
	}
}

func TestTypeAliasItem(t *testing.T) {
	item := parseItem(t, "pub type Result<T> = std::result::Result<T, Error>;")
	alias, ok := item.(*ast.TypeAliasItem)
	require.True(t, ok)
	assert.NotNil(t, alias.Visibility)
	assert.NotNil(t, alias.Generics)
}

func TestUseForms(t *testing.T) {
	item := parseItem(t, "use std::io;")
	use, ok := item.(*ast.UseItem)
	require.True(t, ok)
	_, isIdent := use.Path.Tail.(*ast.UseTailIdent)
	assert.True(t, isIdent)

	item = parseItem(t, "use std::io::Read as R;")
	use, ok = item.(*ast.UseItem)
	require.True(t, ok)
	tail, isIdent := use.Path.Tail.(*ast.UseTailIdent)
	require.True(t, isIdent)
	assert.NotNil(t, tail.Rename)

	item = parseItem(t, "use std::collections::*;")
	use, ok = item.(*ast.UseItem)
	require.True(t, ok)
	_, isGlob := use.Path.Tail.(*ast.UseTailGlob)
	assert.True(t, isGlob)

	item = parseItem(t, "use std::{io::Read, fmt};")
	use, ok = item.(*ast.UseItem)
	require.True(t, ok)
	multi, isMulti := use.Path.Tail.(*ast.UseTailMulti)
	require.True(t, isMulti)
	assert.Len(t, multi.Names, 2)

	item = parseItem(t, "use ::root::path;")
	use, ok = item.(*ast.UseItem)
	require.True(t, ok)
	assert.True(t, use.Path.Global)

	item = parseItem(t, "use self::local;")
	_, ok = item.(*ast.UseItem)
	assert.True(t, ok)
}

func TestModules(t *testing.T) {
	item := parseItem(t, "mod inner;")
	mod, ok := item.(*ast.Module)
	require.True(t, ok)
	assert.False(t, mod.Inline)
	assert.Nil(t, mod.Items)

	item = parseItem(t, "mod inner { fn hidden() {} use super::Thing; }")
	mod, ok = item.(*ast.Module)
	require.True(t, ok)
	assert.True(t, mod.Inline)
	assert.Len(t, mod.Items, 2)
}

func TestExternCrateItem(t *testing.T) {
	item := parseItem(t, "extern crate serde;")
	crate, ok := item.(*ast.ExternCrate)
	require.True(t, ok)
	assert.Nil(t, crate.Rename)

	item = parseItem(t, "extern crate serde as s;")
	crate, ok = item.(*ast.ExternCrate)
	require.True(t, ok)
	assert.NotNil(t, crate.Rename)
}

func TestExternBlockItem(t *testing.T) {
	input := `extern "C" {
		static errno: i32;
		fn malloc(size: usize) -> *mut u8;
	}`
	item := parseItem(t, input)
	ext, ok := item.(*ast.ExternBlock)
	require.True(t, ok)
	assert.NotNil(t, ext.Abi)
	require.Len(t, ext.Members, 2)

	_, isStatic := ext.Members[0].Value.(*ast.ExternBlockStatic)
	assert.True(t, isStatic)
	_, isFn := ext.Members[1].Value.(*ast.ExternBlockFunction)
	assert.True(t, isFn)
}

func TestMacroItems(t *testing.T) {
	item := parseItem(t, "lazy_static! { static ref X: u8 = 0; }")
	mc, ok := item.(*ast.MacroCallItem)
	require.True(t, ok)
	assert.Equal(t, ast.MacroCurly, mc.Call.Brace)

	item = parseItem(t, "declare!(a, b);")
	mc, ok = item.(*ast.MacroCallItem)
	require.True(t, ok)
	assert.Equal(t, ast.MacroParen, mc.Call.Brace)

	input := "macro_rules! square { ($x:expr) => { $x * $x }; }"
	item = parseItem(t, input)
	mc, ok = item.(*ast.MacroCallItem)
	require.True(t, ok)
	require.NotNil(t, mc.Call.Arg)
	assert.Equal(t, "square", mc.Call.Arg.Name(input))
}

func TestAttributedItems(t *testing.T) {
	input := "#[derive(Debug)]\n#[repr(C)]\nstruct S;"
	file := parseOK(t, input)
	require.Len(t, file.Items, 1)

	item := file.Items[0]
	require.Len(t, item.Attributes, 2)
	assert.Equal(t, "derive(Debug)", item.Attributes[0].Text.Of(input))
	assert.Equal(t, 0, item.Extent.Start, "wrapper starts at the first attribute")
	assert.Equal(t, len(input), item.Extent.End)
}

func TestWhereClauses(t *testing.T) {
	input := "fn bounded<T>(v: T) where T: Clone + Send, for<'a> &'a T: IntoIterator, 'static: 'static {}"
	item := parseItem(t, input)
	fn, ok := item.(*ast.Function)
	require.True(t, ok)
	require.Len(t, fn.Header.Wheres, 3)

	_, isType := fn.Header.Wheres[0].(*ast.WhereType)
	assert.True(t, isType)
	hr, isHr := fn.Header.Wheres[1].(*ast.WhereType)
	require.True(t, isHr)
	assert.NotEmpty(t, hr.Lifetimes)
	_, isLt := fn.Header.Wheres[2].(*ast.WhereLifetime)
	assert.True(t, isLt)
}

func TestVisibilityQualifiers(t *testing.T) {
	tests := []struct {
		input string
		want  ast.VisibilityQualifier
	}{
		{"pub fn a() {}", ast.VisibilityPublic},
		{"pub(crate) fn b() {}", ast.VisibilityCrate},
		{"pub(self) fn c() {}", ast.VisibilitySelf},
		{"pub(some::path) fn d() {}", ast.VisibilityPath},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			item := parseItem(t, tt.input)
			fn, ok := item.(*ast.Function)
			require.True(t, ok)
			require.NotNil(t, fn.Header.Visibility)
			assert.Equal(t, tt.want, fn.Header.Visibility.Qualifier)
		})
	}
}

func TestGenericDeclarations(t *testing.T) {
	input := "fn g<'a, 'b: 'a, T: Clone + 'a, U = DefaultType>() {}"
	item := parseItem(t, input)
	fn, ok := item.(*ast.Function)
	require.True(t, ok)
	g := fn.Header.Generics
	require.NotNil(t, g)
	require.Len(t, g.Lifetimes, 2)
	assert.NotEmpty(t, g.Lifetimes[1].Value.Bounds)
	require.Len(t, g.Types, 2)
	assert.NotEmpty(t, g.Types[0].Value.Bounds)
	assert.NotNil(t, g.Types[1].Value.Default)
}
