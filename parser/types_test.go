package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
)

// parseType drives the type rule over the whole input.
func parseType(t *testing.T, input string) ast.Type {
	t.Helper()
	p := testParser(t, input)
	typ, pt, ok := p.typ(point{})
	require.True(t, ok, "type failed: %v", p.failureError())
	require.Equal(t, lexer.EndOfFile, p.at(pt).Type,
		"type did not consume the whole input %q", input)
	return typ
}

func TestTypeNamed(t *testing.T) {
	typ := parseType(t, "std::vec::Vec<u8>")
	named, ok := typ.Kind.(*ast.TypeNamed)
	require.True(t, ok)
	require.Len(t, named.Components, 3)
	assert.NotNil(t, named.Components[2].Generics)
}

func TestTypeShapes(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, typ ast.Type)
	}{
		{"&str", func(t *testing.T, typ ast.Type) {
			ref, ok := typ.Kind.(*ast.TypeReference)
			require.True(t, ok)
			assert.False(t, ref.Mutable)
			assert.Nil(t, ref.Lifetime)
		}},
		{"&'a mut T", func(t *testing.T, typ ast.Type) {
			ref, ok := typ.Kind.(*ast.TypeReference)
			require.True(t, ok)
			assert.True(t, ref.Mutable)
			assert.NotNil(t, ref.Lifetime)
		}},
		{"&&T", func(t *testing.T, typ ast.Type) {
			// && splits into a reference to a reference.
			outer, ok := typ.Kind.(*ast.TypeReference)
			require.True(t, ok)
			_, ok = outer.Inner.Kind.(*ast.TypeReference)
			assert.True(t, ok)
		}},
		{"*const u8", func(t *testing.T, typ ast.Type) {
			ptr, ok := typ.Kind.(*ast.TypePointer)
			require.True(t, ok)
			assert.False(t, ptr.Mutable)
		}},
		{"*mut u8", func(t *testing.T, typ ast.Type) {
			ptr, ok := typ.Kind.(*ast.TypePointer)
			require.True(t, ok)
			assert.True(t, ptr.Mutable)
		}},
		{"[u8]", func(t *testing.T, typ ast.Type) {
			_, ok := typ.Kind.(*ast.TypeSlice)
			assert.True(t, ok)
		}},
		{"[u8; 16]", func(t *testing.T, typ ast.Type) {
			arr, ok := typ.Kind.(*ast.TypeArray)
			require.True(t, ok)
			_, ok = arr.Count.(*ast.ExprNumber)
			assert.True(t, ok)
		}},
		{"(u8, u16)", func(t *testing.T, typ ast.Type) {
			tup, ok := typ.Kind.(*ast.TypeTuple)
			require.True(t, ok)
			assert.Len(t, tup.Elems, 2)
		}},
		{"!", func(t *testing.T, typ ast.Type) {
			_, ok := typ.Kind.(*ast.TypeUninhabited)
			assert.True(t, ok)
		}},
		{"fn(u8, u16) -> bool", func(t *testing.T, typ ast.Type) {
			fn, ok := typ.Kind.(*ast.TypeFunction)
			require.True(t, ok)
			assert.Len(t, fn.Arguments, 2)
			assert.NotNil(t, fn.Return)
			assert.False(t, fn.Variadic)
		}},
		{`unsafe extern "C" fn(u8, ...)`, func(t *testing.T, typ ast.Type) {
			fn, ok := typ.Kind.(*ast.TypeFunction)
			require.True(t, ok)
			assert.True(t, fn.Unsafe)
			assert.NotNil(t, fn.Abi)
			assert.True(t, fn.Variadic)
		}},
		{"impl Iterator<Item = u8>", func(t *testing.T, typ ast.Type) {
			impl, ok := typ.Kind.(*ast.TypeImplTrait)
			require.True(t, ok)
			named, ok := impl.Inner.Kind.(*ast.TypeNamed)
			require.True(t, ok)
			angle, ok := named.Components[0].Generics.(*ast.TypeGenericsAngle)
			require.True(t, ok)
			assert.Len(t, angle.Bindings, 1)
		}},
		{"for<'a> fn(&'a u8)", func(t *testing.T, typ ast.Type) {
			hr, ok := typ.Kind.(*ast.TypeHigherRanked)
			require.True(t, ok)
			assert.Len(t, hr.Lifetimes, 1)
		}},
		{"<T as IntoIterator>::Item", func(t *testing.T, typ ast.Type) {
			dis, ok := typ.Kind.(*ast.TypeDisambiguation)
			require.True(t, ok)
			assert.NotNil(t, dis.To)
			assert.Len(t, dis.Components, 1)
		}},
		{"Fn(u8) -> u8", func(t *testing.T, typ ast.Type) {
			named, ok := typ.Kind.(*ast.TypeNamed)
			require.True(t, ok)
			_, ok = named.Components[0].Generics.(*ast.TypeGenericsFunction)
			assert.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, parseType(t, tt.input))
		})
	}
}

func TestTypeAdditionalBounds(t *testing.T) {
	typ := parseType(t, "Box<T> + Send + 'static")
	require.Len(t, typ.Additional, 2)
	_, isTrait := typ.Additional[0].(*ast.AdditionalTrait)
	assert.True(t, isTrait)
	_, isLifetime := typ.Additional[1].(*ast.AdditionalLifetime)
	assert.True(t, isLifetime)
}

// TestNestedGenericsSplitDepth closes 1 to 6 nested generic argument lists,
// exercising 0 to 3 splitter firings (one per >> token) on the trailing
// angle run.
func TestNestedGenericsSplitDepth(t *testing.T) {
	for depth := 1; depth <= 6; depth++ {
		input := strings.Repeat("Vec<", depth) + "u8" + strings.Repeat(">", depth)
		t.Run(input, func(t *testing.T) {
			typ := parseType(t, input)
			named, ok := typ.Kind.(*ast.TypeNamed)
			require.True(t, ok)
			assert.Equal(t, len(input), typ.Extent.End)
			assert.Equal(t, "Vec", named.Components[0].Ident.Name(input))
		})
	}
}

// TestNestedGenericsBeforeEquals drives the split machinery through the
// >>= token: two splits leave the = for the let initializer.
func TestNestedGenericsBeforeEquals(t *testing.T) {
	input := "let x: Vec<Vec<u8>>= y;"
	p := testParser(t, input)
	stmt, pt, ok := p.statement(point{})
	require.True(t, ok, "failed: %v", p.failureError())
	require.Equal(t, lexer.EndOfFile, p.at(pt).Type)

	se := stmt.(*ast.StatementExpression)
	let := se.Expression.(*ast.ExprLet)
	require.NotNil(t, let.Type)
	require.NotNil(t, let.Value)
}

// TestGreaterEqualAfterGenerics drives a >= split: the > closes the
// generics, the = remains for the initializer.
func TestGreaterEqualAfterGenerics(t *testing.T) {
	input := "let x: Vec<u8>= y;"
	p := testParser(t, input)
	_, pt, ok := p.statement(point{})
	require.True(t, ok, "failed: %v", p.failureError())
	require.Equal(t, lexer.EndOfFile, p.at(pt).Type)
}

// TestNestedTypeExpressionShapes parses a fixed set of nested generic types
// with varying shapes and checks they parse to the full extent.
func TestNestedTypeExpressionShapes(t *testing.T) {
	shapes := []string{
		"Result<Vec<u8>, Box<Error>>",
		"HashMap<String, Vec<(u8, u16)>>",
		"Option<Option<Option<u8>>>",
		"Iterator<Item = Vec<u8>>",
		"Foo<'a, T, U>",
		"A<B<C<D<E>>>>",
	}
	for i, input := range shapes {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			typ := parseType(t, input)
			assert.Equal(t, 0, typ.Extent.Start)
			assert.Equal(t, len(input), typ.Extent.End)
		})
	}
}
