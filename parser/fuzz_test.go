package parser

import (
	"testing"

	"github.com/oxparse-dev/oxparse/lexer"
)

// Fuzz tests protect the global guarantees: the parser never panics, never
// loops and is deterministic, and the tokenizer tiles the input exactly.

func addSeedCorpus(f *testing.F) {
	seeds := []string{
		"",
		"fn main() {}",
		"use foo::Bar;",
		"let foo: Vec<Vec<u8>> = vec![];",
		"match 1 { _ => 1u8 }.count_ones()",
		"impl<'a,T>Foo<'a,T>for Bar<'a,T>{}",
		"#![feature(sweet)]",
		"foo!(())",
		"struct S { f: u8 }",
		"enum E { A(u8), B { x: u8 } }",
		"trait T: Send { fn f(&self); }",
		"fn f() -> Result<(), Error> { Ok(())? }",
		"a >>= b >>= c",
		"x<y>>z",
		"((((((((",
		"}}}}",
		"fn f(",
		"'a 'b' '",
		"0b 0x 1e 1.. r#\"",
		"/* /* /*",
		"macro_rules! m { () => {} }",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
}

func FuzzParseNoPanic(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		// Errors are expected on arbitrary input; panics and hangs are not.
		file, err := ParseFile(input)
		if err == nil && file == nil {
			t.Fatal("nil file without an error")
		}
	})
}

func FuzzParseDeterminism(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		fileA, errA := ParseFile(input)
		fileB, errB := ParseFile(input)

		if (errA == nil) != (errB == nil) {
			t.Fatalf("nondeterministic error: %v vs %v", errA, errB)
		}
		if errA != nil {
			if errA.Error() != errB.Error() {
				t.Fatalf("error messages differ:\n%v\n%v", errA, errB)
			}
			return
		}
		if len(fileA.Items) != len(fileB.Items) {
			t.Fatalf("item counts differ: %d vs %d", len(fileA.Items), len(fileB.Items))
		}
	})
}

func FuzzTokenizeRoundTrip(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			return
		}

		offset := 0
		for _, tok := range tokens {
			if tok.Extent.Start != offset {
				t.Fatalf("token gap at %d (extent %v)", offset, tok.Extent)
			}
			offset = tok.Extent.End
		}
		if offset != len(input) {
			t.Fatalf("tokens cover %d of %d bytes", offset, len(input))
		}
	})
}
