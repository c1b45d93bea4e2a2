// Package lexer turns source text into a flat sequence of extent-tagged
// tokens.
//
// The tokenizer is greedy: multi-character operators are always produced at
// their maximal length, so ">>=" is one ShiftRightEquals token rather than
// three. The parser undoes this where the grammar needs a shorter token (a
// single ">" closing a generic argument list) through Split, which is a pure
// view over a token and never mutates the token vector.
//
// Whitespace, comments, and doc comments are produced as ordinary tokens.
// Concatenating the extents of every produced token reconstructs the input
// byte for byte; consumers that do not care about trivia filter it out with
// Token.IsTrivia.
package lexer
