// Package parser turns a token stream into an extent-tagged syntax tree.
//
// The grammar is a backtracking recursive descent over the trivia-free
// token vector. Every rule takes a parse point — a token index plus a
// sub-offset into a possibly split multi-symbol token — and either returns
// the point after what it consumed or fails, leaving the incoming point for
// the next alternative. Backtracking is therefore a value copy; the only
// state that survives a failed branch is the monotonic error aggregate,
// which remembers the expectations recorded at the furthest point reached.
//
// The sub-offset is what reconciles the greedy tokenizer with the grammar:
// closing a generic argument list inside Vec<Vec<u8>> needs a single ">"
// where the tokenizer produced ">>". Matching a whole-token expectation at
// such a point consults lexer.Split to recover the remaining suffix, and a
// failed whole-token match retries against the split prefix before giving
// up. Ordinary backtracking then works unchanged on points inside tokens.
//
// A failed parse surfaces a single *Error carrying the furthest byte offset
// and the sorted, deduplicated set of expectations recorded there.
package parser
