package main

import (
	"fmt"
)

// Location names a 1-based line/column position in a Brainfuck source file.
// It is carried on every token and syntax node purely for diagnostics.
type Location struct {
	Line, Col int
}

func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Col)
}

// Token is one of the eight significant Brainfuck characters together with
// the location it was read from. All other source bytes are comments and
// never produce a token.
type Token struct {
	Char byte
	Loc  Location
}

func isSignificant(c byte) bool {
	switch c {
	case '+', '-', '>', '<', '[', ']', ',', '.':
		return true
	default:
		return false
	}
}

// Lex streams src once, filtering it down to the significant Brainfuck
// characters and their source locations. Every other byte, including
// whitespace, is skipped as a comment, but still advances Col; '\n' advances
// Line and resets Col instead. Lex never fails on content and has no error
// return; running out of memory while lexing is left to the Go runtime and
// is not converted into an OutOfMemoryError.
func Lex(src []byte) []Token {
	toks := make([]Token, 0, len(src))
	line, col := 1, 1
	for _, c := range src {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		if isSignificant(c) {
			toks = append(toks, Token{Char: c, Loc: Location{Line: line, Col: col}})
		}
		col++
	}
	return toks
}
