package parse

import (
	"fmt"
	"unicode"
)

type TokenKind uint8

const (
	NumberToken TokenKind = iota
	PunctuationToken
	WordToken
)

func (s TokenKind) String() string {
	switch s {
	case NumberToken:
		return "number"
	case PunctuationToken:
		return "punctuation"
	case WordToken:
		return "word"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(s))
	}
}

// Token is a run of ASCII digits, a run of ASCII letters or a single printable punctuation rune.
type Token struct {
	Kind TokenKind
	Text string
}

func (s Token) String() string {
	return fmt.Sprintf("%s %q", s.Kind, s.Text)
}

func classify(r rune) (TokenKind, bool) {
	switch {
	case r >= '0' && r <= '9':
		return NumberToken, true
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return WordToken, true
	case r < unicode.MaxASCII && unicode.IsGraphic(r) && !unicode.IsSpace(r):
		return PunctuationToken, true
	default:
		return 0, false
	}
}

// Tokenize splits a line of user input into tokens. Whitespace and anything outside printable ASCII only separates
// tokens. Adjacent punctuation runes are separate tokens, so "[1,2]" yields four tokens.
func Tokenize(line string) []Token {
	var (
		tokens []Token
		start  = -1
		kind   TokenKind
	)

	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, Token{
				Kind: kind,
				Text: line[start:end],
			})

			start = -1
		}
	}

	for idx, r := range line {
		nextKind, ok := classify(r)

		if !ok {
			flush(idx)
			continue
		}

		if start >= 0 && nextKind != kind {
			flush(idx)
		}

		if nextKind == PunctuationToken {
			tokens = append(tokens, Token{
				Kind: PunctuationToken,
				Text: string(r),
			})

			continue
		}

		if start < 0 {
			start = idx
			kind = nextKind
		}
	}

	flush(len(line))
	return tokens
}
