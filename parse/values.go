package parse

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/expr"
)

var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrNumberRange     = errors.New("number out of range")
	ErrEmpty           = errors.New("no input")
)

func isSigned[T arith.Integer]() bool {
	var zero T
	return zero-1 < zero
}

// convert parses the digits of a number token, with an optional leading minus, into T.
func convert[T arith.Integer](digits string, negative bool) (T, error) {
	if negative {
		if !isSigned[T]() {
			return 0, fmt.Errorf("%w: -%s", ErrNumberRange, digits)
		}

		parsed, err := strconv.ParseInt("-"+digits, 10, 64)
		if err != nil || int64(T(parsed)) != parsed {
			return 0, fmt.Errorf("%w: -%s", ErrNumberRange, digits)
		}

		return T(parsed), nil
	}

	parsed, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || uint64(T(parsed)) != parsed || T(parsed) < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNumberRange, digits)
	}

	return T(parsed), nil
}

type cursor struct {
	tokens []Token
	next   int
}

func (s *cursor) done() bool {
	return s.next >= len(s.tokens)
}

func (s *cursor) peek() (Token, bool) {
	if s.done() {
		return Token{}, false
	}

	return s.tokens[s.next], true
}

func (s *cursor) isPunctuation(text string) bool {
	token, ok := s.peek()
	return ok && token.Kind == PunctuationToken && token.Text == text
}

// Number parses a single integer, optionally negative for signed T. Surrounding whitespace is ignored and nothing
// else may follow the number.
func Number[T arith.Integer](line string) (T, error) {
	tokens := &cursor{
		tokens: Tokenize(line),
	}

	if tokens.done() {
		return 0, ErrEmpty
	}

	value, err := parseNumber[T](tokens)
	if err != nil {
		return 0, err
	}

	if token, hasMore := tokens.peek(); hasMore {
		return 0, fmt.Errorf("%w: %s", ErrUnexpectedToken, token)
	}

	return value, nil
}

func parseNumber[T arith.Integer](tokens *cursor) (T, error) {
	negative := tokens.isPunctuation("-")

	if negative {
		tokens.next += 1
	}

	token, ok := tokens.peek()

	if !ok {
		return 0, fmt.Errorf("%w: expected a number at end of input", ErrUnexpectedToken)
	}

	if token.Kind != NumberToken {
		return 0, fmt.Errorf("%w: expected a number, found %s", ErrUnexpectedToken, token)
	}

	tokens.next += 1
	return convert[T](token.Text, negative)
}

// Numbers parses a list of integers. The list may be bracketed and comma separated, as in "[1, 2, 3]", or a bare run
// of numbers separated by whitespace or commas.
func Numbers[T arith.Integer](line string) ([]T, error) {
	var (
		tokens = &cursor{
			tokens: Tokenize(line),
		}
		bracketed = tokens.isPunctuation("[")
		numbers   []T
	)

	if bracketed {
		tokens.next += 1
	}

	for {
		if bracketed && tokens.isPunctuation("]") {
			tokens.next += 1
			break
		}

		if tokens.done() {
			if bracketed {
				return nil, fmt.Errorf("%w: expected ']' at end of input", ErrUnexpectedToken)
			}

			break
		}

		number, err := parseNumber[T](tokens)
		if err != nil {
			return nil, err
		}

		numbers = append(numbers, number)

		if tokens.isPunctuation(",") {
			tokens.next += 1
		}
	}

	if token, hasMore := tokens.peek(); hasMore {
		return nil, fmt.Errorf("%w: %s after the closing bracket", ErrUnexpectedToken, token)
	}

	if len(numbers) == 0 {
		return nil, ErrEmpty
	}

	return numbers, nil
}

// Operators parses a list of operators given as symbols or case-insensitive names, for example "[+, -]", "+-*/" or
// "add mul". Brackets and commas are optional separators.
func Operators(line string) (expr.Operators, error) {
	var operators expr.Operators

	for _, token := range Tokenize(line) {
		switch token.Kind {
		case PunctuationToken:
			if token.Text == "[" || token.Text == "]" || token.Text == "," {
				continue
			}

		case NumberToken:
			return expr.NoOperators, fmt.Errorf("%w: %s", ErrUnexpectedToken, token)
		}

		operator, err := expr.ParseOperator(token.Text)
		if err != nil {
			return expr.NoOperators, err
		}

		operators |= operator.Bit()
	}

	if operators == expr.NoOperators {
		return expr.NoOperators, ErrEmpty
	}

	return operators, nil
}
