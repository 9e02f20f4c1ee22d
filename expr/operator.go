package expr

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"unicode"

	"github.com/specterops/countdown/arith"
)

var (
	ErrUnknownOperator = errors.New("unknown operator")
)

// Operator is a binary arithmetic operation.
type Operator uint8

const (
	Add Operator = iota
	Sub
	Mul
	Div

	numOperators
)

// operatorBits maps each operator to the single bit that represents it in an Operators set. bitOperator below is the
// inverse mapping; the two must stay in sync.
var operatorBits = [numOperators]Operators{
	Add: 1 << 0,
	Sub: 1 << 1,
	Mul: 1 << 2,
	Div: 1 << 3,
}

func bitOperator(bit Operators) (Operator, bool) {
	switch bit {
	case 1 << 0:
		return Add, true
	case 1 << 1:
		return Sub, true
	case 1 << 2:
		return Mul, true
	case 1 << 3:
		return Div, true
	default:
		return 0, false
	}
}

// Bit returns the canonical single bit representing this operator in an Operators set.
func (s Operator) Bit() Operators {
	if s >= numOperators {
		return 0
	}

	return operatorBits[s]
}

func (s Operator) String() string {
	switch s {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return fmt.Sprintf("Operator(%d)", uint8(s))
	}
}

// Name returns the operator's word form as used in debug renderings.
func (s Operator) Name() string {
	switch s {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	default:
		return s.String()
	}
}

// ParseOperator accepts either the operator symbol or its case-insensitive name.
func ParseOperator(token string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "+", "add":
		return Add, nil
	case "-", "sub":
		return Sub, nil
	case "*", "mul":
		return Mul, nil
	case "/", "div":
		return Div, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, token)
	}
}

// Evaluate applies the operator to the two operands under the given number system.
func Evaluate[T arith.Integer](system arith.NumberSystem[T], operator Operator, one, other T) (T, bool) {
	switch operator {
	case Add:
		return system.Add(one, other)
	case Sub:
		return system.Sub(one, other)
	case Mul:
		return system.Mul(one, other)
	case Div:
		return system.Div(one, other)
	default:
		return 0, false
	}
}

// Operators is a set of operators stored as a bitmask. Iteration order is ascending bit order, which is also the
// declaration order of the operator constants.
type Operators uint8

const (
	NoOperators  Operators = 0
	AllOperators Operators = 0xF
)

func NewOperators(operators ...Operator) Operators {
	var set Operators

	for _, operator := range operators {
		set |= operator.Bit()
	}

	return set
}

func (s Operators) Contains(operator Operator) bool {
	bit := operator.Bit()
	return bit != 0 && s&bit == bit
}

func (s Operators) Len() int {
	count := 0

	for range s.All() {
		count++
	}

	return count
}

// All yields every operator in the set in ascending bit order.
func (s Operators) All() iter.Seq[Operator] {
	return func(yield func(Operator) bool) {
		for mask := Operators(1); mask&AllOperators != 0; mask <<= 1 {
			if s&mask == 0 {
				continue
			}

			if operator, ok := bitOperator(s & mask); ok && !yield(operator) {
				return
			}
		}
	}
}

// Slice returns the members of the set in iteration order. The result is a fresh slice safe to retain.
func (s Operators) Slice() []Operator {
	operators := make([]Operator, 0, numOperators)

	for operator := range s.All() {
		operators = append(operators, operator)
	}

	return operators
}

func (s Operators) String() string {
	symbols := make([]string, 0, numOperators)

	for operator := range s.All() {
		symbols = append(symbols, operator.String())
	}

	return strings.Join(symbols, " ")
}

func (s Operators) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts operator words and symbols separated by whitespace, commas or brackets. Runs of symbols
// without separators, such as "+-*/", are also accepted.
func (s *Operators) UnmarshalText(text []byte) error {
	var (
		set    Operators
		fields = strings.FieldsFunc(string(text), func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == '[' || r == ']'
		})
	)

	for _, field := range fields {
		if unicode.IsLetter([]rune(field)[0]) {
			if operator, err := ParseOperator(field); err != nil {
				return err
			} else {
				set |= operator.Bit()
			}

			continue
		}

		for _, symbol := range field {
			if operator, err := ParseOperator(string(symbol)); err != nil {
				return err
			} else {
				set |= operator.Bit()
			}
		}
	}

	*s = set
	return nil
}
