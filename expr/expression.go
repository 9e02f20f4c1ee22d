package expr

import (
	"fmt"
	"strings"

	"github.com/specterops/countdown/arith"
)

// Expression is an immutable binary expression tree. A leaf holds a single source value; an application holds an
// operator, its two operand subtrees and the value of the whole node, computed once when the node is built.
type Expression[T arith.Integer] struct {
	value    T
	operator Operator
	left     *Expression[T]
	right    *Expression[T]
}

func NewLeaf[T arith.Integer](value T) *Expression[T] {
	return &Expression[T]{
		value: value,
	}
}

// NewApplication builds an application node with an already computed value. See Apply for the checked form.
func NewApplication[T arith.Integer](operator Operator, left, right *Expression[T], value T) *Expression[T] {
	return &Expression[T]{
		value:    value,
		operator: operator,
		left:     left,
		right:    right,
	}
}

// Apply evaluates the operator over the values of left and right and builds the resulting application. False is
// returned when the number system leaves the combination undefined.
func Apply[T arith.Integer](system arith.NumberSystem[T], operator Operator, left, right *Expression[T]) (*Expression[T], bool) {
	if value, ok := Evaluate(system, operator, left.value, right.value); !ok {
		return nil, false
	} else {
		return NewApplication(operator, left, right, value), true
	}
}

func (s *Expression[T]) Value() T {
	return s.value
}

func (s *Expression[T]) IsLeaf() bool {
	return s.left == nil
}

// Operator returns the node's operator. The second return is false for leaves.
func (s *Expression[T]) Operator() (Operator, bool) {
	return s.operator, !s.IsLeaf()
}

func (s *Expression[T]) Left() *Expression[T] {
	return s.left
}

func (s *Expression[T]) Right() *Expression[T] {
	return s.right
}

// IsValid reports whether this node is in canonical form. Applications may not evaluate to the additive identity,
// and an Add or Mul application may not have a right operand that is an application of the same operator; only the
// left nested form of such a chain is kept.
func (s *Expression[T]) IsValid() bool {
	if s.IsLeaf() {
		return true
	}

	if s.value == 0 {
		return false
	}

	switch s.operator {
	case Add, Mul:
		if rightOperator, isApplication := s.right.Operator(); isApplication && rightOperator == s.operator {
			return false
		}
	}

	return true
}

// Reevaluate recomputes the value of the tree from its leaves. False is returned if any node is undefined under the
// given number system.
func (s *Expression[T]) Reevaluate(system arith.NumberSystem[T]) (T, bool) {
	if s.IsLeaf() {
		return s.value, true
	}

	left, ok := s.left.Reevaluate(system)
	if !ok {
		return 0, false
	}

	right, ok := s.right.Reevaluate(system)
	if !ok {
		return 0, false
	}

	return Evaluate(system, s.operator, left, right)
}

// Check reports whether re-evaluating the tree reproduces its memoized value.
func (s *Expression[T]) Check(system arith.NumberSystem[T]) bool {
	value, ok := s.Reevaluate(system)
	return ok && value == s.value
}

// Size returns the number of leaves in the tree.
func (s *Expression[T]) Size() int {
	if s.IsLeaf() {
		return 1
	}

	return s.left.Size() + s.right.Size()
}

func (s *Expression[T]) format(builder *strings.Builder, parenthesize bool) {
	if s.IsLeaf() {
		fmt.Fprint(builder, s.value)
		return
	}

	if parenthesize {
		builder.WriteByte('(')
	}

	s.left.format(builder, true)
	builder.WriteByte(' ')
	builder.WriteString(s.operator.String())
	builder.WriteByte(' ')
	s.right.format(builder, true)

	if parenthesize {
		builder.WriteByte(')')
	}
}

// String renders the tree as "left operator right" with every nested application parenthesized.
func (s *Expression[T]) String() string {
	builder := &strings.Builder{}
	s.format(builder, false)

	return builder.String()
}

// Parenthesized renders the tree like String but also wraps the root application in parentheses.
func (s *Expression[T]) Parenthesized() string {
	builder := &strings.Builder{}
	s.format(builder, true)

	return builder.String()
}

// Debug renders the structure of the tree, for example "App Add (Val 5) (Val 4)".
func (s *Expression[T]) Debug() string {
	if s.IsLeaf() {
		return fmt.Sprintf("Val %v", s.value)
	}

	return fmt.Sprintf("App %s (%s) (%s)", s.operator.Name(), s.left.Debug(), s.right.Debug())
}
