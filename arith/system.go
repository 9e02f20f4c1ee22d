package arith

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidModulus = errors.New("invalid modulus")
)

// NumberSystem defines the legality and computation of the four arithmetic operators over two operands. A false
// return means the combination is outside the system's domain, which prunes the branch rather than failing it.
// Implementations must be pure and deterministic.
type NumberSystem[T Integer] interface {
	Add(one, other T) (T, bool)
	Sub(one, other T) (T, bool)
	Mul(one, other T) (T, bool)
	Div(one, other T) (T, bool)

	// Reduce maps an arbitrary value into the system's canonical range.
	Reduce(value T) T
	String() string
}

// New returns the ordinary number system for a zero modulus and a modular number system otherwise.
func New[T Integer](modulus T) (NumberSystem[T], error) {
	if modulus == 0 {
		return Ordinary[T]{}, nil
	}

	modular, err := NewModular(modulus)
	if err != nil {
		return nil, err
	}

	return modular, nil
}

// Ordinary is bounded integer arithmetic with overflow checking. Its guards refuse degenerate combinations early:
// the left operand must strictly exceed the right one, addition and subtraction refuse the additive identity and
// multiplication and division refuse the multiplicative identity.
type Ordinary[T Integer] struct{}

func (s Ordinary[T]) Add(one, other T) (T, bool) {
	if one > other && one != 0 && other != 0 {
		return CheckedAdd(one, other)
	}

	return 0, false
}

func (s Ordinary[T]) Sub(one, other T) (T, bool) {
	if one > other && one != 0 && other != 0 {
		return CheckedSub(one, other)
	}

	return 0, false
}

func (s Ordinary[T]) Mul(one, other T) (T, bool) {
	if one > other && one != 1 && other != 1 {
		return CheckedMul(one, other)
	}

	return 0, false
}

func (s Ordinary[T]) Div(one, other T) (T, bool) {
	if one > other && one != 1 && other != 1 {
		return CheckedDiv(one, other)
	}

	return 0, false
}

func (s Ordinary[T]) Reduce(value T) T {
	return value
}

func (s Ordinary[T]) String() string {
	return "ordinary"
}

// Modular is arithmetic over the integers modulo a fixed positive modulus. All operands must already be canonical,
// that is in [0, modulus); an out of range operand is a programming error and panics. Division is only defined when
// the modulus is prime.
type Modular[T Integer] struct {
	modulus T
	prime   bool
}

func NewModular[T Integer](modulus T) (Modular[T], error) {
	if modulus <= 0 {
		return Modular[T]{}, fmt.Errorf("%w: %v", ErrInvalidModulus, modulus)
	}

	return Modular[T]{
		modulus: modulus,
		prime:   IsPrime(modulus),
	}, nil
}

func (s Modular[T]) Modulus() T {
	return s.modulus
}

func (s Modular[T]) IsPrime() bool {
	return s.prime
}

func (s Modular[T]) String() string {
	return fmt.Sprintf("modular(%v)", s.modulus)
}

func (s Modular[T]) Reduce(value T) T {
	value %= s.modulus

	if value < 0 {
		value += s.modulus
	}

	return value
}

func (s Modular[T]) assertCanonical(one, other T) {
	if one < 0 || one >= s.modulus || other < 0 || other >= s.modulus {
		panic(fmt.Sprintf("operands %v and %v are outside of [0, %v)", one, other, s.modulus))
	}
}

// addMod never overflows since both operands are below the modulus.
func (s Modular[T]) addMod(one, other T) T {
	if one >= s.modulus-other {
		return one - (s.modulus - other)
	}

	return one + other
}

func (s Modular[T]) mulMod(one, other T) T {
	if product, ok := CheckedMul(one, other); ok {
		return product % s.modulus
	}

	// Fall back to double-and-add when the direct product does not fit in T
	var result T

	for other > 0 {
		if other&1 == 1 {
			result = s.addMod(result, one)
		}

		one = s.addMod(one, one)
		other >>= 1
	}

	return result
}

func (s Modular[T]) pow(base, exponent T) T {
	result := s.Reduce(1)

	for exponent > 0 {
		if exponent&1 == 1 {
			result = s.mulMod(result, base)
		}

		base = s.mulMod(base, base)
		exponent >>= 1
	}

	return result
}

// inverse computes the multiplicative inverse of a non-zero value under a prime modulus by Fermat's little theorem.
func (s Modular[T]) inverse(value T) T {
	return s.pow(value, s.modulus-2)
}

func (s Modular[T]) Add(one, other T) (T, bool) {
	s.assertCanonical(one, other)
	return s.addMod(one, other), true
}

func (s Modular[T]) Sub(one, other T) (T, bool) {
	s.assertCanonical(one, other)

	if one == other {
		return 0, false
	}

	if one > other {
		return one - other, true
	}

	return one + (s.modulus - other), true
}

func (s Modular[T]) Mul(one, other T) (T, bool) {
	s.assertCanonical(one, other)
	return s.mulMod(one, other), true
}

func (s Modular[T]) Div(one, other T) (T, bool) {
	s.assertCanonical(one, other)

	if !s.prime || other == 0 {
		return 0, false
	}

	return s.mulMod(one, s.inverse(other)), true
}
