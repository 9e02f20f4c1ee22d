package arith

import "golang.org/x/exp/constraints"

// Integer is the set of value types a search may be instantiated over. Every signed and unsigned Go integer width
// qualifies; the additive identity is the zero value and the multiplicative identity is 1.
type Integer interface {
	constraints.Integer
}

// CheckedAdd returns the sum of a and b and true, or false if the sum does not fit in T.
func CheckedAdd[T Integer](a, b T) (T, bool) {
	sum := a + b

	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}

	return sum, true
}

// CheckedSub returns the difference a - b and true, or false if the difference does not fit in T.
func CheckedSub[T Integer](a, b T) (T, bool) {
	difference := a - b

	if (b > 0 && difference > a) || (b < 0 && difference < a) {
		return 0, false
	}

	return difference, true
}

// CheckedMul returns the product of a and b and true, or false if the product does not fit in T.
func CheckedMul[T Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	product := a * b

	if product/b != a {
		return 0, false
	}

	// The most negative value times -1 wraps back onto itself and survives the quotient check above
	if a < 0 && b < 0 && product <= 0 {
		return 0, false
	}

	return product, true
}

// CheckedDiv returns the truncated quotient a / b and true. False is returned for division by zero and for the one
// signed quotient that does not fit in T.
func CheckedDiv[T Integer](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}

	quotient := a / b

	if a < 0 && b < 0 && quotient < 0 {
		return 0, false
	}

	return quotient, true
}

// IsPrime tests n for primality by trial division up to the square root of n.
func IsPrime[T Integer](n T) bool {
	if n < 2 {
		return false
	}

	for divisor := T(2); divisor <= n/divisor; divisor++ {
		if n%divisor == 0 {
			return false
		}
	}

	return true
}
