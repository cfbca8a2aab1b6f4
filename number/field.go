// Package number defines the field-element interface the core operates over.
//
// The core packages (pil, asm, romgen, convert) never hard-code a concrete
// field; they are parameterized over FieldElement the way the upstream
// compiler is parameterized over a field trait. cmd/asmpilc wires in the
// concrete Bn254Element backend.
package number

import "math/big"

// FieldElement is the arithmetic surface the core transform needs from a
// field implementation. It mirrors the handful of operations romgen and
// convert actually perform on constants: building small values, negating,
// multiplying, exponentiating, and checking which half of the field a value
// falls into (used to validate "unsigned" instruction literal arguments).
type FieldElement interface {
	// Add returns the sum of the receiver and other.
	Add(other FieldElement) FieldElement
	// Sub returns the receiver minus other.
	Sub(other FieldElement) FieldElement
	// Mul returns the product of the receiver and other.
	Mul(other FieldElement) FieldElement
	// Neg returns the additive inverse of the receiver.
	Neg() FieldElement
	// Pow raises the receiver to a non-negative integer exponent.
	Pow(exponent uint64) FieldElement
	// IsZero reports whether the receiver is the additive identity.
	IsZero() bool
	// IsOne reports whether the receiver is the multiplicative identity.
	IsOne() bool
	// Equal reports whether the receiver and other represent the same value.
	Equal(other FieldElement) bool
	// IsInLowerHalf reports whether the receiver, read as a signed value
	// centered on the field's modulus, is non-negative. Used to validate
	// "unsigned" instruction literal arguments (spec section 4.2, Phase B).
	IsInLowerHalf() bool
	// ToBigInt returns the canonical non-negative representative of the
	// receiver, used to bound-check exponents against math.MaxUint32.
	ToBigInt() *big.Int
	// String renders the element in decimal, used for PIL text rendering.
	String() string
}

// Field is a factory for a concrete FieldElement implementation. Every
// concrete field backend (currently only Bn254Element) implements this so
// the CLI can select a field by name without the core packages depending on
// any concrete field type.
type Field interface {
	// Zero returns the additive identity.
	Zero() FieldElement
	// One returns the multiplicative identity.
	One() FieldElement
	// FromUint64 builds an element from a non-negative integer literal.
	FromUint64(v uint64) FieldElement
	// FromInt64 builds an element from a (possibly negative) integer literal.
	FromInt64(v int64) FieldElement
}
