package number

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Bn254Element is the FieldElement backend used by the CLI driver and test
// suite, mirroring the original source's own Bn254Field test fixture
// (romgen.rs generate_rom_str::<Bn254Field>).
type Bn254Element struct {
	inner fr.Element
}

// Bn254Field is the Field factory for Bn254Element.
var Bn254Field Field = bn254Field{}

type bn254Field struct{}

func (bn254Field) Zero() FieldElement { return Bn254Element{} }

func (bn254Field) One() FieldElement {
	var e fr.Element
	e.SetOne()
	return Bn254Element{inner: e}
}

func (bn254Field) FromUint64(v uint64) FieldElement {
	var e fr.Element
	e.SetUint64(v)
	return Bn254Element{inner: e}
}

func (bn254Field) FromInt64(v int64) FieldElement {
	var e fr.Element
	if v < 0 {
		e.SetUint64(uint64(-v))
		e.Neg(&e)
	} else {
		e.SetUint64(uint64(v))
	}
	return Bn254Element{inner: e}
}

func (e Bn254Element) Add(other FieldElement) FieldElement {
	o := other.(Bn254Element)
	var r fr.Element
	r.Add(&e.inner, &o.inner)
	return Bn254Element{inner: r}
}

func (e Bn254Element) Sub(other FieldElement) FieldElement {
	o := other.(Bn254Element)
	var r fr.Element
	r.Sub(&e.inner, &o.inner)
	return Bn254Element{inner: r}
}

func (e Bn254Element) Mul(other FieldElement) FieldElement {
	o := other.(Bn254Element)
	var r fr.Element
	r.Mul(&e.inner, &o.inner)
	return Bn254Element{inner: r}
}

func (e Bn254Element) Neg() FieldElement {
	var r fr.Element
	r.Neg(&e.inner)
	return Bn254Element{inner: r}
}

func (e Bn254Element) Pow(exponent uint64) FieldElement {
	var r fr.Element
	var exp big.Int
	exp.SetUint64(exponent)
	r.Exp(e.inner, &exp)
	return Bn254Element{inner: r}
}

func (e Bn254Element) IsZero() bool { return e.inner.IsZero() }

func (e Bn254Element) IsOne() bool { return e.inner.IsOne() }

func (e Bn254Element) Equal(other FieldElement) bool {
	o, ok := other.(Bn254Element)
	if !ok {
		return false
	}
	return e.inner.Equal(&o.inner)
}

// IsInLowerHalf treats the field as representing signed values centered on
// the modulus: a value is "in the lower half" if it is strictly less than
// half the modulus, matching the original source's is_in_lower_half used to
// validate unsigned instruction literal arguments.
func (e Bn254Element) IsInLowerHalf() bool {
	v := e.ToBigInt()
	modulus := fr.Modulus()
	half := new(big.Int).Rsh(modulus, 1)
	return v.Cmp(half) <= 0
}

func (e Bn254Element) ToBigInt() *big.Int {
	var v big.Int
	e.inner.BigInt(&v)
	return &v
}

func (e Bn254Element) String() string {
	return e.ToBigInt().String()
}
