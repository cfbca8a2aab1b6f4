package number

import "testing"

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestBn254ArithmeticBasics(t *testing.T) {
	one := Bn254Field.One()
	two := Bn254Field.FromUint64(2)
	three := Bn254Field.FromUint64(3)

	assert(t, one.Add(two).Equal(three), "1 + 2 should equal 3")
	assert(t, three.Sub(two).Equal(one), "3 - 2 should equal 1")
	assert(t, two.Mul(three).Equal(Bn254Field.FromUint64(6)), "2 * 3 should equal 6")
	assert(t, two.Pow(3).Equal(Bn254Field.FromUint64(8)), "2 ^ 3 should equal 8")
}

func TestBn254NegativeLiterals(t *testing.T) {
	negOne := Bn254Field.FromInt64(-1)
	one := Bn254Field.One()
	assert(t, negOne.Neg().Equal(one), "-(-1) should equal 1")
	assert(t, negOne.Add(one).IsZero(), "-1 + 1 should be zero")
}

func TestBn254LowerHalf(t *testing.T) {
	zero := Bn254Field.Zero()
	small := Bn254Field.FromUint64(1000)
	negOne := Bn254Field.FromInt64(-1)

	assert(t, zero.IsInLowerHalf(), "zero should be in the lower half")
	assert(t, small.IsInLowerHalf(), "small positive values should be in the lower half")
	assert(t, !negOne.IsInLowerHalf(), "-1 (modulus-1) should not be in the lower half")
}
