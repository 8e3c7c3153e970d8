package parcel

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// PickupCodeLength is the number of decimal digits in a pickup code.
const PickupCodeLength = 6

const pickupCodeSpace = 1_000_000

// ErrPickupCodeIsNotConstructed is returned when a zero-value PickupCode is validated.
var ErrPickupCodeIsNotConstructed = errs.NewValueIsRequiredError("PickupCode must be created via NewPickupCode")

// PickupCode is the six digit secret a recipient shows to collect a parcel.
// Codes span "000000" to "999999"; leading zeros are significant.
type PickupCode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewPickupCode validates that value is exactly six ASCII digits.
func NewPickupCode(value string) (PickupCode, error) {
	if len(value) != PickupCodeLength {
		return PickupCode{}, errs.NewValueIsInvalidErrorWithCause(
			"pickupCode", fmt.Errorf("must have %d digits", PickupCodeLength))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return PickupCode{}, errs.NewValueIsInvalidErrorWithCause("pickupCode", fmt.Errorf("must be numeric"))
		}
	}
	return PickupCode{value: value, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the code was built by NewPickupCode.
func (c PickupCode) Validate() error {
	return c.guard.Validate(ErrPickupCodeIsNotConstructed)
}

// String returns the six digits.
func (c PickupCode) String() string {
	return c.value
}

// Matches compares supplied with the code in constant time. There is no
// normalization: surrounding spaces or a missing leading zero fail.
func (c PickupCode) Matches(supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(supplied)) == 1
}

// RandomSource yields uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it, which tests use for deterministic codes.
type RandomSource interface {
	IntN(n int) int
}

// PickupCodeGenerator produces the code assigned to a newly registered parcel.
type PickupCodeGenerator interface {
	Generate() (PickupCode, error)
}

// RandomPickupCodeGenerator draws codes uniformly from the full six digit space.
type RandomPickupCodeGenerator struct {
	source RandomSource
}

// NewRandomPickupCodeGenerator returns a generator backed by source.
func NewRandomPickupCodeGenerator(source RandomSource) *RandomPickupCodeGenerator {
	return &RandomPickupCodeGenerator{source: source}
}

// NewSecurePickupCodeGenerator returns a generator backed by crypto/rand.
func NewSecurePickupCodeGenerator() *RandomPickupCodeGenerator {
	return NewRandomPickupCodeGenerator(CryptoSource{})
}

// Generate returns a new code. Codes are not unique across parcels; verification
// is always scoped to one parcel.
func (g *RandomPickupCodeGenerator) Generate() (PickupCode, error) {
	n := g.source.IntN(pickupCodeSpace)
	if n < 0 || n >= pickupCodeSpace {
		return PickupCode{}, errs.NewValueIsOutOfRangeError("pickupCode", n, 0, pickupCodeSpace-1)
	}
	return NewPickupCode(fmt.Sprintf("%0*d", PickupCodeLength, n))
}

// CryptoSource is a RandomSource reading from crypto/rand.
type CryptoSource struct{}

// IntN returns a uniform integer in [0, n).
func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand.Reader does not return errors on supported platforms
		panic(err)
	}
	return int(v.Int64())
}
