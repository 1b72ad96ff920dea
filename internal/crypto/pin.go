package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// pinService is the bcrypt-backed implementation of [PINHasher].
type pinService struct {
	cost int
}

// NewPINHasher constructs a [PINHasher] with the given bcrypt cost factor.
// A cost of zero selects bcrypt.DefaultCost. The cost is adaptive: raising
// it slows hashing and verification alike, which keeps brute-force attempts
// against short numeric PINs expensive.
func NewPINHasher(cost int) PINHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &pinService{cost: cost}
}

// Hash implements [PINHasher]. bcrypt generates a random salt per call and
// bakes it into the output, so hashing the same PIN twice yields different
// strings that both verify.
func (p *pinService) Hash(pin string) (string, error) {
	if !p.IsValidFormat(pin) {
		return "", fmt.Errorf("%w: PIN must be 4-6 digits", ErrInvalidPINFormat)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), p.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCipherFailure, err)
	}

	return string(hashed), nil
}

// Verify implements [PINHasher]. bcrypt's comparison is constant-time at the
// digest-comparison step. A malformed stored hash simply yields false.
func (p *pinService) Verify(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// IsValidFormat implements [PINHasher]: exactly 4 to 6 ASCII digits.
func (p *pinService) IsValidFormat(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
