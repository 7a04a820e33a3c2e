// Package password provides one-way, salted password hashing and verification.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies passwords using bcrypt.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher at bcrypt.DefaultCost. The moderate cost keeps
// a single hash within tens of milliseconds under load; raising it trades
// request throughput for brute-force resistance.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted hash from the plaintext password.
// The plaintext is never retained beyond this call.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash.
// The underlying comparison is constant-time inside bcrypt.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
