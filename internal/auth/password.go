package auth

import "golang.org/x/crypto/bcrypt"

// Hasher is the one-way hash port used for passwords and one-time
// passcodes. Verify takes the candidate first and the stored hash second.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(candidate, hash string) bool
}

// BcryptHasher implements Hasher with bcrypt at a configured cost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher builds a hasher, falling back to the bcrypt default cost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
