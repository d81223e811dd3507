package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeGenerator produces fixed-length numeric code strings.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// RandomCodeGenerator draws codes uniformly from [0, 10^length) using
// crypto/rand, zero-padded to the requested length.
type RandomCodeGenerator struct{}

func (RandomCodeGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
