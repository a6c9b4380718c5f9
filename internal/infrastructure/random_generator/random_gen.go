package randomgenerator

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/dcastillo/user-service/internal/domain/contract"
)

// codeUpperBound caps activation codes at one million, inclusive.
const codeUpperBound = 1_000_000

// ActivationCodeGenerator produces one-time numeric confirmation codes.
// Codes gate only account activation and are bounded by the token expiry,
// so collision across users is irrelevant.
type ActivationCodeGenerator struct{}

func NewActivationCodeGenerator() contract.IActivationCodeGenerator {
	return &ActivationCodeGenerator{}
}

var _ contract.IActivationCodeGenerator = (*ActivationCodeGenerator)(nil)

// GenerateActivationCode returns a random integer in [1, 1000000] as a
// numeric string.
func (g *ActivationCodeGenerator) GenerateActivationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeUpperBound))
	if err != nil {
		return "", fmt.Errorf("failed to generate activation code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1), nil
}
