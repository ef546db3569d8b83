package security

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	codeAlphabet         = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CollectionCodeLength = 6
	trackingPrefix       = "LF"
	trackingLength       = 10
)

// GenerateCollectionCode returns a random code of uppercase letters and digits
func GenerateCollectionCode() (string, error) {
	return randomString(CollectionCodeLength)
}

// GenerateTrackingNumber returns a shipment reference such as LF4K2Q9Z0B1M
func GenerateTrackingNumber() (string, error) {
	s, err := randomString(trackingLength)
	if err != nil {
		return "", err
	}
	return trackingPrefix + s, nil
}

// GenerateClaimToken returns an opaque token for the public claim URL
func GenerateClaimToken() string {
	return uuid.NewString()
}

func randomString(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b), nil
}

// NormalizeCode trims and upper-cases a user supplied code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CodesEqual compares a supplied code with the stored one in constant time
func CodesEqual(supplied, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(NormalizeCode(supplied)), []byte(stored)) == 1
}
