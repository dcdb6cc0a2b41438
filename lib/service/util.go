package service

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/labstack/gommon/random"
)

const alphaNumBytes = random.Alphanumeric

func randBytesFromStr(length int, from string) ([]byte, error) {
	b := make([]byte, length)
	fromLenBigInt := big.NewInt(int64(len(from)))
	for i := range b {
		r, err := rand.Int(rand.Reader, fromLenBigInt)
		if err != nil {
			return nil, err
		}
		b[i] = from[r.Int64()]
	}
	return b, nil
}

func randomID() (string, error) {
	b, err := randBytesFromStr(20, alphaNumBytes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// randomSecret returns 32 bytes of CSPRNG material hex encoded. Used for
// token values and webhook secrets, both are bearer capabilities.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
