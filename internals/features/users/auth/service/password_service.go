package service

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(h), nil
}

func CheckPasswordHash(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RandomPassword untuk akun parent yang dibuat dari inscription.
func RandomPassword(n int) string {
	if n < 8 {
		n = 8
	}
	out := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = passwordAlphabet[i%len(passwordAlphabet)]
			continue
		}
		out[i] = passwordAlphabet[k.Int64()]
	}
	return string(out)
}
