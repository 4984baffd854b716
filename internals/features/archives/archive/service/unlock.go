package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// UnlockTTL: dossier confidentiel tetap terbuka 1 jam setelah PIN benar.
const UnlockTTL = time.Hour

type unlockClaims struct {
	FolderID string `json:"fid"`
	jwt.RegisteredClaims
}

func UnlockCookieName(folderID uuid.UUID) string {
	return "archive_unlock_" + folderID.String()
}

// SignUnlock: token HS256 terikat ke dossier + user.
func SignUnlock(folderID, userID uuid.UUID, secret string, now time.Time) (string, error) {
	claims := unlockClaims{
		FolderID: folderID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(UnlockTTL)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return s, errors.Wrap(err, "sign unlock token")
}

// VerifyUnlock: true jika token valid, belum kedaluwarsa, dan cocok
// dengan dossier + user.
func VerifyUnlock(raw string, folderID, userID uuid.UUID, secret string) bool {
	if raw == "" {
		return false
	}
	var claims unlockClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return false
	}
	return claims.FolderID == folderID.String() && claims.Subject == userID.String()
}

func HashPin(pin string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(h), errors.Wrap(err, "hash pin")
}

func CheckPin(hash *string, pin string) bool {
	if hash == nil || *hash == "" || pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(pin)) == nil
}
