package token

import (
	"errors"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the session payload carried by every bearer token.
type Claims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens over a symmetric secret. It is
// stateless: there is no revocation, a token stays valid until its expiry.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue produces a signed HS256 token for the given identity, valid for ttl.
func (i *Issuer) Issue(userID uuid.UUID, email string, role entity.UserRole, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning its claims. Expired tokens
// are reported distinctly from malformed or tampered ones.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindExpiredToken, "Token inválido o expirado.", err)
		}
		return nil, apperr.Wrap(apperr.KindInvalidToken, "Token inválido o expirado.", err)
	}
	if !token.Valid {
		return nil, apperr.New(apperr.KindInvalidToken, "Token inválido o expirado.")
	}

	return claims, nil
}

// Subject parses the user id out of verified claims.
func (c *Claims) Subject() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
