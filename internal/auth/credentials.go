package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const userIDClaim = "user_id"

var errNoUserID = errors.New("token has no user_id claim")

// Credentials hashes passwords and issues/verifies signed bearer tokens.
// One production implementation: bcrypt + HS256 JWT.
type Credentials struct {
	secret []byte
	ttl    time.Duration
}

// NewCredentials returns a Credentials signing with secret; issued tokens
// expire after ttl.
func NewCredentials(secret string, ttl time.Duration) *Credentials {
	return &Credentials{secret: []byte(secret), ttl: ttl}
}

// HashPassword hashes a plain password with bcrypt.
func (c *Credentials) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func (c *Credentials) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs a token carrying the user ID and an expiry.
func (c *Credentials) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: userID,
		"exp":       time.Now().Add(c.ttl).Unix(),
	})
	return token.SignedString(c.secret)
}

// VerifyToken validates signature and expiry and returns the user_id claim.
func (c *Credentials) VerifyToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", errNoUserID
	}
	return userID, nil
}
