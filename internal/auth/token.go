package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens emite e valida os tokens de sessão das empresas e valida os tokens
// de usuário emitidos pelo provedor de identidade.
type Tokens struct {
	secret         []byte
	identitySecret []byte
	ttl            time.Duration
	now            func() time.Time
}

func NewTokens(secret, identitySecret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), identitySecret: []byte(identitySecret), ttl: ttl, now: time.Now}
}

func (t *Tokens) IssueCompany(companyID string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  companyID,
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// ParseCompany devolve o id da empresa contido no token.
func (t *Tokens) ParseCompany(raw string) (string, error) {
	return parseClaim(raw, t.secret, "id")
}

// ParseIdentity devolve o id do usuário (claim "sub") do token do provedor.
func (t *Tokens) ParseIdentity(raw string) (string, error) {
	if len(t.identitySecret) == 0 {
		return "", fmt.Errorf("%w: identity verification not configured", ErrInvalidToken)
	}
	return parseClaim(raw, t.identitySecret, "sub")
}

func parseClaim(raw string, secret []byte, claim string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, _ := claims[claim].(string)
	if id == "" {
		return "", fmt.Errorf("%w: missing %s claim", ErrInvalidToken, claim)
	}
	return id, nil
}
