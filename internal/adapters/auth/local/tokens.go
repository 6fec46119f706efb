package local

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// mint firma un HS256 con sub=userID y jti nuevo; el jti identifica la sesión.
func mint(cfg TokenConfig, now time.Time, userID, email string) (token, jti string, exp time.Time, err error) {
	if cfg.Secret == "" {
		return "", "", time.Time{}, errors.New("jwt secret is required")
	}
	jti = uuid.NewString()
	exp = now.Add(cfg.TTL)

	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti,
		},
	}
	token, err = jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("signing jwt: %w", err)
	}
	return token, jti, exp, nil
}

func parse(cfg TokenConfig, now func() time.Time, token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("token missing sub or jti")
	}
	return claims, nil
}
