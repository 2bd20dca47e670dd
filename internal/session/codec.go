package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session")

type claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// codec serializes the identity record into a signed cookie value.
type codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (c codec) encode(u User) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        u.SessionID,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
	})
	return token.SignedString(c.secret)
}

func (c codec) decode(value string) (*User, error) {
	token, err := jwt.ParseWithClaims(value, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, ErrInvalidSession
	}

	cl, ok := token.Claims.(*claims)
	if !ok || !token.Valid || cl.Subject == "" || cl.ID == "" {
		return nil, ErrInvalidSession
	}
	return &User{
		ID:        cl.Subject,
		SessionID: cl.ID,
		Name:      cl.Name,
		Email:     cl.Email,
		Image:     cl.Image,
	}, nil
}
