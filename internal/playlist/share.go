package playlist

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ShareClaims carry everything needed to regenerate a playlist
type ShareClaims struct {
	Request NamedRequest `json:"req"`
	Seed    int64        `json:"seed"`
	jwt.RegisteredClaims
}

// ShareSigner issues and verifies share tokens. A shared playlist is
// regenerated from its request and seed, so it matches the first rendering
// as long as the mission graph has not changed.
type ShareSigner struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewShareSigner(secret string, expiration time.Duration) *ShareSigner {
	return &ShareSigner{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *ShareSigner) Sign(req NamedRequest, seed int64) (string, error) {
	now := s.now()
	req.Seed = nil

	claims := ShareClaims{
		Request: req,
		Seed:    seed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			Subject:   "playlist",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

func (s *ShareSigner) Parse(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ShareClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid share token")
}
