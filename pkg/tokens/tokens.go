package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed validity window of a session token.
const TTL = 24 * time.Hour

// precision of iat/exp in the encoded claims. Parsed claims come back through
// a float64 and are rounded to it again.
const precision = time.Microsecond

func init() {
	jwt.TimePrecision = precision
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrEmptySecret  = errors.New("token secret is empty")
)

type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

type Service struct {
	Secret []byte
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewService(secret []byte) (*Service, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Service{Secret: secret}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue signs a token for userID valid over [now, now+TTL).
func (s *Service) Issue(userID string) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, ErrEmptySecret
	}
	issuedAt := s.now().UTC().Truncate(precision)
	exp := issuedAt.Add(TTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (s *Service) Verify(tokenStr string) (*Claims, error) {
	if len(s.Secret) == 0 {
		return nil, ErrEmptySecret
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(precision),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	claims.ExpiresAt = jwt.NewNumericDate(claims.ExpiresAt.Time.Round(precision))
	if claims.IssuedAt != nil {
		claims.IssuedAt = jwt.NewNumericDate(claims.IssuedAt.Time.Round(precision))
	}
	// exp itself is outside the window.
	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}
	return &claims, nil
}
