package jwt

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blogicum/internal/custom_errors"
	ports "blogicum/internal/domain/ports/output"
)

const issuer = "blogicum"

type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens carrying the user id.
type Manager struct {
	secret []byte
	ttl    time.Duration
	log    ports.Logger
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, log ports.Logger) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

func (m *Manager) Issue(userID int64) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		m.log.Error("Failed to sign token", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return "", time.Time{}, custom_errors.ErrTokenIssueFailed
	}
	return signed, expiresAt, nil
}

func (m *Manager) Parse(tokenStr string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			m.log.Debug("Token expired")
		} else {
			m.log.Debug("Token rejected", slog.String("error", err.Error()))
		}
		return 0, custom_errors.ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.UserID <= 0 {
		return 0, custom_errors.ErrInvalidToken
	}
	return c.UserID, nil
}
