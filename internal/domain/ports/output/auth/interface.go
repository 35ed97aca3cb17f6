package auth

import "time"

//go:generate mockery --name TokenManager --dir . --output ../../../../../mocks/auth --outpkg mocks --filename TokenManager.go
type TokenManager interface {
	Issue(userID int64) (token string, expiresAt time.Time, err error)
	Parse(token string) (userID int64, err error)
}
