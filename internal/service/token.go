package service

import (
	"errors"
	"fmt"
	"time"

	"blogging/config"
	"blogging/internal/core"

	"github.com/golang-jwt/jwt/v4"
)

const DefaultTokenTTL = time.Hour

var (
	ErrTokenMissing = errors.New("token missing")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenService 簽發與驗證 HS256 token，無狀態
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(conf *config.Configuration) (*TokenService, error) {
	if conf.Token.Secret == "" {
		return nil, errors.New("token secret is empty, set TOKEN__SECRET or JWT_SECRET")
	}
	ttl := conf.Token.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(conf.Token.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue 以 subjectID（文章 ID）簽發 token
func (s *TokenService) Issue(subjectID string) (string, error) {
	issuedAt := s.now()
	claims := core.Claims{
		PostID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 回傳 token 的 subjectID
func (s *TokenService) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrTokenMissing
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims core.Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	// jwt/v4 的 exp 驗證使用 time.Now，這裡再以注入的時鐘檢查一次
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return "", fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	subject := claims.Subject
	if subject == "" {
		subject = claims.PostID
	}
	if subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return subject, nil
}
