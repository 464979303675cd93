package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired   = errors.New("token 已过期")
	ErrTokenMalformed = errors.New("token 无效")
)

// Claims 自定义声明
type Claims struct {
	MemberID    int64    `json:"member_id"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities,omitempty"`
	TokenType   string   `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成访问 Token（短期，携带权限）
func GenerateAccessToken(memberID int64, email string, authorities []string, secret string, expireMinutes int) (string, error) {
	return generate(memberID, email, authorities, TokenTypeAccess, secret,
		time.Duration(expireMinutes)*time.Minute)
}

// GenerateRefreshToken 生成刷新 Token（长期，不携带权限）
func GenerateRefreshToken(memberID int64, email string, secret string, expireHours int) (string, error) {
	return generate(memberID, email, nil, TokenTypeRefresh, secret,
		time.Duration(expireHours)*time.Hour)
}

func generate(memberID int64, email string, authorities []string, tokenType, secret string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberID:    memberID,
		Email:       email,
		Authorities: authorities,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 解析并校验 Token（纯计算，无 I/O）
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
