package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/pkg/jwt"
	"github.com/qs3c/board_go_server/internal/pkg/response"
	"github.com/qs3c/board_go_server/internal/repository"
)

const principalKey = "principal"

// Principal 请求级安全主体
type Principal struct {
	MemberID    int64
	Email       string
	Authorities []string
}

// HasAuthority 检查主体是否拥有指定权限
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Auth JWT 授权阶段：无 Token 时匿名放行（公开路由由 Guard 决定），
// 有 Token 时校验并从库中加载会员建立主体；Token 过期/无效记录失败。
func Auth(jwtSecret string, memberRepo *repository.MemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			failAuth(c, http.StatusUnauthorized, response.CodeUnauthorized, "认证格式错误")
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				failAuth(c, http.StatusUnauthorized, response.CodeUnauthorized, "认证已过期")
			} else {
				failAuth(c, http.StatusUnauthorized, response.CodeUnauthorized, "认证无效")
			}
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			failAuth(c, http.StatusUnauthorized, response.CodeUnauthorized, "认证无效")
			return
		}

		// 权限以库中当前值为准，不信任 Token 携带的快照
		member, err := memberRepo.GetByEmail(claims.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				failAuth(c, http.StatusUnauthorized, response.CodeUnauthorized, "认证无效")
				return
			}
			failAuth(c, http.StatusInternalServerError, response.CodeServerError, "")
			return
		}

		c.Set(principalKey, &Principal{
			MemberID:    member.ID,
			Email:       member.Email,
			Authorities: member.AuthorityList(),
		})
		c.Next()
	}
}

// GetPrincipal 从上下文获取安全主体
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

// GetEmail 从上下文获取当前会员邮箱
func GetEmail(c *gin.Context) (string, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return "", false
	}
	return p.Email, true
}
