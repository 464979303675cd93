package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/board_go_server/internal/pkg/response"
)

// 访问级别
const (
	AccessPublic        = "public"
	AccessAuthenticated = "authenticated"
	// 其余取值视为所需权限名（如 "ADMIN"）
)

// Rule 静态访问规则：Method 为空匹配任意方法，
// Pattern 按路径段匹配，":" 开头的段匹配任意单段。
type Rule struct {
	Method  string
	Pattern string
	Access  string
}

// Guard 路由授权阶段：规则自上而下求值，首个命中生效；
// 无命中时兜底要求已认证主体。
func Guard(rules []Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		access := AccessAuthenticated
		for _, rule := range rules {
			if rule.matches(c.Request.Method, c.Request.URL.Path) {
				access = rule.Access
				break
			}
		}

		if access == AccessPublic {
			c.Next()
			return
		}

		principal, ok := GetPrincipal(c)
		if !ok {
			failAuth(c, http.StatusUnauthorized, response.CodeUnauthorized, "请先登录")
			return
		}

		if access != AccessAuthenticated && !principal.HasAuthority(access) {
			failAuth(c, http.StatusForbidden, response.CodeForbidden, "")
			return
		}

		c.Next()
	}
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}

	want := splitPath(r.Pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return false
	}

	for i, seg := range want {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// DefaultRules 应用的访问规则表
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodPost, Pattern: "/api/register", Access: AccessPublic},
		{Method: http.MethodPost, Pattern: "/api/login", Access: AccessPublic},
		{Method: http.MethodPost, Pattern: "/api/refresh", Access: AccessPublic},
		{Method: http.MethodPost, Pattern: "/api/boards", Access: "ADMIN"},
		{Method: http.MethodPut, Pattern: "/api/boards/:boardId", Access: "ADMIN"},
		{Method: http.MethodDelete, Pattern: "/api/boards/:boardId", Access: "ADMIN"},
	}
}
