package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/board_go_server/internal/pkg/response"
)

const failureKey = "authFailure"

// authFailure 下游阶段记录的认证/授权失败
type authFailure struct {
	status  int
	code    string
	message string
}

// ErrorNormalize 认证异常归一化阶段：把下游记录的认证失败
// 统一格式化为 401/403 响应，避免框架默认错误页泄漏细节。
// 必须注册在认证相关中间件之前（最外层）。
func ErrorNormalize() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if v, exists := c.Get(failureKey); exists {
			if f, ok := v.(*authFailure); ok {
				response.Error(c, f.status, f.code, f.message)
			}
		}
	}
}

// failAuth 记录失败并中断后续阶段，交给归一化阶段输出
func failAuth(c *gin.Context, status int, code, message string) {
	c.Set(failureKey, &authFailure{status: status, code: code, message: message})
	c.Abort()
}
