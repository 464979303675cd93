package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	CodeBoardNotFound      = "BOARD_DATA_NOT_FOUND"
	CodePostNotFound       = "POST_DATA_NOT_FOUND"
	CodeCommentNotFound    = "COMMENT_DATA_NOT_FOUND"
	CodeMemberNotFound     = "MEMBER_DATA_NOT_FOUND"
	CodeBoardAlreadyExist  = "BOARD_ALREADY_EXIST"
	CodeMemberAlreadyExist = "MEMBER_ALREADY_EXIST"
	CodeWriterNotMatch     = "WRITER_NOT_MATCH"
	CodeInvalidParameter   = "INVALID_PARAMETER"
	CodeMethodNotSupport   = "NOT_SUPPORT_HTTP_METHOD"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeServerError        = "INTERNAL_ERROR"
)

// 错误码对应的默认消息
var codeMessages = map[string]string{
	CodeBoardNotFound:      "板块不存在",
	CodePostNotFound:       "帖子不存在",
	CodeCommentNotFound:    "评论不存在",
	CodeMemberNotFound:     "会员不存在",
	CodeBoardAlreadyExist:  "板块已存在",
	CodeMemberAlreadyExist: "会员已存在",
	CodeWriterNotMatch:     "无权操作",
	CodeInvalidParameter:   "参数错误",
	CodeMethodNotSupport:   "不支持的请求方法",
	CodeUnauthorized:       "认证失败",
	CodeForbidden:          "权限不足",
	CodeServerError:        "服务器内部错误",
}

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 无内容响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应
func Error(c *gin.Context, status int, code, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(status, ErrorBody{
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, code, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidParameter, message)
}

// AuthError 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// PermissionError 权限不足
func PermissionError(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// WriterNotMatchError 作者不匹配
func WriterNotMatchError(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeWriterNotMatch, message)
}

// ServerError 服务器错误（细节不暴露给客户端）
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeServerError, message)
}
