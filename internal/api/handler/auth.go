package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/board_go_server/internal/api/middleware"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/response"
	"github.com/qs3c/board_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 会员注册
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberAlreadyExist):
			response.BadRequest(c, response.CodeMemberAlreadyExist, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, resp)
}

// Login 会员登录
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// Refresh 刷新访问 Token
// POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRefreshToken):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// Logout 登出
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.authService.Logout(email); err != nil {
		response.ServerError(c, "")
		return
	}

	response.NoContent(c)
}
