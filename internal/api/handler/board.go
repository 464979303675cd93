package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/board_go_server/internal/api/middleware"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/response"
	"github.com/qs3c/board_go_server/internal/service"
)

type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// List 板块列表
// GET /api/boards
func (h *BoardHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	keyword := c.Query("keyword")

	items, total, err := h.boardService.List(keyword, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{
		"total": total,
		"items": items,
	})
}

// Read 板块详情
// GET /api/boards/:boardId
func (h *BoardHandler) Read(c *gin.Context) {
	boardID, err := strconv.ParseInt(c.Param("boardId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的板块ID")
		return
	}

	item, err := h.boardService.Read(boardID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.BadRequest(c, response.CodeBoardNotFound, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// Create 创建板块
// POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.boardService.Create(email, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardAlreadyExist):
			response.BadRequest(c, response.CodeBoardAlreadyExist, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, item)
}

// Update 修改板块
// PUT /api/boards/:boardId
func (h *BoardHandler) Update(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, err := strconv.ParseInt(c.Param("boardId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的板块ID")
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.boardService.Update(email, boardID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.BadRequest(c, response.CodeBoardNotFound, err.Error())
		case errors.Is(err, service.ErrBoardAlreadyExist):
			response.BadRequest(c, response.CodeBoardAlreadyExist, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// Delete 删除板块
// DELETE /api/boards/:boardId
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, err := strconv.ParseInt(c.Param("boardId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的板块ID")
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), boardID); err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.BadRequest(c, response.CodeBoardNotFound, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.NoContent(c)
}
