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

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// List 帖子列表
// GET /api/boards/:boardId/posts
func (h *PostHandler) List(c *gin.Context) {
	boardID, err := strconv.ParseInt(c.Param("boardId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的板块ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.postService.List(boardID, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.BadRequest(c, response.CodeBoardNotFound, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, gin.H{
		"total": total,
		"items": items,
	})
}

// Read 帖子详情
// GET /api/boards/:boardId/posts/:postId
func (h *PostHandler) Read(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	item, err := h.postService.Read(email, boardID, postID)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Success(c, item)
}

// Create 发帖
// POST /api/boards/:boardId/posts
func (h *PostHandler) Create(c *gin.Context) {
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

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.postService.Create(email, boardID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.BadRequest(c, response.CodeBoardNotFound, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, item)
}

// Update 修改帖子
// PUT /api/boards/:boardId/posts/:postId
func (h *PostHandler) Update(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.postService.Update(email, boardID, postID, &req)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Success(c, item)
}

// Like 点赞
// POST /api/boards/:boardId/posts/:postId/like
func (h *PostHandler) Like(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	item, err := h.postService.Like(email, boardID, postID)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Success(c, item)
}

// Unlike 取消点赞
// DELETE /api/boards/:boardId/posts/:postId/like
func (h *PostHandler) Unlike(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	item, err := h.postService.Unlike(email, boardID, postID)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Success(c, item)
}

// Delete 删除帖子
// DELETE /api/boards/:boardId/posts/:postId
func (h *PostHandler) Delete(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), email, boardID, postID); err != nil {
		writePostError(c, err)
		return
	}

	response.NoContent(c)
}

func parsePostPath(c *gin.Context) (boardID, postID int64, ok bool) {
	boardID, err := strconv.ParseInt(c.Param("boardId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的板块ID")
		return 0, 0, false
	}

	postID, err = strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return 0, 0, false
	}

	return boardID, postID, true
}

func writePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		response.BadRequest(c, response.CodeBoardNotFound, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		response.BadRequest(c, response.CodePostNotFound, err.Error())
	case errors.Is(err, service.ErrWriterNotMatch):
		response.WriterNotMatchError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
