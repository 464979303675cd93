package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/board_go_server/internal/api/middleware"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/response"
	"github.com/qs3c/board_go_server/internal/repository"
	"github.com/qs3c/board_go_server/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create 创建评论
// POST /api/boards/:boardId/posts/:postId/comments
func (h *CommentHandler) Create(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.commentService.Create(c.Request.Context(), email, boardID, postID, &req)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, item)
}

// ListTopLevel 顶级评论游标分页
// GET /api/boards/:boardId/posts/:postId/comments
func (h *CommentHandler) ListTopLevel(c *gin.Context) {
	boardID, postID, ok := parsePostPath(c)
	if !ok {
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	cursorStr := c.Query("cursor")
	orderBy := c.DefaultQuery("orderBy", repository.OrderByRecent)

	page, err := h.commentService.ReadTopLevel(c.Request.Context(), boardID, postID, size, cursorStr, orderBy)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, page)
}

// ListChildren 直接子评论游标分页
// GET /api/boards/:boardId/posts/:postId/comments/:commentId/children
func (h *CommentHandler) ListChildren(c *gin.Context) {
	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	cursorStr := c.Query("cursor")

	page, err := h.commentService.ReadChild(c.Request.Context(), boardID, postID, commentID, size, cursorStr)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, page)
}

// Read 评论详情
// GET /api/boards/:boardId/posts/:postId/comments/:commentId
func (h *CommentHandler) Read(c *gin.Context) {
	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	item, err := h.commentService.Read(c.Request.Context(), boardID, postID, commentID)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, item)
}

// Update 修改评论
// PUT /api/boards/:boardId/posts/:postId/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.commentService.Update(c.Request.Context(), email, boardID, postID, commentID, &req)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, item)
}

// Like 点赞
// POST /api/boards/:boardId/posts/:postId/comments/:commentId/like
func (h *CommentHandler) Like(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	item, err := h.commentService.Like(c.Request.Context(), email, boardID, postID, commentID)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, item)
}

// Unlike 取消点赞
// DELETE /api/boards/:boardId/posts/:postId/comments/:commentId/like
func (h *CommentHandler) Unlike(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	item, err := h.commentService.Unlike(c.Request.Context(), email, boardID, postID, commentID)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	response.Success(c, item)
}

// Delete 删除单条评论
// DELETE /api/boards/:boardId/posts/:postId/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), email, boardID, postID, commentID); err != nil {
		writeCommentError(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteAll 删除评论及其全部后代
// DELETE /api/boards/:boardId/posts/:postId/comments/:commentId/all
func (h *CommentHandler) DeleteAll(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	boardID, postID, commentID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteAll(c.Request.Context(), email, boardID, postID, commentID); err != nil {
		writeCommentError(c, err)
		return
	}

	response.NoContent(c)
}

func parseCommentPath(c *gin.Context) (boardID, postID, commentID int64, ok bool) {
	boardID, postID, ok = parsePostPath(c)
	if !ok {
		return 0, 0, 0, false
	}

	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return 0, 0, 0, false
	}

	return boardID, postID, commentID, true
}

func writeCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		response.BadRequest(c, response.CodeBoardNotFound, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		response.BadRequest(c, response.CodePostNotFound, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		response.BadRequest(c, response.CodeCommentNotFound, err.Error())
	case errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrParentNotInPost):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrInvalidOrderBy),
		errors.Is(err, service.ErrInvalidCursor):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrWriterNotMatch):
		response.WriterNotMatchError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
