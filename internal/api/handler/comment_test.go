package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/model"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/cache"
	"github.com/qs3c/board_go_server/internal/pkg/response"
	"github.com/qs3c/board_go_server/internal/repository"
	"github.com/qs3c/board_go_server/internal/service"
	"github.com/qs3c/board_go_server/internal/testutil"
)

func setupCommentHandler(t *testing.T) (*CommentHandler, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	pageCache := cache.NewCache(client, 60*time.Second)

	commentService := service.NewCommentService(
		db,
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		pageCache,
		testConfig(),
	)
	handler := NewCommentHandler(commentService)

	cleanup := func() {
		client.Close()
		testutil.CleanupTestDB(t, db)
	}

	return handler, db, cleanup
}

func commentTestRouter(handler *CommentHandler, email string) *gin.Engine {
	router := gin.New()
	comments := router.Group("/api/boards/:boardId/posts/:postId/comments", asMember(email))
	{
		comments.POST("", handler.Create)
		comments.GET("", handler.ListTopLevel)
		comments.GET("/:commentId", handler.Read)
		comments.GET("/:commentId/children", handler.ListChildren)
		comments.PUT("/:commentId", handler.Update)
		comments.POST("/:commentId/like", handler.Like)
		comments.DELETE("/:commentId/like", handler.Unlike)
		comments.DELETE("/:commentId", handler.Delete)
		comments.DELETE("/:commentId/all", handler.DeleteAll)
	}
	return router
}

func commentHandlerScene(t *testing.T, db *gorm.DB) (*model.Board, *model.Post) {
	t.Helper()

	member := testutil.TestMember(t, db, testutil.WithEmail("writer@example.com"))
	board := testutil.TestBoard(t, db, member.Email)
	post := testutil.TestPost(t, db, board.ID, member.Email)
	return board, post
}

func TestCommentHandler_Create_TopLevel(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	router := commentTestRouter(handler, "writer@example.com")

	w := performRequest(router, "POST",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments", board.ID, post.ID),
		dto.CreateCommentRequest{Content: "first!"})

	assert.Equal(t, http.StatusOK, w.Code)

	var item dto.CommentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 0, item.Level)
	assert.Nil(t, item.ParentID)
}

func TestCommentHandler_Create_Reply(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	parent := testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "root")

	router := commentTestRouter(handler, "writer@example.com")

	w := performRequest(router, "POST",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments", board.ID, post.ID),
		dto.CreateCommentRequest{Content: "reply", ParentID: &parent.ID})

	assert.Equal(t, http.StatusOK, w.Code)

	var item dto.CommentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 1, item.Level)
	require.NotNil(t, item.ParentID)
	assert.Equal(t, parent.ID, *item.ParentID)
}

func TestCommentHandler_Create_ParentInOtherPost(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	other := testutil.TestPost(t, db, board.ID, "writer@example.com")
	foreign := testutil.TestComment(t, db, board.ID, other.ID, "writer@example.com", "elsewhere")

	router := commentTestRouter(handler, "writer@example.com")

	w := performRequest(router, "POST",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments", board.ID, post.ID),
		dto.CreateCommentRequest{Content: "bad", ParentID: &foreign.ID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, response.CodeInvalidParameter, body.ErrorCode)
}

func TestCommentHandler_ListTopLevel_WithCursor(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	for i := 0; i < 5; i++ {
		testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "c")
	}

	router := commentTestRouter(handler, "reader@example.com")
	base := fmt.Sprintf("/api/boards/%d/posts/%d/comments", board.ID, post.ID)

	w := performRequest(router, "GET", base+"?size=3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page dto.CommentPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 3)
	require.NotNil(t, page.NextCursor)

	w = performRequest(router, "GET", base+"?size=3&cursor="+*page.NextCursor, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.Nil(t, page.NextCursor)
}

func TestCommentHandler_ListTopLevel_InvalidOrderBy(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	router := commentTestRouter(handler, "reader@example.com")

	w := performRequest(router, "GET",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments?orderBy=hot", board.ID, post.ID), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, response.CodeInvalidParameter, body.ErrorCode)
}

func TestCommentHandler_ListTopLevel_InvalidCursor(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	router := commentTestRouter(handler, "reader@example.com")

	w := performRequest(router, "GET",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments?size=3&cursor=garbage", board.ID, post.ID), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, response.CodeInvalidParameter, body.ErrorCode)
}

func TestCommentHandler_ListChildren(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	parent := testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "root")
	testutil.TestReply(t, db, parent, "writer@example.com", "r1")
	testutil.TestReply(t, db, parent, "writer@example.com", "r2")

	router := commentTestRouter(handler, "reader@example.com")

	w := performRequest(router, "GET",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments/%d/children", board.ID, post.ID, parent.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var page dto.CommentPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "r1", page.Items[0].Content)
}

func TestCommentHandler_Update_WriterNotMatch(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	comment := testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "mine")

	router := commentTestRouter(handler, "stranger@example.com")

	w := performRequest(router, "PUT",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments/%d", board.ID, post.ID, comment.ID),
		dto.UpdateCommentRequest{Content: "hijack"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, response.CodeWriterNotMatch, body.ErrorCode)
}

func TestCommentHandler_LikeUnlike(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	comment := testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "likeable")

	router := commentTestRouter(handler, "fan@example.com")
	likePath := fmt.Sprintf("/api/boards/%d/posts/%d/comments/%d/like", board.ID, post.ID, comment.ID)

	w := performRequest(router, "POST", likePath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var item dto.CommentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 1, item.LikeCount)

	w = performRequest(router, "DELETE", likePath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Zero(t, item.LikeCount)
}

func TestCommentHandler_Delete(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	comment := testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "bye")

	router := commentTestRouter(handler, "writer@example.com")
	path := fmt.Sprintf("/api/boards/%d/posts/%d/comments/%d", board.ID, post.ID, comment.ID)

	w := performRequest(router, "DELETE", path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, "GET", path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, response.CodeCommentNotFound, body.ErrorCode)
}

func TestCommentHandler_DeleteAll(t *testing.T) {
	handler, db, cleanup := setupCommentHandler(t)
	defer cleanup()

	board, post := commentHandlerScene(t, db)
	root := testutil.TestComment(t, db, board.ID, post.ID, "writer@example.com", "root")
	child := testutil.TestReply(t, db, root, "other@example.com", "child")

	router := commentTestRouter(handler, "writer@example.com")

	w := performRequest(router, "DELETE",
		fmt.Sprintf("/api/boards/%d/posts/%d/comments/%d/all", board.ID, post.ID, root.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&model.Comment{}).Where("id IN ?", []int64{root.ID, child.ID}).Count(&count)
	assert.Zero(t, count)
}
