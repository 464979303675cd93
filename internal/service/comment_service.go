package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/model"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/cache"
	"github.com/qs3c/board_go_server/internal/pkg/cursor"
	"github.com/qs3c/board_go_server/internal/repository"
)

var (
	ErrCommentNotFound = errors.New("评论不存在")
	ErrParentNotFound  = errors.New("父评论不存在")
	ErrParentNotInPost = errors.New("父评论不属于该帖子")
	ErrInvalidOrderBy  = errors.New("不支持的排序方式")
	ErrInvalidCursor   = cursor.ErrInvalidCursor
)

type CommentService struct {
	db          *gorm.DB
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	pageCache   *cache.Cache
	cfg         *config.Config
}

func NewCommentService(
	db *gorm.DB,
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	pageCache *cache.Cache,
	cfg *config.Config,
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		pageCache:   pageCache,
		cfg:         cfg,
	}
}

// Create 创建评论（parentID 非空时校验父评论归属，level 由服务端计算）
func (s *CommentService) Create(ctx context.Context, writer string, boardID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentItem, error) {
	if err := s.checkPostExists(boardID, postID); err != nil {
		return nil, err
	}

	level := 0
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}

		// 父评论必须属于同一 (board, post)
		if parent.BoardID != boardID || parent.PostID != postID {
			return nil, ErrParentNotInPost
		}

		level = parent.Level + 1
	}

	comment := &model.Comment{
		BoardID:  boardID,
		PostID:   postID,
		ParentID: req.ParentID,
		Level:    level,
		Content:  req.Content,
		Writer:   writer,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	s.invalidateTopLevelCache(ctx, boardID, postID)

	return buildCommentItem(comment), nil
}

// ReadTopLevel 顶级评论游标分页（orderBy: recent / like，倒序）
func (s *CommentService) ReadTopLevel(ctx context.Context, boardID, postID int64, size int, cursorStr string, orderBy string) (*dto.CommentPage, error) {
	size = s.clampSize(size)

	if orderBy != repository.OrderByRecent && orderBy != repository.OrderByLike {
		return nil, ErrInvalidOrderBy
	}

	// 首页走缓存
	cacheable := cursorStr == "" && size == s.cfg.Comment.DefaultPageSize
	cacheKey := topLevelCacheKey(boardID, postID, orderBy)
	if cacheable {
		var page dto.CommentPage
		hit, err := s.pageCache.Get(ctx, cacheKey, &page)
		if err == nil && hit {
			return &page, nil
		}
	}

	var page *dto.CommentPage
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkPostExistsTx(tx, boardID, postID); err != nil {
			return err
		}

		commentRepo := s.commentRepo.WithTx(tx)

		var comments []*model.Comment
		var err error
		switch orderBy {
		case repository.OrderByLike:
			var afterLike, afterID *int64
			if cursorStr != "" {
				keys, decodeErr := cursor.Decode(cursorStr, 2)
				if decodeErr != nil {
					return decodeErr
				}
				afterLike, afterID = &keys[0], &keys[1]
			}
			comments, err = commentRepo.ListTopLevelByLike(boardID, postID, size+1, afterLike, afterID)
		default:
			var after *int64
			if cursorStr != "" {
				keys, decodeErr := cursor.Decode(cursorStr, 1)
				if decodeErr != nil {
					return decodeErr
				}
				after = &keys[0]
			}
			comments, err = commentRepo.ListTopLevelByRecent(boardID, postID, size+1, after)
		}
		if err != nil {
			return err
		}

		page = buildCommentPage(comments, size, func(last *model.Comment) string {
			if orderBy == repository.OrderByLike {
				return cursor.Encode(int64(last.LikeCount), last.ID)
			}
			return cursor.Encode(last.ID)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cacheable {
		_ = s.pageCache.Set(ctx, cacheKey, page)
	}

	return page, nil
}

// ReadChild 直接子评论游标分页（回复先后正序）
func (s *CommentService) ReadChild(ctx context.Context, boardID, postID, parentID int64, size int, cursorStr string) (*dto.CommentPage, error) {
	size = s.clampSize(size)

	var page *dto.CommentPage
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkPostExistsTx(tx, boardID, postID); err != nil {
			return err
		}

		commentRepo := s.commentRepo.WithTx(tx)

		if _, err := commentRepo.GetByPost(boardID, postID, parentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}

		var after *int64
		if cursorStr != "" {
			keys, decodeErr := cursor.Decode(cursorStr, 1)
			if decodeErr != nil {
				return decodeErr
			}
			after = &keys[0]
		}

		comments, err := commentRepo.ListChildren(boardID, postID, parentID, size+1, after)
		if err != nil {
			return err
		}

		page = buildCommentPage(comments, size, func(last *model.Comment) string {
			return cursor.Encode(last.ID)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// Read 单条评论
func (s *CommentService) Read(ctx context.Context, boardID, postID, commentID int64) (*dto.CommentItem, error) {
	comment, err := s.getComment(boardID, postID, commentID)
	if err != nil {
		return nil, err
	}
	return buildCommentItem(comment), nil
}

// Update 修改评论（仅作者本人）
func (s *CommentService) Update(ctx context.Context, modifier string, boardID, postID, commentID int64, req *dto.UpdateCommentRequest) (*dto.CommentItem, error) {
	comment, err := s.getComment(boardID, postID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.Writer != modifier {
		return nil, ErrWriterNotMatch
	}

	comment.Content = req.Content

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	s.invalidateTopLevelCache(ctx, boardID, postID)

	return buildCommentItem(comment), nil
}

// Like 点赞（重复点赞为幂等空操作）
func (s *CommentService) Like(ctx context.Context, memberEmail string, boardID, postID, commentID int64) (*dto.CommentItem, error) {
	return s.toggleLike(ctx, memberEmail, boardID, postID, commentID, true)
}

// Unlike 取消点赞（未点赞时为幂等空操作）
func (s *CommentService) Unlike(ctx context.Context, memberEmail string, boardID, postID, commentID int64) (*dto.CommentItem, error) {
	return s.toggleLike(ctx, memberEmail, boardID, postID, commentID, false)
}

func (s *CommentService) toggleLike(ctx context.Context, memberEmail string, boardID, postID, commentID int64, like bool) (*dto.CommentItem, error) {
	if _, err := s.getComment(boardID, postID, commentID); err != nil {
		return nil, err
	}

	// 点赞记录和计数在同一事务内变更
	err := s.db.Transaction(func(tx *gorm.DB) error {
		commentRepo := s.commentRepo.WithTx(tx)

		exists, err := commentRepo.LikeExists(commentID, memberEmail)
		if err != nil {
			return err
		}

		if like {
			if exists {
				return nil
			}
			if err := commentRepo.CreateLike(&model.CommentLike{CommentID: commentID, MemberEmail: memberEmail}); err != nil {
				return err
			}
			return commentRepo.IncrementLikeCount(commentID, 1)
		}

		if !exists {
			return nil
		}
		if _, err := commentRepo.DeleteLike(commentID, memberEmail); err != nil {
			return err
		}
		return commentRepo.IncrementLikeCount(commentID, -1)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTopLevelCache(ctx, boardID, postID)

	return s.Read(ctx, boardID, postID, commentID)
}

// Delete 删除单条评论（仅作者本人）。子评论保留为孤儿，
// 需要整棵子树删除时使用 DeleteAll。
func (s *CommentService) Delete(ctx context.Context, modifier string, boardID, postID, commentID int64) error {
	comment, err := s.getComment(boardID, postID, commentID)
	if err != nil {
		return err
	}

	if comment.Writer != modifier {
		return ErrWriterNotMatch
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		commentRepo := s.commentRepo.WithTx(tx)

		if err := commentRepo.DeleteLikesByCommentIDs([]int64{commentID}); err != nil {
			return err
		}
		return commentRepo.Delete(commentID)
	})
	if err != nil {
		return err
	}

	s.invalidateTopLevelCache(ctx, boardID, postID)
	return nil
}

// DeleteAll 删除评论及其全部后代（仅作者本人，单事务）
func (s *CommentService) DeleteAll(ctx context.Context, modifier string, boardID, postID, commentID int64) error {
	comment, err := s.getComment(boardID, postID, commentID)
	if err != nil {
		return err
	}

	if comment.Writer != modifier {
		return ErrWriterNotMatch
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		commentRepo := s.commentRepo.WithTx(tx)

		ids, err := commentRepo.CollectSubtreeIDs(commentID)
		if err != nil {
			return err
		}

		if err := commentRepo.DeleteLikesByCommentIDs(ids); err != nil {
			return err
		}

		_, err = commentRepo.DeleteByIDs(ids)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidateTopLevelCache(ctx, boardID, postID)
	return nil
}

func (s *CommentService) clampSize(size int) int {
	if size < 1 {
		return s.cfg.Comment.DefaultPageSize
	}
	if size > s.cfg.Comment.MaxPageSize {
		return s.cfg.Comment.MaxPageSize
	}
	return size
}

func (s *CommentService) checkPostExists(boardID, postID int64) error {
	return s.checkPostExistsTx(s.db, boardID, postID)
}

func (s *CommentService) checkPostExistsTx(tx *gorm.DB, boardID, postID int64) error {
	if _, err := s.postRepo.WithTx(tx).GetByBoard(boardID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *CommentService) getComment(boardID, postID, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByPost(boardID, postID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// invalidateTopLevelCache 任何写操作后使首页缓存失效（两种排序各一键）
func (s *CommentService) invalidateTopLevelCache(ctx context.Context, boardID, postID int64) {
	invalidateTopLevelPages(ctx, s.pageCache, boardID, postID)
}

// invalidateTopLevelPages 帖子删除等级联写入也需要清掉评论首页缓存
func invalidateTopLevelPages(ctx context.Context, pageCache *cache.Cache, boardID int64, postIDs ...int64) {
	keys := make([]string, 0, len(postIDs)*2)
	for _, postID := range postIDs {
		keys = append(keys,
			topLevelCacheKey(boardID, postID, repository.OrderByRecent),
			topLevelCacheKey(boardID, postID, repository.OrderByLike),
		)
	}
	_ = pageCache.Delete(ctx, keys...)
}

func topLevelCacheKey(boardID, postID int64, orderBy string) string {
	return fmt.Sprintf("comments:top:%d:%d:%s", boardID, postID, orderBy)
}

func buildCommentPage(comments []*model.Comment, size int, encodeCursor func(*model.Comment) string) *dto.CommentPage {
	var nextCursor *string
	if len(comments) > size {
		comments = comments[:size]
		c := encodeCursor(comments[len(comments)-1])
		nextCursor = &c
	}

	items := make([]*dto.CommentItem, len(comments))
	for i, c := range comments {
		items[i] = buildCommentItem(c)
	}

	return &dto.CommentPage{
		Items:      items,
		NextCursor: nextCursor,
	}
}

func buildCommentItem(c *model.Comment) *dto.CommentItem {
	return &dto.CommentItem{
		ID:        c.ID,
		BoardID:   c.BoardID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Level:     c.Level,
		Content:   c.Content,
		Writer:    c.Writer,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
