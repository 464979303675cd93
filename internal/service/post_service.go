package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/model"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/cache"
	"github.com/qs3c/board_go_server/internal/repository"
)

var (
	ErrPostNotFound   = errors.New("帖子不存在")
	ErrWriterNotMatch = errors.New("只有作者本人可以操作")
)

type PostService struct {
	db          *gorm.DB
	postRepo    *repository.PostRepository
	boardRepo   *repository.BoardRepository
	commentRepo *repository.CommentRepository
	pageCache   *cache.Cache
	cfg         *config.Config
}

func NewPostService(
	db *gorm.DB,
	postRepo *repository.PostRepository,
	boardRepo *repository.BoardRepository,
	commentRepo *repository.CommentRepository,
	pageCache *cache.Cache,
	cfg *config.Config,
) *PostService {
	return &PostService{
		db:          db,
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		commentRepo: commentRepo,
		pageCache:   pageCache,
		cfg:         cfg,
	}
}

// Create 发帖
func (s *PostService) Create(writer string, boardID int64, req *dto.CreatePostRequest) (*dto.PostItem, error) {
	if _, err := s.boardRepo.GetByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	post := &model.Post{
		BoardID: boardID,
		Title:   req.Title,
		Content: req.Content,
		Writer:  writer,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return buildPostItem(post), nil
}

// Read 帖子详情（isLiked 按当前请求者计算）
func (s *PostService) Read(viewer string, boardID, postID int64) (*dto.PostItem, error) {
	post, err := s.getPost(boardID, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.LikeExists(post.ID, viewer)
	if err != nil {
		return nil, err
	}
	post.IsLiked = liked

	return buildPostItem(post), nil
}

// List 板块内帖子分页列表
func (s *PostService) List(boardID int64, page, pageSize int) ([]*dto.PostItem, int64, error) {
	if _, err := s.boardRepo.GetByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrBoardNotFound
		}
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > s.cfg.Board.MaxPageSize {
		pageSize = s.cfg.Board.DefaultPageSize
	}

	posts, total, err := s.postRepo.List(boardID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.PostItem, len(posts))
	for i, p := range posts {
		items[i] = buildPostItem(p)
	}

	return items, total, nil
}

// Update 修改帖子（仅作者本人）
func (s *PostService) Update(modifier string, boardID, postID int64, req *dto.UpdatePostRequest) (*dto.PostItem, error) {
	post, err := s.getPost(boardID, postID)
	if err != nil {
		return nil, err
	}

	if post.Writer != modifier {
		return nil, ErrWriterNotMatch
	}

	post.Title = req.Title
	post.Content = req.Content

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return buildPostItem(post), nil
}

// Like 点赞（重复点赞为幂等空操作）
func (s *PostService) Like(memberEmail string, boardID, postID int64) (*dto.PostItem, error) {
	return s.toggleLike(memberEmail, boardID, postID, true)
}

// Unlike 取消点赞（未点赞时为幂等空操作）
func (s *PostService) Unlike(memberEmail string, boardID, postID int64) (*dto.PostItem, error) {
	return s.toggleLike(memberEmail, boardID, postID, false)
}

func (s *PostService) toggleLike(memberEmail string, boardID, postID int64, like bool) (*dto.PostItem, error) {
	post, err := s.getPost(boardID, postID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		postRepo := s.postRepo.WithTx(tx)

		exists, err := postRepo.LikeExists(post.ID, memberEmail)
		if err != nil {
			return err
		}

		if like {
			if exists {
				return nil
			}
			if err := postRepo.CreateLike(&model.PostLike{PostID: post.ID, MemberEmail: memberEmail}); err != nil {
				return err
			}
			return postRepo.IncrementLikeCount(post.ID, 1)
		}

		if !exists {
			return nil
		}
		if _, err := postRepo.DeleteLike(post.ID, memberEmail); err != nil {
			return err
		}
		return postRepo.IncrementLikeCount(post.ID, -1)
	})
	if err != nil {
		return nil, err
	}

	return s.Read(memberEmail, boardID, postID)
}

// Delete 删除帖子及其评论（仅作者本人，单事务）
func (s *PostService) Delete(ctx context.Context, modifier string, boardID, postID int64) error {
	post, err := s.getPost(boardID, postID)
	if err != nil {
		return err
	}

	if post.Writer != modifier {
		return ErrWriterNotMatch
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		postRepo := s.postRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		commentIDs, err := commentRepo.DeleteByPostIDs([]int64{post.ID})
		if err != nil {
			return err
		}
		if err := commentRepo.DeleteLikesByCommentIDs(commentIDs); err != nil {
			return err
		}
		if err := postRepo.DeleteLikesByPostIDs([]int64{post.ID}); err != nil {
			return err
		}
		return postRepo.Delete(post.ID)
	})
	if err != nil {
		return err
	}

	// 评论随帖子一并删除，首页缓存同步失效
	invalidateTopLevelPages(ctx, s.pageCache, boardID, post.ID)
	return nil
}

func (s *PostService) getPost(boardID, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByBoard(boardID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func buildPostItem(post *model.Post) *dto.PostItem {
	return &dto.PostItem{
		ID:        post.ID,
		BoardID:   post.BoardID,
		Title:     post.Title,
		Content:   post.Content,
		Writer:    post.Writer,
		LikeCount: post.LikeCount,
		IsLiked:   post.IsLiked,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
}
