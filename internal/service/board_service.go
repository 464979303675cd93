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
	ErrBoardNotFound     = errors.New("板块不存在")
	ErrBoardAlreadyExist = errors.New("同名板块已存在")
)

type BoardService struct {
	db          *gorm.DB
	boardRepo   *repository.BoardRepository
	postRepo    *repository.PostRepository
	commentRepo *repository.CommentRepository
	pageCache   *cache.Cache
	cfg         *config.Config
}

func NewBoardService(
	db *gorm.DB,
	boardRepo *repository.BoardRepository,
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	pageCache *cache.Cache,
	cfg *config.Config,
) *BoardService {
	return &BoardService{
		db:          db,
		boardRepo:   boardRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		pageCache:   pageCache,
		cfg:         cfg,
	}
}

// Create 创建板块（名称唯一）
func (s *BoardService) Create(writer string, req *dto.CreateBoardRequest) (*dto.BoardItem, error) {
	exists, err := s.boardRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBoardAlreadyExist
	}

	board := &model.Board{
		Name:        req.Name,
		Description: req.Description,
		Writer:      writer,
		Modifier:    writer,
	}

	if err := s.boardRepo.Create(board); err != nil {
		return nil, err
	}

	return buildBoardItem(board), nil
}

// Read 板块详情
func (s *BoardService) Read(boardID int64) (*dto.BoardItem, error) {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return buildBoardItem(board), nil
}

// List 板块分页列表
func (s *BoardService) List(keyword string, page, pageSize int) ([]*dto.BoardItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > s.cfg.Board.MaxPageSize {
		pageSize = s.cfg.Board.DefaultPageSize
	}

	boards, total, err := s.boardRepo.List(keyword, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.BoardItem, len(boards))
	for i, b := range boards {
		items[i] = buildBoardItem(b)
	}

	return items, total, nil
}

// Update 修改板块
func (s *BoardService) Update(modifier string, boardID int64, req *dto.UpdateBoardRequest) (*dto.BoardItem, error) {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	if board.Name != req.Name {
		exists, err := s.boardRepo.ExistsByName(req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrBoardAlreadyExist
		}
	}

	board.Name = req.Name
	board.Description = req.Description
	board.Modifier = modifier

	if err := s.boardRepo.Update(board); err != nil {
		return nil, err
	}

	return buildBoardItem(board), nil
}

// Delete 删除板块（连同帖子、评论、点赞记录，单事务）
func (s *BoardService) Delete(ctx context.Context, boardID int64) error {
	_, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return err
	}

	var postIDs []int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		postRepo := s.postRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		postIDs, err = postRepo.DeleteByBoardID(boardID)
		if err != nil {
			return err
		}

		commentIDs, err := commentRepo.DeleteByPostIDs(postIDs)
		if err != nil {
			return err
		}

		if err := commentRepo.DeleteLikesByCommentIDs(commentIDs); err != nil {
			return err
		}
		if err := postRepo.DeleteLikesByPostIDs(postIDs); err != nil {
			return err
		}

		return s.boardRepo.WithTx(tx).Delete(boardID)
	})
	if err != nil {
		return err
	}

	// 板块下所有帖子的评论首页缓存一并失效
	invalidateTopLevelPages(ctx, s.pageCache, boardID, postIDs...)
	return nil
}

func buildBoardItem(board *model.Board) *dto.BoardItem {
	return &dto.BoardItem{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		Writer:      board.Writer,
		Modifier:    board.Modifier,
		CreatedAt:   board.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   board.UpdatedAt.Format(time.RFC3339),
	}
}
