package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/model"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/jwt"
	"github.com/qs3c/board_go_server/internal/repository"
)

var (
	ErrMemberAlreadyExist  = errors.New("会员已存在")
	ErrMemberNotFound      = errors.New("会员不存在")
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrUnknownRefreshToken = errors.New("刷新 Token 无效")
)

const defaultAuthority = "USER"

type AuthService struct {
	memberRepo *repository.MemberRepository
	cfg        *config.Config
}

func NewAuthService(memberRepo *repository.MemberRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		cfg:        cfg,
	}
}

// Register 会员注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.memberRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMemberAlreadyExist
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &model.Member{
		Email:       req.Email,
		Password:    string(hashedPassword),
		Nickname:    req.Nickname,
		Authorities: defaultAuthority,
	}

	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		MemberID: member.ID,
		Email:    member.Email,
	}, nil
}

// Login 会员登录（颁发访问 Token + 刷新 Token）
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	member, err := s.memberRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不区分账号不存在和密码错误
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateAccessToken(
		member.ID, member.Email, member.AuthorityList(),
		s.cfg.JWT.Secret, s.cfg.JWT.AccessExpireMinutes,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		member.ID, member.Email,
		s.cfg.JWT.Secret, s.cfg.JWT.RefreshExpireHours,
	)
	if err != nil {
		return nil, err
	}

	// 覆盖旧刷新 Token：同一会员最多一个有效
	if err := s.memberRepo.SaveRefreshToken(member.Email, refreshToken); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       buildMemberInfo(member),
	}, nil
}

// Refresh 用刷新 Token 换取新的访问 Token
func (s *AuthService) Refresh(refreshToken string) (*dto.RefreshResponse, error) {
	member, err := s.memberRepo.GetByRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRefreshToken
		}
		return nil, err
	}

	claims, err := jwt.ParseToken(refreshToken, s.cfg.JWT.Secret)
	if err != nil {
		// 过期或被篡改：同样视为无效刷新 Token
		return nil, ErrUnknownRefreshToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrUnknownRefreshToken
	}

	accessToken, err := jwt.GenerateAccessToken(
		member.ID, member.Email, member.AuthorityList(),
		s.cfg.JWT.Secret, s.cfg.JWT.AccessExpireMinutes,
	)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout 登出（作废已持有的刷新 Token）
func (s *AuthService) Logout(email string) error {
	return s.memberRepo.ClearRefreshToken(email)
}

// GetMemberByEmail 根据邮箱获取会员
func (s *AuthService) GetMemberByEmail(email string) (*model.Member, error) {
	member, err := s.memberRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// PurgeExpiredRefreshTokens 清除已过期的刷新 Token，返回清除数量
func (s *AuthService) PurgeExpiredRefreshTokens() (int, error) {
	members, err := s.memberRepo.ListWithRefreshToken()
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, member := range members {
		if member.RefreshToken == nil {
			continue
		}
		_, err := jwt.ParseToken(*member.RefreshToken, s.cfg.JWT.Secret)
		if err == nil {
			continue
		}
		if clearErr := s.memberRepo.ClearRefreshToken(member.Email); clearErr != nil {
			return purged, clearErr
		}
		purged++
	}

	return purged, nil
}

func buildMemberInfo(member *model.Member) *dto.MemberInfo {
	return &dto.MemberInfo{
		ID:          member.ID,
		Email:       member.Email,
		Nickname:    member.Nickname,
		Authorities: member.AuthorityList(),
		CreatedAt:   member.CreatedAt.Format(time.RFC3339),
	}
}
