package cron

import (
	"log"
	"time"

	"github.com/qs3c/board_go_server/internal/service"
)

type Service struct {
	authService *service.AuthService
	interval    time.Duration
	stopChan    chan struct{}
}

func NewService(authService *service.AuthService) *Service {
	return &Service{
		authService: authService,
		interval:    1 * time.Hour,
		stopChan:    make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runTokenPurge()
	log.Println("Cron service started (refresh token purge)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runTokenPurge 每小时清理一次过期的刷新令牌
func (s *Service) runTokenPurge() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.purgeTokens()
		}
	}
}

func (s *Service) purgeTokens() {
	purged, err := s.authService.PurgeExpiredRefreshTokens()
	if err != nil {
		log.Printf("Refresh token purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Refresh token purge completed: cleared=%d", purged)
	}
}

// RunNow 立即执行一次清理（用于测试或手动触发）
func (s *Service) RunNow() (int, error) {
	log.Println("Manual refresh token purge triggered...")
	return s.authService.PurgeExpiredRefreshTokens()
}
