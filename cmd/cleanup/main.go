package main

import (
	"flag"
	"log"
	"os"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/database"
	"github.com/qs3c/board_go_server/internal/pkg/jwt"
	"github.com/qs3c/board_go_server/internal/repository"
)

var dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually clear tokens")

func main() {
	flag.Parse()

	log.Println("Starting refresh token cleanup...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	memberRepo := repository.NewMemberRepository(db)
	members, err := memberRepo.ListWithRefreshToken()
	if err != nil {
		log.Fatalf("Failed to list members: %v", err)
	}
	log.Printf("Found %d members holding a refresh token", len(members))

	cleared := 0
	for _, member := range members {
		if member.RefreshToken == nil {
			continue
		}

		if _, err := jwt.ParseToken(*member.RefreshToken, cfg.JWT.Secret); err == nil {
			continue
		}

		log.Printf("  - %s: refresh token expired or invalid", member.Email)
		if !*dryRun {
			if err := memberRepo.ClearRefreshToken(member.Email); err != nil {
				log.Printf("    Failed to clear: %v", err)
				continue
			}
		}
		cleared++
	}

	if *dryRun {
		log.Printf("DRY RUN - %d tokens would be cleared; run with -dry-run=false to apply", cleared)
	} else {
		log.Printf("Cleanup completed: cleared=%d", cleared)
	}
}
