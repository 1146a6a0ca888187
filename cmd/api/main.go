package main

import (
	"context"
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/keylock"
	"app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// .envは任意（無ければ環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// ストレージドライバ選択
	var store repository.RecordStore
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			panic(err)
		}
		if err := gormDB.AutoMigrate(&model.Record{}); err != nil {
			panic(err)
		}
		store = storage.NewPostgresStore(gormDB)
	default:
		fileStore, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			panic(err)
		}
		store = fileStore
	}

	// Repository生成
	userRepo := infraRepo.NewUserRecordRepository(store)
	tokenRepo := infraRepo.NewTokenRecordRepository(store)
	cartRepo := infraRepo.NewCartRecordRepository(store)
	menuRepo := infraRepo.NewStaticMenuRepository(config.Menu())

	// usecaseに渡す部品
	hasher := usecase.NewArgon2Hasher(cfg.HashingSecret)
	clock := usecase.RealClock{}

	// Usecase生成
	tokenUC := usecase.NewTokenUsecase(userRepo, tokenRepo, hasher, clock)
	userUC := usecase.NewUserUsecase(userRepo, hasher, tokenUC)
	cartUC := usecase.NewCartUsecase(userRepo, cartRepo, menuRepo, tokenUC, keylock.New())
	menuUC := usecase.NewMenuUsecase(menuRepo, tokenUC)

	// Handler生成
	userH := handler.NewUserHandler(userUC)
	tokenH := handler.NewTokenHandler(tokenUC)
	menuH := handler.NewMenuHandler(menuUC)
	cartH := handler.NewCartHandler(cartUC)
	healthH := handler.NewHealthHandler(cfg.PingDelay)

	// 期限切れトークンの定期掃除
	go sweepTokens(context.Background(), tokenUC, cfg.TokenSweepInterval)

	// Server起動
	e := server.New(userH, tokenH, menuH, cartH, healthH)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		panic(err)
	}
}

func sweepTokens(ctx context.Context, tokenUC *usecase.TokenUsecase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokenUC.SweepExpired(ctx)
			if err != nil {
				log.Printf("token sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("token sweep removed %d expired token(s)", n)
			}
		}
	}
}
