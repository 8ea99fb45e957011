package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/cache"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/config"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/db"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/logger"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/service"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/sweeper"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	redisClient := cache.NewRedisClient(conf.Redis)

	s := api.NewServer(conf, postgresDB, redisClient)

	if conf.Sweeper != nil && conf.Sweeper.Enabled {
		locationSvc := service.NewLocationService(
			repository.NewLocationRepository(dao.NewLocationDAO(postgresDB)),
		)
		sw := sweeper.New(locationSvc, time.Duration(conf.Sweeper.Interval)*time.Second)
		go sw.Start(context.Background())
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
