package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"portfolioservice/api"
	"portfolioservice/internal/converter"
	"portfolioservice/internal/repository"
	"portfolioservice/internal/service"
	"portfolioservice/internal/util"

	_ "github.com/lib/pq"
)

// lockTimeout bounds how long an applier waits on a portfolio lock before
// giving up with a retryable error. Mirrors the transaction timeout.
const lockTimeout = 10 * time.Second

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	codec := converter.NewJSONCodec()
	portfolioRepository := repository.NewPortfolioRepository(dbConn, codec)
	appliedRepository := repository.NewRebalanceAppliedRepository()

	lockService := service.NewPortfolioLockService(lockTimeout)
	rebalanceService := service.NewRebalanceService(dbConn, lockService, portfolioRepository, appliedRepository, codec)
	portfolioService := service.NewPortfolioService(dbConn, portfolioRepository)
	driftService := service.NewDriftService(portfolioRepository)

	apiHandler := &api.ApiHandler{
		Db:                   dbConn,
		PortfolioService:     portfolioService,
		RebalanceService:     rebalanceService,
		DriftService:         driftService,
		ApiRequestRepository: repository.ApiRequestRepositoryHandler{},
	}

	return apiHandler, nil
}
