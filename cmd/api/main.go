package main

import (
	"context"
	"log"

	"portfolioservice/cmd"
	"portfolioservice/internal/logger"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	scheduler := cron.New()
	_, err = scheduler.AddFunc("@every 1h", func() {
		ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())
		if err := apiHandler.DriftService.ScanOnce(ctx); err != nil {
			logger.FromContext(ctx).Errorw("drift scan failed", "error", err)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	err = apiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}
