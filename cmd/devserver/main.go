package main

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"recipebook-tracker/internal/config"
	"recipebook-tracker/internal/devserver"
	"recipebook-tracker/internal/logging"
)

func main() {
	// Load .env file and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	store := devserver.NewStore(time.Now)
	if cfg.Server.Seed {
		store.Seed(time.Now().AddDate(0, 0, -6), 175, []float64{82.4, 82.1, 81.7, 81.9, 81.2, 80.8, 80.5})
		for _, name := range []string{"Banana", "Oats", "Quinoa"} {
			_ = store.AddIngredient(name)
		}
		logger.Info("store seeded", zap.Int("records", len(store.Recent(devserver.RecentLimit))))
	}

	srv := devserver.New(store, logger, devserver.Options{CSRF: cfg.Server.CSRF})

	logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("csrf", cfg.Server.CSRF))
	if err := http.ListenAndServe(":"+cfg.Server.Port, srv.Handler()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
