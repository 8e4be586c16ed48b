package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
	"github.com/rangvaar/rangvaar-backend/internal/httpapi"
	"github.com/rangvaar/rangvaar-backend/internal/hub"
	"github.com/rangvaar/rangvaar-backend/internal/match"
	"github.com/rangvaar/rangvaar-backend/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var st store.MatchStore
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := store.NewPostgres(dsn)
		if err != nil {
			log.Fatal("open store", zap.Error(err))
		}
		st = pg
		log.Info("using postgres store")
	} else {
		st = store.NewMemory()
		log.Info("using in-memory store")
	}

	svc := match.NewService(st, engine.New(nil), log)

	ctx := context.Background()
	h := hub.NewHub(ctx, svc, log)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(svc, h)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
