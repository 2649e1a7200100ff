package app

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"lab_asset_ledger/config"
	"lab_asset_ledger/engine"
	"lab_asset_ledger/notify"
	"lab_asset_ledger/persist"
)

// Aliases so handlers stay short.
type Ctx = gin.Context
type H = gin.H

// App aggregates the runtime dependencies.
type App struct {
	Router   *gin.Engine
	Engine   *engine.Engine
	Store    persist.Adapter
	Notifier notify.Generator
	Config   config.Config
}

func MustNew() *App {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := persist.Open(ctx, persist.Config{
		Driver:        cfg.StoreDriver,
		DataFile:      cfg.DataFile,
		PostgresDSN:   cfg.PostgresDSN,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPwd,
		RedisKey:      cfg.RedisKey,
	})
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	eng, err := engine.New(ctx, store)
	if err != nil {
		log.Fatalf("start engine: %v", err)
	}
	eng.Subscribe(func(ev engine.Event) {
		if ev.Tx != nil {
			log.Printf("ledger %s item=%s tx=%s", ev.Kind, ev.ItemID, ev.Tx.ID)
			return
		}
		log.Printf("inventory %s item=%s", ev.Kind, ev.ItemID)
	})

	var gen notify.Generator = notify.Fallback{}
	if cfg.OpenAIKey != "" {
		gen = notify.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{Router: r, Engine: eng, Store: store, Notifier: gen, Config: cfg}
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
