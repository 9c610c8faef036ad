// cmd/server/main.go
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/00jmdc-SysEng/Attendance/internal/config"
	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
	"github.com/00jmdc-SysEng/Attendance/internal/logging"
	"github.com/00jmdc-SysEng/Attendance/internal/routes"
	"github.com/00jmdc-SysEng/Attendance/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logging.New("attendance")

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	// Users always live in Postgres; the ledger store is swappable.
	db, err := storage.OpenDB(cfg.DB)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}

	var store ledger.Store
	switch cfg.StoreDriver {
	case "memory":
		store = storage.NewMemoryStore()
		log.Warn("using in-memory ledger store; records are lost on restart")
	default:
		store = storage.NewGormStore(db)
	}

	svc := ledger.NewService(store, log)
	r := routes.NewRouter(db, svc, store, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("server running", "addr", addr)

	if err := r.Run(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
