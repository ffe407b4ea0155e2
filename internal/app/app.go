package app

import (
	"log"
	"net/http"
	"time"

	"wm-ferretero/go_backend/internal/app/config"
	apphttp "wm-ferretero/go_backend/internal/app/http"
	infra "wm-ferretero/go_backend/internal/infra/db/postgres"
	"wm-ferretero/go_backend/internal/store"
	pgstore "wm-ferretero/go_backend/internal/store/postgres"
	"wm-ferretero/go_backend/internal/store/supabase"
)

func Run() {
	cfg := config.MustLoad()

	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		db, err := infra.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()
		st = pgstore.New(db)
	default:
		st = supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	}
	log.Printf("store: driver=%s", cfg.StoreDriver)

	router := apphttp.NewRouter(cfg, st)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
