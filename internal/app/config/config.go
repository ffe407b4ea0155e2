package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from the environment. StoreDriver selects the persistence
// shape at deployment time: "supabase" writes the embedded record over
// PostgREST, "postgres" writes the normalized rows over pgx.
type Config struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	InternalToken string `envconfig:"INTERNAL_TOKEN" required:"true"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"supabase"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	SupabaseURL            string `envconfig:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`

	LogoPath      string `envconfig:"LOGO_PATH"`
	SignaturePath string `envconfig:"SIGNATURE_PATH"`
}

func MustLoad() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	switch cfg.StoreDriver {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
			log.Fatalf("config: STORE_DRIVER=supabase requires SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatalf("config: STORE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		log.Fatalf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg
}
