package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cartable-app/cartable/internal/ai"
	"github.com/cartable-app/cartable/internal/api"
	dbstore "github.com/cartable-app/cartable/internal/db"
	"github.com/cartable-app/cartable/internal/middleware"
	"github.com/cartable-app/cartable/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded configuration from .env")
	}

	addr := utils.SafeEnv("CARTABLE_ADDR", ":8080")
	commit := os.Getenv("CARTABLE_COMMIT")
	buildTime := os.Getenv("CARTABLE_BUILD_TIME")

	store, closeStore, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	var client *ai.Client
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		client, err = ai.NewClient(context.Background(), key)
		if err != nil {
			log.Fatalf("create generation client: %v", err)
		}
	} else {
		log.Printf("GEMINI_API_KEY not set; chat endpoints will report a configuration error")
	}
	model := utils.SafeEnv("CARTABLE_AI_MODEL", ai.DefaultModel)

	mux := http.NewServeMux()
	api.NewRouter(store, client, model).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Cartable API",
			"locale":     locale,
			"msg":        utils.T(locale, "health.ok"),
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	handler := middleware.CORS(
		middleware.SecureHeaders(
			middleware.NoStore(
				middleware.LocaleMiddleware(
					middleware.WithAuth(mux)))))

	log.Printf("Cartable server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks SQLite when CARTABLE_SQLITE_PATH is set, the in-memory
// store otherwise. The in-memory store loses everything on restart and is
// meant for local development only.
func openStore() (api.Store, func(), error) {
	path := os.Getenv("CARTABLE_SQLITE_PATH")
	if path == "" {
		log.Printf("CARTABLE_SQLITE_PATH not set; using in-memory store")
		return api.NewMemoryStore(), nil, nil
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, err
	}
	if err := dbstore.RunMigrations(conn, os.Getenv("CARTABLE_MIGRATIONS_DIR")); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	store, err := dbstore.NewStore(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	log.Printf("using sqlite store at %s", path)
	return store, func() { _ = conn.Close() }, nil
}
