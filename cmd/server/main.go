package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/term"

	"financeiq/internal/config"
	calchandlers "financeiq/internal/handlers/calculators"
	"financeiq/internal/handlers/dashboard"
	httpx "financeiq/internal/http"
	"financeiq/internal/services/anomaly"
	"financeiq/internal/services/ingest"
	"financeiq/internal/services/kpi"
	"financeiq/internal/services/storage"
	"financeiq/internal/version"
)

func main() {
	cfg := config.Load()
	log.Printf("Starting FinanceIQ API on %s", cfg.ListenAddr)
	log.Printf("Data directory: %s", cfg.DataDirectory)
	log.Printf("%s", version.Get())

	store, err := storage.New(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	if store.IsEncrypted() {
		if err := unlockStore(store, cfg.DataPassword); err != nil {
			log.Fatalf("Failed to unlock data directory: %v", err)
		}
		log.Printf("Data directory unlocked")
	}

	setupDependencies(cfg, store)
	r := setupRouter()

	log.Printf("Server starting on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}

// setupDependencies wires the services and loads the startup batch.
func setupDependencies(cfg *config.Config, store *storage.Store) {
	loader := ingest.NewLoader(store)
	metrics := kpi.New()
	model := anomaly.NewModel(cfg.ModelLatency)

	dashboard.Initialize(loader, metrics, model)
}

// setupRouter builds the chi router with middleware and all routes.
func setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	dashboard.RegisterRoutes(r)
	calchandlers.RegisterRoutes(r)

	r.Get("/api/health", handleHealth)
	r.Get("/api/version", handleVersion)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, version.Get())
}

// unlockStore unlocks an encrypted data directory, prompting on the
// terminal when no password was configured.
func unlockStore(store *storage.Store, password string) error {
	if password != "" {
		return store.Unlock(password)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("data directory is encrypted; set FINIQ_DATA_PASSWORD or run interactively")
	}

	fmt.Fprint(os.Stderr, "Data password: ")
	entered, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	return store.Unlock(string(entered))
}
