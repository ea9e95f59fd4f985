package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/smartbank/smartbank/internal/auth"
	"github.com/smartbank/smartbank/internal/config"
	"github.com/smartbank/smartbank/internal/database"
	"github.com/smartbank/smartbank/internal/database/repository"
	"github.com/smartbank/smartbank/internal/i18n"
	"github.com/smartbank/smartbank/internal/logging"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/screens"
	"github.com/smartbank/smartbank/internal/secrets"
	"github.com/smartbank/smartbank/internal/signin"
	"github.com/smartbank/smartbank/internal/tui"
	"github.com/smartbank/smartbank/internal/ui"
)

func main() {
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config file and exit")
	setKey := flag.String("set-key", "", "store the auth provider API key in the secrets store and exit")
	signOut := flag.Bool("sign-out", false, "forget the stored session for the configured provider and exit")
	history := flag.Int("history", 0, "print the last N sign-in requests and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if *writeConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("config: %v", err)
		}
		fmt.Println("wrote", config.Path())
		return
	}

	logger, closeLog, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	store, err := secrets.Default()
	if err != nil {
		log.Fatalf("secrets: %v", err)
	}
	if *setKey != "" {
		if err := store.Put(secrets.ProviderKey(cfg.Auth.Provider), strings.TrimSpace(*setKey)); err != nil {
			log.Fatalf("secrets: %v", err)
		}
		fmt.Println("stored API key for", cfg.Auth.Provider)
		return
	}
	if *signOut {
		if err := store.Delete(secrets.SessionKey(cfg.Auth.Provider)); err != nil {
			log.Fatalf("secrets: %v", err)
		}
		fmt.Println("signed out of", cfg.Auth.Provider)
		return
	}
	if *history > 0 {
		if err := printHistory(repository.NewSignInRepo(db), *history); err != nil {
			log.Fatalf("history: %v", err)
		}
		return
	}

	provider := authProvider(cfg.Auth, resolveAPIKey(cfg.Auth, store), logger)
	svc := &signin.Service{
		Provider:   provider,
		Journal:    repository.NewSignInRepo(db),
		Sessions:   store,
		SessionKey: secrets.SessionKey(provider.Name()),
		Log:        logger,
	}

	catalog, err := i18n.New(cfg.UI.Language)
	if err != nil {
		log.Fatalf("i18n: %v", err)
	}
	keys := ui.NewKeyRegistry(ui.DefaultKeyBindings())
	instance := uuid.New()

	router, err := nav.New(nav.DefaultTable(), screens.Factories(screens.Deps{
		SignIn:  svc,
		Keys:    keys,
		Catalog: catalog,
		Log:     logger,
		Redirect: func() string {
			return auth.RedirectURL(cfg.Auth.RedirectScheme, cfg.Auth.RedirectPath, instance)
		},
		Timeout:        cfg.Auth.Timeout,
		ResendInterval: cfg.Auth.ResendInterval,
		CanVerify:      true,
	}), logger)
	if err != nil {
		log.Fatalf("routes: %v", err)
	}
	initial, _ := cfg.Initial()
	if err := router.Start(initial, nil); err != nil {
		log.Fatalf("routes: %v", err)
	}

	logger.Info("starting", "provider", provider.Name(), "initial_route", initial, "instance", instance)
	app := tui.New(router, keys, catalog, func(r nav.RouteName) string { return screens.RouteTitle(catalog, r) })
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func authProvider(cfg config.AuthConfig, apiKey string, logger *slog.Logger) auth.Provider {
	client := &http.Client{}
	switch cfg.Provider {
	case config.ProviderKratos:
		return auth.NewKratos(cfg.URL, client, logger)
	default:
		return auth.NewGoTrue(cfg.URL, apiKey, client, logger)
	}
}

func printHistory(repo *repository.SignInRepo, n int) error {
	recent, err := repo.Recent(context.Background(), n)
	if err != nil {
		return err
	}
	for _, r := range recent {
		line := fmt.Sprintf("%s  %-8s  %-7s  %s", r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Provider, r.Email)
		if r.Error != "" {
			line += "  (" + r.Error + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// resolveAPIKey prefers the configured env var, then the secrets store, then
// the plain config value.
func resolveAPIKey(cfg config.AuthConfig, store *secrets.Store) string {
	if env := strings.TrimSpace(cfg.AnonKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	k, err := store.Get(secrets.ProviderKey(cfg.Provider))
	if err == nil {
		return k
	}
	if !errors.Is(err, secrets.ErrNotFound) {
		slog.Warn("read stored api key", "err", err)
	}
	return strings.TrimSpace(cfg.AnonKey)
}
