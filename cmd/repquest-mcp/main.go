// Command repquest-mcp serves RepQuest data over MCP on stdio. Local mode
// talks straight to Postgres; remote mode proxies the REST API, for
// running next to an agent on a machine that only has network access to
// the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/repquest/repquest/internal/config"
	"github.com/repquest/repquest/internal/mcp"
	"github.com/repquest/repquest/internal/remote"
	"github.com/repquest/repquest/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode)")
	serverURL := flag.String("server", "", "RepQuest server URL (remote mode)")
	apiKey := flag.String("api-key", os.Getenv("REPQUEST_API_KEY"), "server API key (remote mode)")
	user := flag.String("user", "local", "user login to scope tool calls to")
	flag.Parse()

	// MCP owns stdout; logs must go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	uid := 1

	switch {
	case *serverURL != "":
		// Remote mode scopes by the X-User header; the server resolves
		// the login to a row id on its side.
		ds = mcp.NewHTTPSource(remote.New(*serverURL, *apiKey, *user))
		log.Info("remote mode", "server", *serverURL, "user", *user)

	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		uid, err = db.GetOrCreateUser(context.Background(), *user, "")
		if err != nil {
			log.Error("failed to resolve user", "login", *user, "error", err)
			os.Exit(1)
		}
		ds = db
		log.Info("local mode", "database", cfg.Database.Name, "user", *user)

	default:
		fmt.Fprintf(os.Stderr, "Usage: repquest-mcp -config config.yaml | -server <URL> [-api-key K] [-user U]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)
	stdioCtx := server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, uid)
	})
	if err := server.ServeStdio(s, stdioCtx); err != nil {
		log.Error("mcp server exited", "error", err)
		os.Exit(1)
	}
}
