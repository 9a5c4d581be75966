package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devraikou/portfolio/internal/auth"
	"github.com/devraikou/portfolio/internal/config"
	"github.com/devraikou/portfolio/internal/server"
)

// newCLIApp creates the command line application. Running it without a
// command serves the site.
func newCLIApp(stdin io.Reader, stdout io.Writer) *cli.App {
	serve := serveCmd()

	app := &cli.App{
		Name:      "portfolio",
		Usage:     "Portfolio site with live Discord presence and GitHub projects",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		Flags:     serveFlags(),
		Action:    serve.Action,
		Commands:  []*cli.Command{serve, hashPasswordCmd()},
		ErrWriter: os.Stderr,
	}
	// Return errors to main instead of exiting, so tests can run commands.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server (default)",
		Flags: serveFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(c.App.Writer, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))

			if err := ensureDBDir(cfg.DBPath); err != nil {
				return err
			}

			srv, err := server.New(cfg, logger, server.Options{})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			// Start blocks until SIGINT or SIGTERM.
			return srv.Start()
		},
	}
}

// serveFlags is built per use; the app and the serve command each get
// their own flag values.
func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "env-file", Aliases: []string{"e"}, Usage: "Load variables from this file instead of ./.env"},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides PORT)"},
		&cli.StringFlag{Name: "db", Usage: "SQLite database path (overrides DB_PATH)"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides LOG_LEVEL)"},
	}
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = strings.ToLower(c.String("log-level"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDBDir creates the directory holding the database file.
func ensureDBDir(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}

func hashPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print a bcrypt hash for ADMIN_PASSWORD_HASH (reads the password from stdin)",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cost", Value: auth.DefaultCost, Usage: "bcrypt cost"},
		},
		Action: func(c *cli.Context) error {
			password, err := readPassword(c.App.Reader)
			if err != nil {
				return err
			}

			hash, err := auth.NewPasswordHasher(c.Int("cost")).Hash(password)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}

// readPassword reads the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password must be piped via stdin")
	}
	return line, nil
}
