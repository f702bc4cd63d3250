package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"event-site/pkg/config"
	"event-site/pkg/logger"
	"event-site/pkg/models"
	"event-site/pkg/server"

	"github.com/urfave/cli/v2"
)

func main() {
	// .env and environment first; flags override them.
	cfg := config.Load()

	app := &cli.App{
		Name:  "eventsite",
		Usage: "Event information website: Markdown tabs and articles over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   cfg.LogLevel,
				Usage:   "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "content-dir",
				Aliases: []string{"c"},
				Value:   cfg.ContentDir,
				Usage:   "Root directory holding one subdirectory per tab",
			},
		},
		Before: func(c *cli.Context) error {
			cfg.LogLevel = c.String("log-level")
			cfg.ContentDir = c.String("content-dir")
			logger.Setup(logger.ParseLevel(cfg.LogLevel))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: serveFlags(cfg),
				Action: func(c *cli.Context) error {
					return runServe(c, cfg)
				},
			},
			{
				Name:  "tabs",
				Usage: "Print the tabs and their article counts as JSON",
				Action: func(c *cli.Context) error {
					return runTabs(cfg)
				},
			},
			{
				Name:      "show",
				Usage:     "Print one rendered article as JSON",
				ArgsUsage: "<tab> <article>",
				Action: func(c *cli.Context) error {
					return runShow(c, cfg)
				},
			},
		},
		Action: func(c *cli.Context) error {
			return runServe(c, cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func serveFlags(cfg config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   cfg.Port,
			Usage:   "HTTP server port",
		},
		&cli.StringFlag{
			Name:  "env",
			Value: cfg.Environment,
			Usage: "Environment (development enables debug mode)",
		},
	}
}

func runServe(c *cli.Context, cfg config.Config) error {
	// Bare "eventsite" runs serve without its flags.
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	if env := c.String("env"); env != "" {
		cfg.Environment = env
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.Debug() && cfg.SecretKey == config.DefaultSecretKey {
		slog.Warn("running outside development with the default secret key")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func runTabs(cfg config.Config) error {
	cm := server.NewContentManager(cfg)

	summaries := []models.TabSummary{}
	for _, tab := range cm.ListTabs() {
		summaries = append(summaries, models.TabSummary{Tab: tab, Articles: cm.CountArticles(tab.ID)})
	}
	return printJSON(summaries)
}

func runShow(c *cli.Context, cfg config.Config) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: %s show <tab> <article>", c.App.Name)
	}

	cm := server.NewContentManager(cfg)
	article, err := cm.GetArticle(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return printJSON(article)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
