package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndreJorgeSenaiBA/Repox/config"
	"github.com/AndreJorgeSenaiBA/Repox/internal/catalog"
	"github.com/AndreJorgeSenaiBA/Repox/internal/files"
	"github.com/AndreJorgeSenaiBA/Repox/internal/gallery"
	"github.com/AndreJorgeSenaiBA/Repox/internal/github"
	"github.com/AndreJorgeSenaiBA/Repox/internal/logger"
	"github.com/AndreJorgeSenaiBA/Repox/internal/server"
	"github.com/AndreJorgeSenaiBA/Repox/internal/telemetry"
	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

// app holds what both commands share
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	table     *catalog.Table
	telemetry *telemetry.Telemetry
	closeLog  io.Closer
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "repox",
		Short:         "Serve the gallery catalog of a GitHub repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return a.serve()
		},
	}
	root.AddCommand(newCrawlCmd())
	return root
}

func newCrawlCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl once and print the catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return a.crawl(cmd.Context(), dir, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "crawl a local checkout instead of the GitHub repository")
	return cmd
}

func setup(ctx context.Context, logOut io.Writer) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Writer: logOut,
	})

	table, err := catalog.LoadTable(cfg.CategoriesFile)
	if err != nil {
		closeLog.Close()
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	tel, err := telemetry.New(ctx, cfg.OTelEnabled)
	if err != nil {
		closeLog.Close()
		return nil, fmt.Errorf("failed to start telemetry: %w", err)
	}

	return &app{cfg: cfg, log: log, table: table, telemetry: tel, closeLog: closeLog}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.log.Warn("telemetry shutdown", "error", err)
	}
	a.closeLog.Close()
}

// service builds the catalog pipeline over lister
func (a *app) service(lister tree.Lister, root string) (*gallery.Service, error) {
	instruments, err := telemetry.NewInstruments()
	if err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}
	return gallery.NewService(lister, a.table, gallery.Options{
		Root:        root,
		Timeout:     a.cfg.CrawlTimeout,
		Instruments: instruments,
	}, a.log), nil
}

func (a *app) githubLister() tree.Lister {
	gh := github.NewTokenClient(a.cfg.GitHubToken, a.cfg.GitHubAPIURL, a.cfg.GitHubUserAgent)
	return github.NewContentsLister(gh, a.cfg.GitHubOwner, a.cfg.GitHubRepo, a.cfg.GitHubRef)
}

func (a *app) serve() error {
	if err := a.cfg.RequireGitHubToken(); err != nil {
		a.log.Warn("no GitHub token configured; catalog requests will fail until it is set")
	}

	svc, err := a.service(a.githubLister(), a.cfg.GitHubPath)
	if err != nil {
		return err
	}

	srv, err := server.New(a.cfg, svc, a.log)
	if err != nil {
		return err
	}
	return srv.Run()
}

func (a *app) crawl(ctx context.Context, dir string, out io.Writer) error {
	var (
		lister tree.Lister
		root   string
	)
	if dir != "" {
		browser, err := files.NewBrowser(dir, files.HashOnly(a.table))
		if err != nil {
			return err
		}
		lister = browser
	} else {
		if err := a.cfg.RequireGitHubToken(); err != nil {
			return err
		}
		lister = a.githubLister()
		root = a.cfg.GitHubPath
	}

	svc, err := a.service(lister, root)
	if err != nil {
		return err
	}

	records, _, err := svc.Catalog(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
