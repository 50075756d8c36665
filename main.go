package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gitfolio/internal/config"
	"gitfolio/internal/format"
	"gitfolio/internal/generator"
	"gitfolio/internal/github"
	"gitfolio/internal/handlers"
	"gitfolio/internal/localrepo"
	"gitfolio/internal/scan"
	"gitfolio/internal/server"
)

const usage = `Usage: gitfolio <command> [flags]

Commands:
  generate   scan all GitHub repositories for an account and write one
             combined portfolio document
  scan       manage the .portfolio.json override file of one local
             repository directory (-init, -update, -check)
  serve      serve generated entries over HTTP with per-entry toggles
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "scan":
		err = runScan(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func runGenerate(args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	user := fs.String("user", cfg.GitHubUser, "GitHub account to aggregate (default: authenticated user)")
	output := fs.String("output", cfg.Output, "output file path")
	formatName := fs.String("format", cfg.Format, "output format: json, yaml, or markdown")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := github.NewClient(*user, cfg.GitHubToken)
	entries, err := generator.New(client).Generate(context.Background(), cfg.ExcludeSet())
	if err != nil {
		return err
	}

	out, err := format.Entries(entries, *formatName)
	if err != nil {
		return err
	}

	path := format.OutputPath(*output, *formatName)
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("Wrote %d entries to %s", len(entries), path)
	return nil
}

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	doInit := fs.Bool("init", false, "write a fresh .portfolio.json draft")
	doUpdate := fs.Bool("update", false, "refresh unset fields of an existing .portfolio.json")
	doCheck := fs.Bool("check", false, "validate .portfolio.json and report every violation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := fs.Arg(0)
	if dir == "" {
		dir = "."
	}
	repo, err := localrepo.Open(dir)
	if err != nil {
		return err
	}

	svc := scan.NewService()
	switch {
	case *doUpdate:
		return svc.Update(repo)
	case *doCheck:
		return svc.Check(repo)
	case *doInit:
		return svc.Init(repo)
	default:
		return svc.Init(repo)
	}
}

func runServe(args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	user := fs.String("user", cfg.GitHubUser, "GitHub account to aggregate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := github.NewClient(*user, cfg.GitHubToken)
	entries, err := generator.New(client).Generate(context.Background(), cfg.ExcludeSet())
	if err != nil {
		return err
	}

	srv := server.New(cfg)
	handler := handlers.NewHandler(entries)

	srv.Router().GET("/health", handler.Health)
	srv.Router().GET("/api/projects", handler.ListProjects)
	srv.Router().POST("/api/projects/:name/toggle", handler.ToggleProject)
	srv.Router().GET("/api/export", handler.Export)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Println("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
