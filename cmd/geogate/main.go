package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appanalysis "github.com/complianceworks/geogate/internal/application/analysis"
	"github.com/complianceworks/geogate/internal/application/batch"
	"github.com/complianceworks/geogate/internal/config"
	domain "github.com/complianceworks/geogate/internal/domain/analysis"
	"github.com/complianceworks/geogate/internal/domain/glossary"
	"github.com/complianceworks/geogate/internal/infra/ai/ollama"
	"github.com/complianceworks/geogate/internal/infra/ai/openai"
	"github.com/complianceworks/geogate/internal/infra/httpserver"
	"github.com/complianceworks/geogate/internal/middleware"
)

func main() {
	app := &cli.App{
		Name:  "geogate",
		Usage: "screen feature descriptions for geo-specific compliance obligations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the yaml config",
				EnvVars: []string{"GEOGATE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "model backend: openai or ollama (overrides config)",
			},
			&cli.StringFlag{
				Name:  "glossary",
				Usage: "path to the glossary CSV (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "analyze every feature in a CSV and write an augmented CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Value: "sample_data.csv",
						Usage: "path to the input CSV file",
					},
					&cli.StringFlag{
						Name:  "output",
						Value: "analysis_results.csv",
						Usage: "path to the output CSV file",
					},
				},
				Action: runAnalyze,
			},
			{
				Name:      "check",
				Usage:     "classify a single feature description and print the result as JSON",
				ArgsUsage: "<description>",
				Action:    runCheck,
			},
			{
				Name:  "serve",
				Usage: "expose the analyzer over HTTP",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "listen port (overrides config)",
					},
				},
				Action: runServe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type env struct {
	cfg *config.Config
	log *zap.Logger
	svc *appanalysis.Service
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if v := c.String("backend"); v != "" {
		cfg.Backend = v
	}
	if v := c.String("glossary"); v != "" {
		cfg.Glossary = v
	}

	zcfg := zap.NewProductionConfig()
	if c.Bool("verbose") {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	gl := glossary.New(cfg.Glossary, logger.Named("glossary"))
	svc := appanalysis.NewService(buildClassifier(cfg, gl, logger), logger.Named("analysis"))
	return &env{cfg: cfg, log: logger, svc: svc}, nil
}

// buildClassifier returns nil when the selected backend cannot be
// initialized; the analysis service then degrades every row to a null
// result instead of aborting the run.
func buildClassifier(cfg *config.Config, gl *glossary.Glossary, log *zap.Logger) domain.Classifier {
	switch cfg.Backend {
	case config.BackendOpenAI:
		cl, err := openai.NewClient(openai.Config{
			APIKey: cfg.OpenAIKey(),
			Model:  cfg.OpenAI.Model,
		}, gl)
		if err != nil {
			log.Warn("hosted backend unavailable", zap.Error(err))
			return nil
		}
		return cl
	case config.BackendOllama:
		cl, err := ollama.NewClient(ollama.Config{
			ServerURL: cfg.Ollama.URL,
			Model:     cfg.Ollama.Model,
		}, gl)
		if err != nil {
			log.Warn("local backend unavailable", zap.Error(err))
			return nil
		}
		return cl
	default:
		log.Warn("unknown backend", zap.String("backend", cfg.Backend))
		return nil
	}
}

func runAnalyze(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	return batch.NewService(e.svc, e.log.Named("batch")).
		Run(c.Context, c.String("input"), c.String("output"))
}

func runCheck(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: geogate check <description>")
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	res := e.svc.Analyze(c.Context, c.Args().First())
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runServe(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	port := e.cfg.Server.Port
	if c.Int("port") != 0 {
		port = c.Int("port")
	}

	checkers := map[string]middleware.HealthChecker{
		"glossary": &middleware.FileHealthChecker{Path: e.cfg.Glossary},
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      httpserver.NewRouter(e.svc, e.log.Named("http"), checkers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		e.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			e.log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	e.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
