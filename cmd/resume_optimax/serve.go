package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimax/internal/config"
	"github.com/jonathan/resume-optimax/internal/enhancement"
	"github.com/jonathan/resume-optimax/internal/llm"
	"github.com/jonathan/resume-optimax/internal/observability"
	"github.com/jonathan/resume-optimax/internal/server"
)

type serveOptions struct {
	port          int
	allowedOrigin string
	provider      string
	model         string
	logLevel      string
}

func newServeCmd(configPath *string) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the enhancement relay",
		Long:  `Start an HTTP server that exposes POST /api/enhance and the picker data routes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (default 5000)")
	cmd.Flags().StringVar(&opts.allowedOrigin, "allowed-origin", "", "Access-Control-Allow-Origin value")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "LLM provider: gemini or openai")
	cmd.Flags().StringVar(&opts.model, "model", "", "Override the provider model")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	return cmd
}

// apply overrides cfg with flags the user set explicitly
func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("allowed-origin") {
		cfg.AllowedOrigin = o.allowedOrigin
	}
	if flags.Changed("provider") && o.provider != cfg.Provider {
		cfg.Provider = o.provider
		cfg.APIKey = config.APIKeyFromEnv(o.provider)
	}
	if flags.Changed("model") {
		cfg.Model = o.model
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := newLLMClient(ctx, cfg, logger)
	defer func() { _ = client.Close() }()

	enhancer := enhancement.NewEnhancer(client, enhancement.WithLogger(logger))
	logger.Info("enhancement provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", enhancer.Model()),
	)

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		AllowedOrigin: cfg.AllowedOrigin,
		MaxBodyBytes:  cfg.MaxBodyBytes,
	}, enhancer, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}

// newLLMClient builds the provider client. A client that cannot be built, for
// example because no API key is set, is replaced by one that fails every call,
// so the relay still starts and answers each enhancement with a 500.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) llm.Client {
	llmCfg := llmConfig(cfg)

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		logger.Warn("LLM provider unavailable; enhancement requests will fail",
			zap.String("provider", cfg.Provider),
			zap.Error(err),
		)
		return llm.NewUnavailableClient(llmCfg, err)
	}
	return client
}

func llmConfig(cfg *config.Config) *llm.Config {
	llmCfg := llm.ConfigFor(llm.Provider(cfg.Provider))
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.Provider == config.ProviderOpenAI {
		llmCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return llmCfg
}
