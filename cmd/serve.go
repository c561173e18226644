package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/ai"
	"github.com/spigell/hr-interviewer/internal/ai/gemini"
	"github.com/spigell/hr-interviewer/internal/ai/openai"
	"github.com/spigell/hr-interviewer/internal/api"
	"github.com/spigell/hr-interviewer/internal/archive"
	"github.com/spigell/hr-interviewer/internal/interview"
	"github.com/spigell/hr-interviewer/internal/jobdesc"
	"github.com/spigell/hr-interviewer/internal/secrets"
)

const (
	defaultListen          = ":5000"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interview HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := serve(cmd); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", defaultListen, "address to listen on")
	serveCmd.Flags().String("archive", "", "bolt database file for completed interviews and decisions. Default is unset.")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	logger.Info("starting the hr-interviewer", zap.String("version", version))

	overrideArchive(config, cmd.Flag("archive").Value.String())

	controller, err := newController(config.Interview, logger)
	if err != nil {
		return err
	}

	opts := api.Options{
		Controller: controller,
		Logger:     logger,
	}
	if config.Scoring != nil {
		opts.Weights = *config.Scoring
	}

	if config.Archive != nil && config.Archive.Path != "" {
		arch, err := archive.Open(config.Archive.Path, logger)
		if err != nil {
			return err
		}
		defer arch.Close()

		controller.OnComplete(func(_ context.Context, result *interview.Result) {
			if err := arch.SaveResult(result); err != nil {
				logger.Error("archiving interview result", zap.String("session_id", result.SessionID), zap.Error(err))
			}
		})
		opts.Archive = arch
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("job description generation disabled", zap.Error(err))
	}
	opts.Writer = jobdesc.NewWriter(generator, logger)

	srv, err := api.NewServer(opts)
	if err != nil {
		return fmt.Errorf("creating api server: %w", err)
	}

	httpServer := newHTTPServer(config.Server, srv.Router())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(config.Server))
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// overrideArchive lets the --archive flag win over archive.path from the config.
func overrideArchive(config *Config, path string) {
	if path != "" {
		config.Archive = &ArchiveConfig{Path: path}
	}
}

func newHTTPServer(cfg *ServerConfig, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         defaultListen,
		Handler:      handler,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}
	if cfg == nil {
		return srv
	}
	if cfg.Listen != "" {
		srv.Addr = cfg.Listen
	}
	if cfg.ReadTimeout > 0 {
		srv.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		srv.WriteTimeout = cfg.WriteTimeout
	}
	return srv
}

func shutdownTimeout(cfg *ServerConfig) time.Duration {
	if cfg == nil || cfg.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return cfg.ShutdownTimeout
}

func newController(cfg *InterviewConfig, logger *zap.Logger) (*interview.Controller, error) {
	if cfg == nil {
		cfg = &InterviewConfig{}
	}

	bank, err := loadBank(cfg)
	if err != nil {
		return nil, err
	}

	sequencer := interview.NewSequencer(bank)
	return interview.NewController(
		interview.NewStore(),
		sequencer,
		interview.NewEvaluator(sequencer.Bank()),
		interview.Config{
			DefaultQuestions: cfg.DefaultQuestions,
			MaxQuestions:     cfg.MaxQuestions,
		},
		logger,
	), nil
}

// loadBank prefers the question bank file over an inline bank. With neither the built-in bank is used.
func loadBank(cfg *InterviewConfig) (interview.Bank, error) {
	switch {
	case cfg.QuestionBankFile != "":
		return interview.LoadBankFile(cfg.QuestionBankFile)
	case len(cfg.QuestionBank) > 0:
		return interview.BankFromMap(cfg.QuestionBank)
	default:
		return interview.DefaultBank(), nil
	}
}

// newGenerator builds the configured LLM client. A nil generator with a nil error means ai is disabled.
func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider, err := ai.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ai.ProviderOpenAI:
		oc := cfg.OpenAI
		if oc == nil {
			oc = &OpenAIConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: oc.APIKey,
			Env:   "OPENAI_API_KEY",
			File:  oc.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
		}
		g, err := openai.NewGenerator(openai.Config{APIKey: apiKey, Model: oc.Model, BaseURL: oc.BaseURL}, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		gc := cfg.Gemini
		if gc == nil {
			gc = &GeminiConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gc.APIKey,
			Env:   "GEMINI_API_KEY",
			File:  gc.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}
		g, err := gemini.NewGenerator(ctx, gemini.Config{APIKey: apiKey, Model: gc.Model, MaxRetries: gc.MaxRetries}, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}
