package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/iamvkosarev/perplexity-chat/config"
	"github.com/iamvkosarev/perplexity-chat/internal/api"
	"github.com/iamvkosarev/perplexity-chat/internal/storage/file"
	in_memory "github.com/iamvkosarev/perplexity-chat/internal/storage/in-memory"
	key_value "github.com/iamvkosarev/perplexity-chat/internal/storage/key-value"
	"github.com/iamvkosarev/perplexity-chat/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"
)

const shutdownTimeout = 10 * time.Second

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger points the standard logger at the configured file, appending
// to it across runs. It falls back to stderr when the file can not be opened.
func SetupLogger(cfg config.Log) io.Closer {
	log.SetFlags(log.LstdFlags)
	if cfg.File == "" {
		return nopCloser{}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to open log file %s, logging to stderr: %v", cfg.File, err)
		return nopCloser{}
	}
	log.SetOutput(f)
	return f
}

// RunWeb serves the form until ctx is cancelled or the listener fails.
func RunWeb(ctx context.Context, cfg *config.Config) error {
	catalog := usecase.NewCatalogUsecase(usecase.CatalogUsecaseDeps{})
	models := catalog.FetchModels(ctx, cfg.Perplexity.ModelCardsURL)
	log.Printf("model catalog has %d models", len(models))

	chatCompletion := usecase.NewChatCompletionUsecase(cfg.Perplexity)
	form := usecase.NewFormUsecase(
		usecase.FormUsecaseDeps{
			Completer: chatCompletion,
		}, cfg.Web.DefaultModel, models,
	)

	router := api.NewRouter(
		api.RouterDependencies{
			FormHandlers:   api.NewFormHandlers(form),
			AllowedOrigins: cfg.Web.AllowedOrigins,
		},
	)
	server := &http.Server{
		Addr:              cfg.Web.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var serveErr error
	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			defer cancel()
			log.Printf("web front-end listening on %s", cfg.Web.Address)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr = fmt.Errorf("failed to listen on %s: %w", cfg.Web.Address, err)
			}
		},
	)
	wg.Go(
		func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("web front-end shutdown failed: %v", err)
			}
		},
	)
	wg.Wait()
	return serveErr
}

// RunConsole runs the interactive loop on the terminal. contextName, when set,
// is loaded before the first question.
func RunConsole(ctx context.Context, cfg *config.Config, contextName string) error {
	storage, err := NewContextStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create context storage: %w", err)
	}

	input := newLinerInput(cfg.Console.HistoryFile)
	defer input.Close()

	deps := usecase.ConsoleUsecaseDeps{
		Input:     input,
		Output:    os.Stdout,
		Completer: usecase.NewChatCompletionUsecase(cfg.Perplexity),
		Storage:   storage,
	}
	if cfg.Console.RenderMarkdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			log.Printf("failed to create markdown renderer, printing plain text: %v", err)
		} else {
			deps.Renderer = renderer
		}
	}

	console := usecase.NewConsoleUsecase(cfg.Console, cfg.Perplexity.SystemPrompt, deps)
	conv := console.LoadContext(ctx, contextName)
	return console.Run(ctx, conv)
}

// NewContextStorage picks the backend named in cfg.
func NewContextStorage(ctx context.Context, cfg config.Storage) (usecase.ContextStorage, error) {
	switch cfg.Backend {
	case "", "file":
		return file.NewContextStorage(cfg.Dir)
	case "memory":
		return in_memory.NewContextStorage(), nil
	case "redis":
		rdb := redis.NewClient(
			&redis.Options{
				Addr: cfg.RedisAddr,
			},
		)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return key_value.NewContextStorage(rdb, cfg.RedisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
