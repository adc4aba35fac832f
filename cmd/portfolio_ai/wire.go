package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonathan/portfolio-ai/internal/assistant"
	"github.com/jonathan/portfolio-ai/internal/config"
	"github.com/jonathan/portfolio-ai/internal/llm"
	"github.com/jonathan/portfolio-ai/internal/logger"
	"github.com/jonathan/portfolio-ai/internal/profile"
	"github.com/jonathan/portfolio-ai/internal/retrieval"
	"github.com/jonathan/portfolio-ai/internal/security"
	"github.com/jonathan/portfolio-ai/internal/server/ratelimit"
)

const storeConnectTimeout = 5 * time.Second

// app holds the wired question pipeline and everything that must be released on exit
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *assistant.Service
	client  llm.Client
	store   ratelimit.Store
	closers []func()
}

// appOptions tune wiring for the different commands
type appOptions struct {
	// memoryOnly skips the durable counter stores
	memoryOnly bool
}

// newApp wires the question pipeline from cfg
func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	log, err := logger.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	doc, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	owner := profile.OwnerOf(doc)
	chunks := retrieval.BuildChunks(doc)
	log.Info("profile loaded", "owner", owner.FullName, "chunks", len(chunks))

	a := &app{cfg: cfg, logger: log}

	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.LLMAPIKey())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if llm.IsMock(client) {
		log.Warn("no API key configured, answers come from the mock client", "provider", cfg.LLMProvider)
	}
	a.client = llm.NewThrottled(client, cfg.LLMMaxRPS)
	a.closers = append(a.closers, func() { _ = a.client.Close() })

	memory := ratelimit.NewMemoryStore(cfg.RateLimitCleanupInterval)
	a.closers = append(a.closers, memory.Stop)
	a.store = memory
	if !opts.memoryOnly {
		a.store = a.openStore(ctx, memory)
	}

	assembler, err := assistant.NewAssembler(a.client, owner, cfg.LLMMaxTokens, cfg.LLMTemperature)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.service = assistant.NewService(assistant.Options{
		Chunks:    chunks,
		Gate:      security.NewGate(owner, log),
		Assembler: assembler,
		Global:    ratelimit.NewLimiter(a.store, ratelimit.GlobalPolicy(cfg.RateLimitGlobal, cfg.RateLimitWindow)),
		PerCaller: ratelimit.NewLimiter(a.store, ratelimit.CallerPolicy(cfg.RateLimitPerCaller, cfg.RateLimitWindow)),
		Logger:    log,
	})

	return a, nil
}

// Close releases clients, pools and background goroutines in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// openStore picks the first configured durable store: Upstash, then Redis, then Postgres.
// A durable store is wrapped so its failures fall back to memory; an unusable configuration
// falls back to memory alone.
func (a *app) openStore(ctx context.Context, memory *ratelimit.MemoryStore) ratelimit.Store {
	var primary ratelimit.Store

	switch {
	case a.cfg.HasUpstash():
		client, err := ratelimit.NewUpstashClient(a.cfg.UpstashRedisURL, a.cfg.UpstashRedisToken)
		if err != nil {
			a.logger.Warn("upstash unavailable, using in-memory counters", "error", err)
			return memory
		}
		store := ratelimit.NewRedisStore(client)
		a.closers = append(a.closers, func() { _ = store.Close() })
		a.pingRedis(ctx, store, "upstash")
		primary = store

	case a.cfg.HasRedis():
		client, err := ratelimit.NewRedisClient(a.cfg.RedisURL)
		if err != nil {
			a.logger.Warn("redis unavailable, using in-memory counters", "error", err)
			return memory
		}
		store := ratelimit.NewRedisStore(client)
		a.closers = append(a.closers, func() { _ = store.Close() })
		a.pingRedis(ctx, store, "redis")
		primary = store

	case a.cfg.HasDatabase():
		connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
		defer cancel()

		store, err := ratelimit.ConnectPostgres(connectCtx, a.cfg.DatabaseURL)
		if err != nil {
			a.logger.Warn("postgres unavailable, using in-memory counters", "error", err)
			return memory
		}
		a.closers = append(a.closers, store.Close)
		a.startPostgresCleanup(store)
		a.logger.Info("rate limit counters in postgres")
		primary = store

	default:
		a.logger.Info("rate limit counters in memory")
		return memory
	}

	return ratelimit.NewFallbackStore(primary, memory, a.logger)
}

// pingRedis logs whether the store is reachable. An unreachable store is kept; the
// fallback store covers it until it recovers.
func (a *app) pingRedis(ctx context.Context, store *ratelimit.RedisStore, kind string) {
	pingCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	defer cancel()

	if err := store.Ping(pingCtx); err != nil {
		a.logger.Warn("rate limit store not reachable, counting in memory until it is", "store", kind, "error", err)
		return
	}
	a.logger.Info("rate limit counters in " + kind)
}

// startPostgresCleanup deletes expired counter rows on the memory cleanup interval
func (a *app) startPostgresCleanup(store *ratelimit.PostgresStore) {
	interval := a.cfg.RateLimitCleanupInterval
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := store.DeleteExpired(ctx)
				if err != nil {
					a.logger.Warn("failed to delete expired counters", "error", err)
					continue
				}
				if n > 0 {
					a.logger.Debug("deleted expired counters", "count", n)
				}
			}
		}
	}()

	a.closers = append(a.closers, func() {
		cancel()
		<-done
	})
}

// llmConfig maps the environment settings onto the client configuration
func llmConfig(cfg *config.Config) *llm.Config {
	c := llm.DefaultOpenAIConfig()
	c.Model = cfg.OpenAIModel
	c.BaseURL = cfg.OpenAIBaseURL

	if llm.Provider(cfg.LLMProvider) == llm.ProviderGemini {
		c = llm.DefaultGeminiConfig()
		c.Model = cfg.GeminiModel
	}

	c.MaxTokens = cfg.LLMMaxTokens
	c.Temperature = cfg.LLMTemperature
	c.Timeout = cfg.LLMTimeout
	return c
}
