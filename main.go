package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/genai"

	"github.com/cloudwego/eino-ext/components/model/gemini"

	"github.com/kdhyo/ledger-ai/internal/agent/engine"
	"github.com/kdhyo/ledger-ai/internal/agent/model"
	"github.com/kdhyo/ledger-ai/internal/agent/nlu"
	"github.com/kdhyo/ledger-ai/internal/agent/repo"
	"github.com/kdhyo/ledger-ai/internal/agent/session"
	"github.com/kdhyo/ledger-ai/internal/api"
	"github.com/kdhyo/ledger-ai/internal/core"
	"github.com/kdhyo/ledger-ai/internal/ledger"
	logx "github.com/kdhyo/ledger-ai/pkg/logger"
	pkgredis "github.com/kdhyo/ledger-ai/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	Addr   string `envconfig:"ADDR" default:":8080"`
	DBPath string `envconfig:"LEDGER_DB_PATH" default:"ledger.db"`

	// LLM provider; when APIKey is empty the deterministic rule backend
	// serves NLU instead.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Infrastructure
	Redis pkgredis.Config

	// Agent configs
	NLU          model.NLUModelConfig
	Conversation model.ConversationConfig
	Engine       model.EngineConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("no .env file loaded")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	env := core.ParseEnvironment(cfg.Env)
	logx.Init(logx.LoggerOpts{Environment: env})

	store, err := ledger.Open(cfg.DBPath)
	if err != nil {
		logx.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open ledger store")
	}
	defer store.Close()

	backend, err := buildBackend(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build NLU backend")
	}

	extractor := nlu.NewExtractor(backend, time.Duration(cfg.NLU.TimeoutSec)*time.Second)

	transcripts, closeTranscripts, err := buildTranscripts(cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build transcript store")
	}
	defer closeTranscripts()

	eng := engine.New(store, extractor, session.NewStore(), transcripts, cfg.Engine, cfg.Conversation)

	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	api.Register(r, eng)

	logx.Info().Str("addr", cfg.Addr).Str("db", store.Path()).Msg("ledger-ai listening")
	if err := r.Run(cfg.Addr); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}

// buildBackend picks the NLU backend: Gemini via eino when an API key is
// configured, otherwise the deterministic rule backend.
func buildBackend(ctx context.Context, cfg AppConfig) (nlu.Backend, error) {
	if cfg.APIKey == "" {
		logx.Info().Msg("GEMINI_API_KEY not set; using rule-based NLU backend")
		return nlu.NewRuleBackend(), nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, err
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.NLU.Model,
		Temperature: &cfg.NLU.Temperature,
		MaxTokens:   &cfg.NLU.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	backend := nlu.NewModelBackend(chatModel, cfg.NLU.Model)
	logx.Info().Str("model", backend.Name()).Msg("using Gemini NLU backend")
	return backend, nil
}

// buildTranscripts wires transcript storage: Redis when configured, the
// in-process store otherwise.
func buildTranscripts(cfg AppConfig) (model.TranscriptRepository, func(), error) {
	if !cfg.Redis.Enabled() {
		logx.Info().Msg("REDIS_URL not set; using in-memory transcripts")
		return repo.NewMemoryTranscript(), func() {}, nil
	}

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		return nil, nil, err
	}
	rdb, err := cfg.Redis.New()
	if err != nil {
		return nil, nil, err
	}
	return repo.NewRedisTranscript(rdb, ttl), func() { rdb.Close() }, nil
}
