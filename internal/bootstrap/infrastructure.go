package bootstrap

import (
	"context"
	"path/filepath"
	"time"

	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/mailer"
	"incorporate-run-be/internal/repository/memory"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/embedding"
	"incorporate-run-be/pkg/events"
	"incorporate-run-be/pkg/llm"
	"incorporate-run-be/pkg/llm/factory"
	pktNats "incorporate-run-be/pkg/nats"
	"incorporate-run-be/pkg/speech"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infrastructure holds the external collaborators. NewInfrastructure builds
// them from config; tests assemble one by hand with fakes.
type Infrastructure struct {
	RepositoryFactory unitofwork.RepositoryFactory
	LLM               llm.LLMProvider
	Embedding         embedding.EmbeddingProvider
	Mailer            mailer.IEmailService
	Speech            speech.Provider
	Events            events.Publisher
	Subscriber        events.Subscriber
	// nil keeps the websocket hub single-instance
	Redis *redis.Client

	NotificationLogger logger.ILogger
}

// NewInfrastructure never fails on optional services: a missing key or an
// unreachable broker degrades to the disabled or in-process variant.
func NewInfrastructure(db *gorm.DB, cfg *config.Config, log *logger.ZapLogger) (*Infrastructure, error) {
	infra := &Infrastructure{
		RepositoryFactory:  newRepositoryFactory(db, log),
		Embedding:          embedding.NewProvider(cfg.Ai.EmbeddingProvider, cfg.Keys.GoogleGemini, cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel),
		Mailer:             newMailer(cfg, log),
		Speech:             newSpeech(cfg),
		NotificationLogger: logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "notification.log")),
	}

	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:  cfg.Ai.LLMProvider,
		Model:     cfg.Ai.LLMModel,
		BaseURL:   cfg.Ai.OllamaBaseURL,
		GeminiKey: cfg.Keys.GoogleGemini,
		Notify: func(err error, wait time.Duration) {
			log.Warn("LLM", "Rate limited, retrying", map[string]interface{}{
				"error": err.Error(),
				"wait":  wait.String(),
			})
		},
	})
	if err != nil {
		return nil, err
	}
	infra.LLM = llmProvider
	log.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	infra.Events, infra.Subscriber = newEventBus(cfg, log)
	infra.Redis = newRedis(cfg, log)

	return infra, nil
}

func newRepositoryFactory(db *gorm.DB, log logger.ILogger) unitofwork.RepositoryFactory {
	if db == nil {
		log.Warn("BOOTSTRAP", "No database configured, using in-memory store", nil)
		return memory.NewRepositoryFactory(memory.NewStore())
	}
	return unitofwork.NewRepositoryFactory(db)
}

func newMailer(cfg *config.Config, log logger.ILogger) mailer.IEmailService {
	if cfg.SMTP.Host == "" {
		log.Warn("BOOTSTRAP", "SMTP not configured, emails will stay pending", nil)
		return mailer.NewDisabledEmailService()
	}
	return mailer.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, cfg.SMTP.SenderName, log)
}

func newSpeech(cfg *config.Config) speech.Provider {
	if cfg.Keys.OpenAI == "" {
		return speech.NewUnavailable()
	}
	return speech.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.TTSModel, cfg.Ai.TTSVoice)
}

func newEventBus(cfg *config.Config, log *logger.ZapLogger) (events.Publisher, events.Subscriber) {
	if cfg.App.NatsURL == "" {
		bus := events.NewChannelBus(log.Zap())
		return bus, bus
	}

	pub, err := pktNats.NewPublisher(cfg.App.NatsURL, log.Zap())
	if err != nil {
		log.Warn("BOOTSTRAP", "NATS publisher unavailable, using in-process bus", map[string]interface{}{"error": err.Error()})
		bus := events.NewChannelBus(log.Zap())
		return bus, bus
	}
	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL, log.Zap())
	if err != nil {
		pub.Close()
		log.Warn("BOOTSTRAP", "NATS subscriber unavailable, using in-process bus", map[string]interface{}{"error": err.Error()})
		bus := events.NewChannelBus(log.Zap())
		return bus, bus
	}
	return pub, sub
}

func newRedis(cfg *config.Config, log logger.ILogger) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unreachable, websocket fan-out stays local", map[string]interface{}{"error": err.Error()})
		rdb.Close()
		return nil
	}
	return rdb
}

func (i *Infrastructure) Close() {
	i.Events.Close()
	if i.Subscriber != nil {
		i.Subscriber.Close()
	}
	if i.Redis != nil {
		i.Redis.Close()
	}
}
