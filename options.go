package genie

import (
	"time"

	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/config"
	"github.com/bokji-cloud/genie/internal/session"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float32

	redisAddrs    []string
	redisPassword string
	redisDB       int
	sessionTTL    time.Duration

	crisisCategory    string
	fallbackEntryName string
	fallbackItemKind  string
	navigationMarkers []string
	searchLimit       int

	logger *zap.Logger
}

// defaultClientConfig mirrors the server's config defaults so embedded and
// served deployments behave identically.
func defaultClientConfig() *clientConfig {
	var base config.Config
	base.ApplyDefaults()

	return &clientConfig{
		model:             base.LLM.Model,
		sessionTTL:        session.DefaultTTL,
		crisisCategory:    base.Retrieval.CrisisCategory,
		fallbackEntryName: base.Retrieval.FallbackEntryName,
		fallbackItemKind:  base.Retrieval.FallbackItemKind,
		navigationMarkers: base.Retrieval.NavigationMarkers,
		searchLimit:       base.Retrieval.SearchLimit,
		logger:            zap.NewNop(),
	}
}

// WithLLM sets the chat-model endpoint. baseURL may be empty for the
// default OpenAI endpoint; model may be empty for the default model.
func WithLLM(apiKey, baseURL, model string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the chat-model sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *clientConfig) {
		c.temperature = t
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRedisSessions stores sessions in Redis instead of process memory.
func WithRedisSessions(addrs []string, password string, db int) Option {
	return func(c *clientConfig) {
		c.redisAddrs = addrs
		c.redisPassword = password
		c.redisDB = db
	}
}

// WithSessionTTL sets how long idle sessions are kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		if ttl > 0 {
			c.sessionTTL = ttl
		}
	}
}

// WithCrisisCategory overrides the major category appended to every
// retrieval result set.
func WithCrisisCategory(category string) Option {
	return func(c *clientConfig) {
		c.crisisCategory = category
	}
}

// WithFallback overrides the sentinel entry used when retrieval comes back
// empty.
func WithFallback(entryName, itemKind string) Option {
	return func(c *clientConfig) {
		c.fallbackEntryName = entryName
		c.fallbackItemKind = itemKind
	}
}

// WithNavigationMarkers overrides the markers that exclude structural
// entries from assembled context.
func WithNavigationMarkers(markers []string) Option {
	return func(c *clientConfig) {
		c.navigationMarkers = markers
	}
}

// WithSearchLimit sets the default full-text search result cap.
func WithSearchLimit(limit int) Option {
	return func(c *clientConfig) {
		if limit > 0 {
			c.searchLimit = limit
		}
	}
}
