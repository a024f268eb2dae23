// Package genie embeds the welfare consultant pipeline in-process: catalog
// loading, multi-stage retrieval, answer synthesis, and session handling
// without running the HTTP server.
package genie

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bokji-cloud/genie/internal/catalog"
	"github.com/bokji-cloud/genie/internal/chat"
	"github.com/bokji-cloud/genie/internal/domain"
	"github.com/bokji-cloud/genie/internal/keyword"
	"github.com/bokji-cloud/genie/internal/llm"
	"github.com/bokji-cloud/genie/internal/retrieval"
	"github.com/bokji-cloud/genie/internal/session"
)

const defaultReadinessTimeout = 10 * time.Second

// ErrEmptyMessage is returned by Chat when the message is blank.
var ErrEmptyMessage = errors.New("genie: empty message")

// Client is the genie SDK entry point.
type Client struct {
	cat         *catalog.Store
	kw          *keyword.Index
	store       session.Store
	chat        *chat.Service
	searchLimit int
}

// New loads the catalog at catalogPath and wires the full pipeline.
func New(catalogPath string, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	if cfg.apiKey == "" && cfg.baseURL == "" {
		return nil, errors.New("genie: LLM configuration required (use WithLLM)")
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("genie: load catalog: %w", err)
	}

	kw, err := keyword.NewIndex(cat.Records())
	if err != nil {
		return nil, fmt.Errorf("genie: build keyword index: %w", err)
	}

	store, err := createSessionStore(cfg)
	if err != nil {
		_ = kw.Close()
		return nil, err
	}

	client := llm.NewClient(&llm.Config{
		APIKey:      cfg.apiKey,
		BaseURL:     cfg.baseURL,
		Model:       cfg.model,
		Temperature: cfg.temperature,
		Logger:      cfg.logger,
	})
	planner := llm.NewPlanner(client, cfg.logger)
	synth := llm.NewSynthesizer(client, cfg.logger)

	engine := retrieval.NewEngine(cat, cfg.crisisCategory, cfg.logger)
	chatSvc := chat.New(cat, engine, planner, synth, chat.Options{
		FallbackEntryName: cfg.fallbackEntryName,
		FallbackItemKind:  cfg.fallbackItemKind,
		NavigationMarkers: cfg.navigationMarkers,
	}, cfg.logger)

	return &Client{
		cat:         cat,
		kw:          kw,
		store:       store,
		chat:        chatSvc,
		searchLimit: cfg.searchLimit,
	}, nil
}

func createSessionStore(cfg *clientConfig) (session.Store, error) {
	if len(cfg.redisAddrs) == 0 {
		return session.NewMemoryStore(cfg.sessionTTL), nil
	}

	store, err := session.NewRedisStore(session.RedisConfig{
		Addrs:    cfg.redisAddrs,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
		TTL:      cfg.sessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("genie: create session store: %w", err)
	}
	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("genie: session store not ready: %w", err)
	}
	return store, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.kw != nil {
		_ = c.kw.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// ChatResult is the outcome of one conversation turn.
type ChatResult struct {
	SessionID    string
	Answer       string
	DialogueMode string
}

// Chat runs one conversation turn. An empty sessionID starts a new session;
// the returned SessionID carries the conversation across calls.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return ChatResult{}, ErrEmptyMessage
	}

	sess, err := c.loadOrCreateSession(ctx, sessionID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("genie: load session: %w", err)
	}
	sess.Turns = append(sess.Turns, domain.Turn{Role: domain.RoleUser, Content: message})

	answer, err := c.chat.Respond(ctx, sess)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return ChatResult{}, ErrEmptyMessage
		}
		return ChatResult{}, fmt.Errorf("genie: chat turn: %w", err)
	}

	sess.Turns = append(sess.Turns, domain.Turn{Role: domain.RoleAssistant, Content: answer.Text})
	if err := c.store.Put(ctx, sess); err != nil {
		return ChatResult{}, fmt.Errorf("genie: persist session: %w", err)
	}

	return ChatResult{
		SessionID:    sess.ID,
		Answer:       answer.Text,
		DialogueMode: string(answer.Mode),
	}, nil
}

func (c *Client) loadOrCreateSession(ctx context.Context, id string) (domain.Session, error) {
	if id != "" {
		sess, err := c.store.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, err
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Session{
		ID:    id,
		Turns: []domain.Turn{{Role: domain.RoleAssistant, Content: chat.Greeting}},
	}, nil
}

// ResetSession discards a session's conversation history.
func (c *Client) ResetSession(ctx context.Context, sessionID string) error {
	if err := c.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("genie: reset session: %w", err)
	}
	return nil
}

// Schema describes the loaded catalog's category structure.
type Schema struct {
	Context    string
	EntryNames []string
}

// Schema returns the catalog's category schema.
func (c *Client) Schema() Schema {
	s := c.cat.Schema()
	return Schema{Context: s.ContextString, EntryNames: s.EntryNames}
}

// Records returns the number of loaded catalog records.
func (c *Client) Records() int {
	return c.cat.Len()
}

// SearchHit is one full-text search match.
type SearchHit struct {
	EntryName     string
	MajorCategory string
	MinorCategory string
	Overview      string
	Score         float64
}

// Search runs a full-text query over the catalog, optionally restricted to
// a minor category prefix. limit <= 0 uses the configured default.
func (c *Client) Search(query, category string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = c.searchLimit
	}
	results, err := c.kw.Search(query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("genie: search: %w", err)
	}

	hits := make([]SearchHit, len(results))
	for i, r := range results {
		hits[i] = SearchHit{
			EntryName:     r.Record.EntryName,
			MajorCategory: r.Record.MajorCategory,
			MinorCategory: r.Record.MinorCategory,
			Overview:      r.Record.Overview,
			Score:         r.Score,
		}
	}
	return hits, nil
}

// Ping checks session store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
