// Package chat orchestrates one conversation turn: fast-track entity
// lookups, the planned multi-stage search, crisis augmentation, fallback
// resolution, and context assembly for answer synthesis.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/domain"
	"github.com/bokji-cloud/genie/internal/metrics"
	"github.com/bokji-cloud/genie/internal/retrieval"
)

// Fixed user-facing strings of the consultant persona.
const (
	// apologyNoResults ends a turn where neither retrieval nor the
	// fallback sentinel produced records. Terminal, not an error.
	apologyNoResults = "죄송합니다, 문의하신 내용과 관련된 복지서비스를 찾지 못했습니다. 조금 더 자세히 질문해주시겠어요?"
	// apologyInternal is what the transport layer shows when the pipeline
	// fails; internal errors never reach the caller.
	apologyInternal = "죄송합니다, 답변을 생성하는 중 예상치 못한 오류가 발생했습니다."
	noHistory       = "이전 대화 기록이 없습니다."
)

// Greeting seeds every new session as the assistant's opening turn, so the
// first real question already carries conversation history.
const Greeting = "어떤 도움이 필요하신가요?\n" +
	"복지서비스가 필요한 분의 상황과 원하시는 지원 내용을 함께 알려주세요.\n" +
	"예시) 상황: 30대, 아이 둘을 키우는 한부모가정 / 지원 내용: 저렴한 주거 공간과 양육비 지원"

// historyTurns is the number of turns preceding the current question that
// are formatted into LLM context.
const historyTurns = 5

// Options holds the retrieval sentinels and exclusion markers.
type Options struct {
	// FallbackEntryName/FallbackItemKind identify the general
	// service-overview entry used when retrieval comes back empty.
	FallbackEntryName string
	FallbackItemKind  string
	// NavigationMarkers exclude structural entries (table of contents,
	// guides, criteria, contact directories) from assembled context.
	NavigationMarkers []string
}

// Service runs the chat pipeline for one turn at a time. It is stateless
// between turns; the caller supplies the whole session every time.
type Service struct {
	catalog Catalog
	engine  Retriever
	planner Planner
	synth   Synthesizer
	opts    Options
	logger  *zap.Logger
}

// New creates the chat orchestrator.
func New(
	catalog Catalog,
	engine Retriever,
	planner Planner,
	synth Synthesizer,
	opts Options,
	logger *zap.Logger,
) *Service {
	return &Service{
		catalog: catalog,
		engine:  engine,
		planner: planner,
		synth:   synth,
		opts:    opts,
		logger:  logger,
	}
}

// InternalApology is the fixed answer the transport layer substitutes for
// any pipeline failure.
func InternalApology() domain.Answer {
	return domain.Answer{Text: apologyInternal, Mode: domain.ModeNormal}
}

// Respond processes the session's trailing user turn end-to-end. A non-nil
// error is the turn's failure variant: the caller maps it to the fixed
// internal apology and must not surface it.
func (s *Service) Respond(ctx context.Context, session domain.Session) (domain.Answer, error) {
	userTurn, ok := session.LastUserTurn()
	if !ok {
		return domain.Answer{}, domain.ErrEmptyMessage
	}
	question := strings.TrimSpace(userTurn.Content)
	if question == "" {
		return domain.Answer{}, domain.ErrEmptyMessage
	}
	history := FormatHistory(session.Turns)

	fastTrack, remaining := s.engine.FastTrack(question)

	var planned []domain.Record
	if remaining != "" {
		plan := s.planner.Plan(ctx, remaining, s.catalog.Schema().ContextString, history)
		planned = s.engine.ExecutePlan(plan)
	}

	crisis := s.engine.Crisis()

	final := retrieval.Aggregate(fastTrack, planned, crisis)

	metrics.RetrievalRecordsTotal.WithLabelValues("fast_track").Add(float64(len(fastTrack)))
	metrics.RetrievalRecordsTotal.WithLabelValues("planned").Add(float64(len(planned)))
	metrics.RetrievalRecordsTotal.WithLabelValues("crisis").Add(float64(len(crisis)))
	s.logger.Debug("retrieval complete",
		zap.Int("fast_track", len(fastTrack)),
		zap.Int("planned", len(planned)),
		zap.Int("crisis", len(crisis)),
		zap.Int("final", len(final)))

	if len(final) == 0 {
		return s.respondFallback(ctx, question, history)
	}

	contextStr := AssembleContext(final, s.opts.NavigationMarkers)
	text, err := s.synth.Write(ctx, domain.KindFinal, question, contextStr, history)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("final synthesis: %w", err)
	}
	return domain.Answer{Text: text, Mode: domain.ModeNormal}, nil
}

// respondFallback handles the empty-retrieval path: one lookup for the
// service-overview sentinel entry; if even that is missing, the fixed
// apology ends the turn.
func (s *Service) respondFallback(ctx context.Context, question, history string) (domain.Answer, error) {
	docs := s.catalog.LookupAll(map[string]string{
		domain.FieldEntryName: s.opts.FallbackEntryName,
		domain.FieldItemKind:  s.opts.FallbackItemKind,
	})
	if len(docs) == 0 {
		metrics.FallbackTotal.WithLabelValues("apology").Inc()
		s.logger.Debug("fallback sentinel entry not found, replying with apology")
		return domain.Answer{Text: apologyNoResults, Mode: domain.ModeNormal}, nil
	}

	metrics.FallbackTotal.WithLabelValues("overview").Inc()
	contextStr := renderOverviewContext(docs)
	text, err := s.synth.Write(ctx, domain.KindOverview, question, contextStr, history)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("overview synthesis: %w", err)
	}
	return domain.Answer{Text: text, Mode: domain.ModeNormal}, nil
}

// renderOverviewContext extracts the category list embedded in the
// overview records' bodies. Bodies that do not parse fall back to raw text.
func renderOverviewContext(records []domain.Record) string {
	var parts []string
	for _, r := range records {
		categories, err := parseOverviewCategories(r.Body)
		if err != nil {
			parts = append(parts, r.Body)
			continue
		}
		for _, c := range categories {
			parts = append(parts, "- **"+c.Category+"**: "+c.Description)
		}
	}
	return strings.Join(parts, "\n")
}

type overviewCategory struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// parseOverviewCategories reads the "categories" key of a body object. The
// value is itself a JSON-encoded array in the source data, but a plain
// array is accepted too.
func parseOverviewCategories(body string) ([]overviewCategory, error) {
	var content map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &content); err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}
	raw, ok := content["categories"]
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = json.RawMessage(encoded)
	}

	var categories []overviewCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	return categories, nil
}

// FormatHistory renders up to historyTurns turns preceding the current
// question. A session holding only the current question has no history.
func FormatHistory(turns []domain.Turn) string {
	if len(turns) <= 1 {
		return noHistory
	}
	start := len(turns) - 1 - historyTurns
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, historyTurns)
	for _, t := range turns[start : len(turns)-1] {
		role := "지니(AI)"
		if t.Role == domain.RoleUser {
			role = "사용자"
		}
		lines = append(lines, role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
