package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/domain"
	"github.com/bokji-cloud/genie/internal/metrics"
)

// Completer is the chat-completion contract the adapters consume.
type Completer interface {
	Complete(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// Planner turns the remaining query text into a validated search plan.
type Planner struct {
	completer Completer
	logger    *zap.Logger
}

// NewPlanner creates a search-plan adapter.
func NewPlanner(completer Completer, logger *zap.Logger) *Planner {
	return &Planner{completer: completer, logger: logger}
}

// wire types mirror the untyped JSON shape the model is asked to emit.

type wirePlan struct {
	Intent     string     `json:"intent"`
	SearchPlan []wireStep `json:"search_plan"`
}

type wireStep struct {
	Priority      int        `json:"priority"`
	Reason        string     `json:"reason"`
	BaseCondition stringList `json:"base_condition"`
	Keywords      stringList `json:"keywords"`
	Filters       struct {
		MinorCategories stringList `json:"중분류"`
	} `json:"filters"`
}

// stringList accepts either a JSON string or an array of strings; the model
// emits both shapes for base_condition.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = stringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or string array: %w", err)
	}
	*l = stringList(many)
	return nil
}

// Plan obtains a search plan for the remaining question text. Any failure
// (invocation error, malformed or mis-shaped JSON) is recovered locally by
// returning the degenerate plan; errors never propagate.
func (p *Planner) Plan(ctx context.Context, question, schemaContext, history string) domain.SearchPlan {
	prompt := fillTemplate(planPrompt, map[string]string{
		"question":       question,
		"schema_context": schemaContext,
		"chat_history":   history,
	})

	start := time.Now()
	raw, err := p.completer.Complete(ctx, prompt, true)
	metrics.ObserveLLMRequest("plan", time.Since(start), err)
	if err != nil {
		p.logger.Warn("search plan generation failed", zap.Error(err))
		metrics.PlannerFailuresTotal.Inc()
		return domain.DegeneratePlan(question)
	}

	plan, err := parsePlan(raw)
	if err != nil {
		p.logger.Warn("search plan parse failed",
			zap.Error(err), zap.String("response", raw))
		metrics.PlannerFailuresTotal.Inc()
		return domain.DegeneratePlan(question)
	}

	p.logger.Debug("search plan generated",
		zap.String("intent", plan.Intent), zap.Int("steps", len(plan.Steps)))
	return plan
}

// parsePlan validates the model output into a SearchPlan. List order is
// preserved as the execution order; the priority field is carried but only
// used for logging.
func parsePlan(raw string) (domain.SearchPlan, error) {
	cleaned := stripFences(raw)

	var wire wirePlan
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return domain.SearchPlan{}, fmt.Errorf("unmarshal plan: %w", err)
	}

	plan := domain.SearchPlan{Intent: wire.Intent}
	for i, ws := range wire.SearchPlan {
		priority := ws.Priority
		if priority == 0 {
			priority = i + 1
		}
		plan.Steps = append(plan.Steps, domain.PlanStep{
			Priority:             priority,
			Reason:               ws.Reason,
			BaseCondition:        ws.BaseCondition,
			Keywords:             ws.Keywords,
			MinorCategoryFilters: ws.Filters.MinorCategories,
		})
	}
	return plan, nil
}

// stripFences removes a surrounding markdown code fence, which some models
// emit even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
