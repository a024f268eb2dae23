package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/domain"
	"github.com/bokji-cloud/genie/internal/metrics"
)

// Synthesizer renders a prompt for the chosen template and returns the
// model's prose as-is (it may contain lightweight markup).
type Synthesizer struct {
	completer Completer
	logger    *zap.Logger
}

// NewSynthesizer creates an answer synthesizer.
func NewSynthesizer(completer Completer, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{completer: completer, logger: logger}
}

// Write generates the answer text for one turn.
func (s *Synthesizer) Write(
	ctx context.Context, kind domain.TemplateKind, question, contextStr, history string,
) (string, error) {
	var tpl string
	switch kind {
	case domain.KindFinal:
		tpl = finalPrompt
	case domain.KindOverview:
		tpl = overviewPrompt
	default:
		return "", fmt.Errorf("unknown template kind %q", kind)
	}

	prompt := fillTemplate(tpl, map[string]string{
		"question":     question,
		"context":      contextStr,
		"chat_history": history,
	})

	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt, false)
	metrics.ObserveLLMRequest(string(kind), time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("synthesize %s answer: %w", kind, err)
	}
	return text, nil
}
