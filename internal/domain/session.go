package domain

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the full conversation state for one chat session. It is
// supplied wholesale to the orchestrator on every turn; the orchestrator
// never persists it.
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}

// LastUserTurn returns the trailing user turn, or false if the session is
// empty or does not end with a user turn.
func (s Session) LastUserTurn() (Turn, bool) {
	if len(s.Turns) == 0 {
		return Turn{}, false
	}
	last := s.Turns[len(s.Turns)-1]
	if last.Role != RoleUser {
		return Turn{}, false
	}
	return last, true
}

// TemplateKind selects the answer-synthesis prompt.
type TemplateKind string

const (
	// KindFinal produces the full consultant answer from retrieved records.
	KindFinal TemplateKind = "final"
	// KindOverview produces the category-overview fallback answer.
	KindOverview TemplateKind = "overview"
)

// DialogueMode is the dialogue control mode returned with every answer.
// Currently always ModeNormal; reserved for future multi-mode control.
type DialogueMode string

// ModeNormal is the only dialogue mode in use.
const ModeNormal DialogueMode = "NORMAL"

// Answer is the final product of one chat turn.
type Answer struct {
	Text string
	Mode DialogueMode
}
