package domain

// SearchPlan is the planner LLM's priority-ordered list of filter steps.
// Steps execute in list order; the Priority field is descriptive only and
// is never used for re-sorting.
type SearchPlan struct {
	Intent string
	Steps  []PlanStep
}

// PlanStep is one filter/keyword step of a search plan.
type PlanStep struct {
	Priority int
	Reason   string
	// BaseCondition describes the eligible audience (e.g. 임산부, 장애인);
	// matched as a whitespace-stripped substring of a record's target group.
	BaseCondition []string
	Keywords      []string
	// MinorCategoryFilters drives the category stage. A step with no
	// filters contributes nothing.
	MinorCategoryFilters []string
}

// DegenerateIntent marks a plan substituted after planner failure.
const DegenerateIntent = "분석 실패"

// DegeneratePlan is the minimal single-step plan used when plan generation
// fails. Its step has no category filters, so the filter engine skips it and
// the turn falls through to crisis augmentation and the fallback tier.
func DegeneratePlan(originalText string) SearchPlan {
	return SearchPlan{
		Intent: DegenerateIntent,
		Steps: []PlanStep{{
			Priority: 1,
			Reason:   "fallback",
			Keywords: []string{originalText},
		}},
	}
}
