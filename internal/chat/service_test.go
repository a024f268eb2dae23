package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/domain"
)

// Hand-rolled fakes for the orchestrator's contracts.

type fakeCatalog struct {
	schema  domain.SchemaContext
	lookups map[string][]domain.Record // keyed by entry name filter

	gotFilters map[string]string
}

func (f *fakeCatalog) LookupAll(filters map[string]string) []domain.Record {
	f.gotFilters = filters
	return f.lookups[filters[domain.FieldEntryName]]
}

func (f *fakeCatalog) Schema() domain.SchemaContext { return f.schema }

type fakeRetriever struct {
	fastTrack []domain.Record
	remaining string
	planned   []domain.Record
	crisis    []domain.Record

	gotQuery    string
	gotPlan     domain.SearchPlan
	planCalled  bool
	fastCalled  bool
	crisisCalls int
}

func (f *fakeRetriever) FastTrack(query string) ([]domain.Record, string) {
	f.fastCalled = true
	f.gotQuery = query
	return f.fastTrack, f.remaining
}

func (f *fakeRetriever) ExecutePlan(plan domain.SearchPlan) []domain.Record {
	f.planCalled = true
	f.gotPlan = plan
	return f.planned
}

func (f *fakeRetriever) Crisis() []domain.Record {
	f.crisisCalls++
	return f.crisis
}

type fakePlanner struct {
	plan domain.SearchPlan

	called      bool
	gotQuestion string
	gotSchema   string
	gotHistory  string
}

func (f *fakePlanner) Plan(_ context.Context, question, schemaContext, history string) domain.SearchPlan {
	f.called = true
	f.gotQuestion = question
	f.gotSchema = schemaContext
	f.gotHistory = history
	return f.plan
}

type fakeSynth struct {
	text string
	err  error

	gotKind    domain.TemplateKind
	gotContext string
	gotHistory string
}

func (f *fakeSynth) Write(
	_ context.Context, kind domain.TemplateKind, _, contextStr, history string,
) (string, error) {
	f.gotKind = kind
	f.gotContext = contextStr
	f.gotHistory = history
	return f.text, f.err
}

func defaultOpts() Options {
	return Options{
		FallbackEntryName: "책 안에 어떤 내용이 담겨 있나요?",
		FallbackItemKind:  "sections",
		NavigationMarkers: []string{"목차", "안내"},
	}
}

func userSession(content string) domain.Session {
	return domain.Session{
		ID:    "s-1",
		Turns: []domain.Turn{{Role: domain.RoleUser, Content: content}},
	}
}

func TestRespond_FullPipeline(t *testing.T) {
	crisisRec := domain.Record{EntryName: "긴급복지 생계지원", Overview: "위기 지원"}
	plannedRec := domain.Record{EntryName: "국민임대주택", Overview: "주거 지원"}

	cat := &fakeCatalog{schema: domain.SchemaContext{ContextString: "# 카테고리"}}
	ret := &fakeRetriever{
		remaining: "주거 지원이 필요해요",
		planned:   []domain.Record{plannedRec},
		crisis:    []domain.Record{crisisRec},
	}
	planner := &fakePlanner{plan: domain.SearchPlan{Intent: "주거 상담"}}
	synth := &fakeSynth{text: "상담 답변"}

	svc := New(cat, ret, planner, synth, defaultOpts(), zap.NewNop())

	ans, err := svc.Respond(context.Background(), userSession("주거 지원이 필요해요"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if ans.Text != "상담 답변" {
		t.Errorf("answer: got %q", ans.Text)
	}
	if ans.Mode != domain.ModeNormal {
		t.Errorf("mode: got %q", ans.Mode)
	}
	if !planner.called {
		t.Error("planner must run when fast track leaves text")
	}
	if planner.gotQuestion != "주거 지원이 필요해요" || planner.gotSchema != "# 카테고리" {
		t.Errorf("planner inputs: %q / %q", planner.gotQuestion, planner.gotSchema)
	}
	if !ret.planCalled || ret.crisisCalls != 1 {
		t.Error("plan execution and crisis augmentation must both run")
	}
	if synth.gotKind != domain.KindFinal {
		t.Errorf("template kind: got %q", synth.gotKind)
	}
	for _, want := range []string{"국민임대주택", "긴급복지 생계지원"} {
		if !strings.Contains(synth.gotContext, want) {
			t.Errorf("context missing %q:\n%s", want, synth.gotContext)
		}
	}
}

func TestRespond_FastTrackConsumesWholeQuery(t *testing.T) {
	rec := domain.Record{EntryName: "아이돌봄 서비스", Overview: "돌봄"}

	cat := &fakeCatalog{}
	ret := &fakeRetriever{fastTrack: []domain.Record{rec}, remaining: ""}
	planner := &fakePlanner{}
	synth := &fakeSynth{text: "답변"}

	svc := New(cat, ret, planner, synth, defaultOpts(), zap.NewNop())

	if _, err := svc.Respond(context.Background(), userSession("아이돌봄 서비스")); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if planner.called {
		t.Error("planner must not run when the fast track consumed the query")
	}
	if ret.crisisCalls != 1 {
		t.Error("crisis augmentation runs even without a plan")
	}
}

func TestRespond_EmptyMessage(t *testing.T) {
	svc := New(&fakeCatalog{}, &fakeRetriever{}, &fakePlanner{}, &fakeSynth{}, defaultOpts(), zap.NewNop())

	for _, sess := range []domain.Session{
		{ID: "s"},
		userSession("   "),
		{ID: "s", Turns: []domain.Turn{{Role: domain.RoleAssistant, Content: "안내"}}},
	} {
		if _, err := svc.Respond(context.Background(), sess); !errors.Is(err, domain.ErrEmptyMessage) {
			t.Errorf("got %v, want ErrEmptyMessage", err)
		}
	}
}

func TestRespond_FallbackOverview(t *testing.T) {
	overview := domain.Record{
		EntryName: "책 안에 어떤 내용이 담겨 있나요?",
		ItemKind:  "sections",
		Body:      `{"categories": "[{\"category\": \"생계 지원\", \"description\": \"기초 생활 보장\"}]"}`,
	}
	cat := &fakeCatalog{
		lookups: map[string][]domain.Record{
			"책 안에 어떤 내용이 담겨 있나요?": {overview},
		},
	}
	ret := &fakeRetriever{remaining: "아무 것도 못 찾는 질문"}
	planner := &fakePlanner{}
	synth := &fakeSynth{text: "전체 개요 답변"}

	svc := New(cat, ret, planner, synth, defaultOpts(), zap.NewNop())

	ans, err := svc.Respond(context.Background(), userSession("아무 것도 못 찾는 질문"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if ans.Text != "전체 개요 답변" {
		t.Errorf("answer: got %q", ans.Text)
	}
	if synth.gotKind != domain.KindOverview {
		t.Errorf("template kind: got %q, want overview", synth.gotKind)
	}
	if !strings.Contains(synth.gotContext, "- **생계 지원**: 기초 생활 보장") {
		t.Errorf("category list missing:\n%s", synth.gotContext)
	}
	if cat.gotFilters[domain.FieldItemKind] != "sections" {
		t.Errorf("fallback lookup filters: %v", cat.gotFilters)
	}
}

func TestRespond_FallbackApology(t *testing.T) {
	cat := &fakeCatalog{} // sentinel entry missing
	ret := &fakeRetriever{remaining: "질문"}
	synth := &fakeSynth{text: "unused"}

	svc := New(cat, ret, &fakePlanner{}, synth, defaultOpts(), zap.NewNop())

	ans, err := svc.Respond(context.Background(), userSession("질문"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if ans.Text != apologyNoResults {
		t.Errorf("got %q, want the fixed apology", ans.Text)
	}
	if ans.Mode != domain.ModeNormal {
		t.Errorf("mode: got %q", ans.Mode)
	}
}

func TestRespond_SynthesisErrorPropagates(t *testing.T) {
	rec := domain.Record{EntryName: "아이돌봄 서비스", Overview: "돌봄"}
	ret := &fakeRetriever{fastTrack: []domain.Record{rec}}
	synth := &fakeSynth{err: errors.New("provider down")}

	svc := New(&fakeCatalog{}, ret, &fakePlanner{}, synth, defaultOpts(), zap.NewNop())

	if _, err := svc.Respond(context.Background(), userSession("아이돌봄 서비스")); err == nil {
		t.Error("expected the synthesis error to propagate")
	}
}

func TestFormatHistory_NoHistory(t *testing.T) {
	got := FormatHistory([]domain.Turn{{Role: domain.RoleUser, Content: "첫 질문"}})
	if got != noHistory {
		t.Errorf("got %q", got)
	}
}

func TestFormatHistory_LastFiveBeforeCurrent(t *testing.T) {
	turns := []domain.Turn{
		{Role: domain.RoleUser, Content: "오래된 질문"},
		{Role: domain.RoleAssistant, Content: "오래된 답변"},
		{Role: domain.RoleUser, Content: "질문 1"},
		{Role: domain.RoleAssistant, Content: "답변 1"},
		{Role: domain.RoleUser, Content: "질문 2"},
		{Role: domain.RoleAssistant, Content: "답변 2"},
		{Role: domain.RoleUser, Content: "질문 3"},
		{Role: domain.RoleUser, Content: "현재 질문"},
	}

	got := FormatHistory(turns)

	if strings.Contains(got, "오래된") {
		t.Errorf("older turns must be cut:\n%s", got)
	}
	if strings.Contains(got, "현재 질문") {
		t.Errorf("current question must be excluded:\n%s", got)
	}
	want := "사용자: 질문 1\n지니(AI): 답변 1\n사용자: 질문 2\n지니(AI): 답변 2\n사용자: 질문 3"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestInternalApology(t *testing.T) {
	ans := InternalApology()
	if ans.Text != apologyInternal || ans.Mode != domain.ModeNormal {
		t.Errorf("got %+v", ans)
	}
}
