package health

import (
	"context"
	"errors"
	"testing"
)

type fakeCatalog struct{ n int }

func (f fakeCatalog) Len() int { return f.n }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeLLM struct{ err error }

func (f fakeLLM) HealthCheck(context.Context) error { return f.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(fakeCatalog{n: 100}, fakePinger{}, fakeLLM{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status: got %s", report.Status)
	}
	if report.Records != 100 {
		t.Errorf("records: got %d", report.Records)
	}
	for name, c := range report.Checks {
		if c != CheckOK {
			t.Errorf("check %s: got %s", name, c)
		}
	}
}

func TestCheck_DegradedOnPartialFailure(t *testing.T) {
	svc := New(fakeCatalog{n: 100}, fakePinger{err: errors.New("down")}, fakeLLM{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status: got %s, want degraded", report.Status)
	}
	if report.Checks["sessions"] != CheckError {
		t.Errorf("sessions check: got %s", report.Checks["sessions"])
	}
}

func TestCheck_UnhealthyOnTotalFailure(t *testing.T) {
	svc := New(fakeCatalog{}, fakePinger{err: errors.New("down")}, fakeLLM{err: errors.New("down")})

	report := svc.Check(context.Background())
	if report.Status != Unhealthy {
		t.Errorf("status: got %s, want error", report.Status)
	}
}

func TestCheck_NilLLMSkipped(t *testing.T) {
	svc := New(fakeCatalog{n: 1}, fakePinger{}, nil)

	report := svc.Check(context.Background())
	if _, ok := report.Checks["llm"]; ok {
		t.Error("llm check must be skipped when unconfigured")
	}
	if report.Status != Healthy {
		t.Errorf("status: got %s", report.Status)
	}
}
