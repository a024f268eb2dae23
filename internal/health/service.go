// Package health aggregates component health checks for the /health
// endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Records int
	Checks  map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog  CatalogCounter
	sessions SessionPinger
	llm      LLMChecker
}

// New creates a Service. llm can be nil.
func New(catalog CatalogCounter, sessions SessionPinger, llm LLMChecker) *Service {
	return &Service{catalog: catalog, sessions: sessions, llm: llm}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.catalog.Len() > 0 {
		checks["catalog"] = CheckOK
	} else {
		checks["catalog"] = CheckError
	}

	if err := s.sessions.Ping(ctx); err != nil {
		checks["sessions"] = CheckError
	} else {
		checks["sessions"] = CheckOK
	}

	if s.llm != nil {
		if err := s.llm.HealthCheck(ctx); err != nil {
			checks["llm"] = CheckError
		} else {
			checks["llm"] = CheckOK
		}
	}

	failed := 0
	for _, c := range checks {
		if c == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Records: s.catalog.Len(), Checks: checks}
}
