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
	Status Status
	Checks map[string]CheckResult
	Games  int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogChecker
	store   StorePinger
}

// New creates a Service. store can be nil (file-backed preferences).
func New(catalog CatalogChecker, store StorePinger) *Service {
	return &Service{catalog: catalog, store: store}
}

// Check runs health checks against all components. Without a catalog nothing
// can be ranked, so a missing snapshot is unhealthy; a failing preference
// store only degrades the service.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy
	games := 0

	if c, err := s.catalog.Snapshot(); err != nil {
		checks["catalog"] = CheckError
		status = Unhealthy
	} else {
		checks["catalog"] = CheckOK
		games = c.Len()
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks["preferences"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["preferences"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks, Games: games}
}
