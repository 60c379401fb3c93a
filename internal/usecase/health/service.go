package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckDegraded indicates the component runs on a fallback.
	CheckDegraded CheckResult = "degraded"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db                 DBPinger
	embedding          ProviderChecker
	generator          ProviderChecker
	classifierDegraded bool
}

// New creates a Service. Any dependency can be nil when the deployment runs
// without it; classifierDegraded is true when the mock predictor won the
// loader chain at startup.
func New(db DBPinger, embedding, generator ProviderChecker, classifierDegraded bool) *Service {
	return &Service{
		db:                 db,
		embedding:          embedding,
		generator:          generator,
		classifierDegraded: classifierDegraded,
	}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.generator != nil {
		if err := s.generator.HealthCheck(ctx); err != nil {
			checks["generation"] = CheckError
		} else {
			checks["generation"] = CheckOK
		}
	}

	if s.classifierDegraded {
		checks["classifier"] = CheckDegraded
	} else {
		checks["classifier"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
