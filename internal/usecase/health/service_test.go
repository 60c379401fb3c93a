package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockProviderChecker struct {
	err error
}

func (m *mockProviderChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockProviderChecker{}, &mockProviderChecker{}, false)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, component := range []string{"database", "embedding", "generation", "classifier"} {
		if r.Checks[component] != CheckOK {
			t.Errorf("expected %s %q, got %q", component, CheckOK, r.Checks[component])
		}
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("connection refused")}, &mockProviderChecker{}, nil, false)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}

func TestCheck_DegradedClassifier(t *testing.T) {
	svc := New(nil, nil, nil, true)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["classifier"] != CheckDegraded {
		t.Errorf("expected classifier %q, got %q", CheckDegraded, r.Checks["classifier"])
	}
}

func TestCheck_NilDependenciesSkipped(t *testing.T) {
	svc := New(nil, nil, nil, false)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["database"]; ok {
		t.Error("nil database should not be checked")
	}
	if _, ok := r.Checks["embedding"]; ok {
		t.Error("nil embedder should not be checked")
	}
}

func TestCheck_GeneratorDown(t *testing.T) {
	svc := New(nil, &mockProviderChecker{}, &mockProviderChecker{err: errors.New("401")}, false)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["generation"] != CheckError {
		t.Errorf("expected generation %q, got %q", CheckError, r.Checks["generation"])
	}
}
