package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/repo"
	"github.com/Skotchmaster/employee_registry/internal/testutil"
	"github.com/Skotchmaster/employee_registry/internal/transport"
	"github.com/Skotchmaster/employee_registry/pkg/tokens"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event.(map[string]any)})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type testEnv struct {
	repo      *repo.GormRepo
	tokens    *tokens.Service
	events    *recordingPublisher
	notifier  *Notifier
	auth      *AuthService
	employees *EmployeeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: testutil.OpenDB(t)}
	tk, err := tokens.NewService([]byte(testutil.JWTSecret))
	require.NoError(t, err)
	ev := &recordingPublisher{}
	n := NewNotifier(ev)
	t.Cleanup(n.Close)

	return &testEnv{
		repo:      r,
		tokens:    tk,
		events:    ev,
		notifier:  n,
		auth:      &AuthService{Users: r, Tokens: tk, Events: n},
		employees: &EmployeeService{Repo: r, Events: n},
	}
}

// eventTypes waits for in-flight publishes and returns the event types seen.
func (env *testEnv) eventTypes() []string {
	env.notifier.Wait()
	return env.events.types()
}

func fieldNames(ve *domain.ValidationError) []string {
	out := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, f.Field)
	}
	return out
}

func janeRequest() transport.EmployeeRequest {
	return transport.EmployeeRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@x.com",
		Phone:        "555",
		EmployeeType: "Full-time",
		Department:   "Eng",
		Position:     "Dev",
		JoiningDate:  "2024-01-01",
		Salary:       90000,
	}
}

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
