package component

import (
	"context"
	"errors"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	if f.events != nil {
		*f.events = append(*f.events, "start:"+f.name)
	}
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	if f.events != nil {
		*f.events = append(*f.events, "stop:"+f.name)
	}
	return f.stopErr
}

func (f *fakeComponent) Health(context.Context) Health { return f.health }

type describedComponent struct {
	fakeComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Name: "Whispir API", Type: "client", Details: "api.whispir.com"}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "whispir"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&fakeComponent{name: "whispir"}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if r.Get("whispir") == nil {
		t.Error("expected registered component")
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unknown component")
	}
}

func TestRegistry_Ordering(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "fake-api", events: &events})
	_ = r.Register(&describedComponent{fakeComponent{name: "whispir", events: &events}})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"start:fake-api", "start:whispir", "stop:whispir", "stop:fake-api"}
	if len(events) != len(want) {
		t.Fatalf("got %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestRegistry_StartFailureStopsOnlyStarted(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "a", events: &events})
	_ = r.Register(&fakeComponent{name: "b", events: &events, startErr: errors.New("boom")})
	_ = r.Register(&fakeComponent{name: "c", events: &events})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start failure")
	}
	events = nil
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0] != "stop:a" {
		t.Errorf("expected only a to stop, got %v", events)
	}
}

func TestRegistry_StopErrorsCollected(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "a", stopErr: errors.New("close failed")})
	_ = r.Register(&fakeComponent{name: "b", stopErr: errors.New("close failed")})
	_ = r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected stop errors")
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Errorf("second StopAll should be a no-op, got %v", err)
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "whispir", health: Health{Name: "whispir", Status: StatusHealthy}})
	_ = r.Register(&fakeComponent{name: "fake-api", health: Health{Name: "fake-api", Status: StatusUnhealthy, Message: "not started"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy || results[1].Status != StatusUnhealthy {
		t.Errorf("unexpected health %+v", results)
	}
}
