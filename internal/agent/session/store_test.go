package session

import (
	"sync"
	"testing"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

func TestGetCreatesLazily(t *testing.T) {
	s := NewStore()
	state := s.Get("a")
	if !state.IsEmpty() {
		t.Fatalf("fresh session state not empty: %+v", state)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestEmptySessionIDMapsToDefault(t *testing.T) {
	s := NewStore()
	s.Update("", model.PendingState{
		Confirm: &model.PendingConfirmation{Token: "t", Prompt: "p"},
	})
	if got := s.Get(DefaultSessionID); got.Confirm == nil || got.Confirm.Token != "t" {
		t.Errorf("default session did not receive state written with empty id: %+v", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

// Get hands out a copy; mutating it must not leak into the store.
func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	state := s.Get("a")
	state.Confirm = &model.PendingConfirmation{Token: "t"}

	if got := s.Get("a"); got.Confirm != nil {
		t.Errorf("mutation of returned copy leaked into store: %+v", got)
	}
}

func TestUpdateReplacesState(t *testing.T) {
	s := NewStore()
	s.Update("a", model.PendingState{
		Selection: &model.PendingSelection{Action: "delete"},
	})
	if got := s.Get("a"); got.Selection == nil || got.Selection.Action != "delete" {
		t.Fatalf("got %+v, want delete selection", got)
	}

	s.Update("a", model.PendingState{})
	if got := s.Get("a"); !got.IsEmpty() {
		t.Errorf("state not cleared: %+v", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore()
	s.Update("a", model.PendingState{
		Confirm: &model.PendingConfirmation{Token: "a-token"},
	})
	if got := s.Get("b"); !got.IsEmpty() {
		t.Errorf("session b sees session a state: %+v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("shared", model.PendingState{
				Confirm: &model.PendingConfirmation{Token: "t"},
			})
			_ = s.Get("shared")
		}()
	}
	wg.Wait()

	if got := s.Get("shared"); got.Confirm == nil {
		t.Error("state lost under concurrent updates")
	}
}
