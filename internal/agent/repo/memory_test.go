package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

func TestMemoryTranscriptRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryTranscript()

	m.AddTurn(ctx, "s", model.Turn{Role: model.RoleUser, Content: "오늘 커피 4000원"})
	m.AddTurn(ctx, "s", model.Turn{Role: model.RoleAssistant, Content: "저장했어요"})

	turns, err := m.Recent(ctx, "s", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 2 || turns[0].Role != model.RoleUser || turns[1].Role != model.RoleAssistant {
		t.Fatalf("turns = %+v", turns)
	}
}

func TestMemoryTranscriptRecentWindow(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryTranscript()
	for i := 0; i < 10; i++ {
		m.AddTurn(ctx, "s", model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("turn-%d", i)})
	}

	turns, _ := m.Recent(ctx, "s", 3)
	if len(turns) != 3 || turns[0].Content != "turn-7" || turns[2].Content != "turn-9" {
		t.Errorf("window = %+v, want last three turns", turns)
	}

	if turns, _ := m.Recent(ctx, "s", 0); turns != nil {
		t.Errorf("Recent with n=0 = %+v, want nil", turns)
	}
}

func TestMemoryTranscriptTrim(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryTranscript()
	for i := 0; i < maxStoredTurns+5; i++ {
		m.AddTurn(ctx, "s", model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("turn-%d", i)})
	}

	turns, _ := m.Recent(ctx, "s", maxStoredTurns*2)
	if len(turns) != maxStoredTurns {
		t.Fatalf("stored %d turns, want cap %d", len(turns), maxStoredTurns)
	}
	if turns[0].Content != "turn-5" {
		t.Errorf("oldest retained = %q, want turn-5", turns[0].Content)
	}
}

func TestMemoryTranscriptClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryTranscript()

	m.AddTurn(ctx, "a", model.Turn{Role: model.RoleUser, Content: "x"})
	m.AddTurn(ctx, "b", model.Turn{Role: model.RoleUser, Content: "y"})
	m.Clear(ctx, "a")

	if turns, _ := m.Recent(ctx, "a", 10); len(turns) != 0 {
		t.Errorf("cleared session still has turns: %+v", turns)
	}
	if turns, _ := m.Recent(ctx, "b", 10); len(turns) != 1 {
		t.Errorf("other session affected by clear: %+v", turns)
	}
}
