package nlu

import (
	"testing"
	"time"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

func TestFallbackKind(t *testing.T) {
	tests := []struct {
		message string
		want    model.IntentKind
	}{
		{"오늘 총합 알려줘", model.IntentSum},
		{"삭제한 것까지 합계 보여줘", model.IntentSum}, // sum keyword outranks delete
		{"그 커피 삭제해줘", model.IntentDelete},
		{"방금 거 지워", model.IntentDelete},
		{"금액 수정해줘", model.IntentUpdate},
		{"7500원으로 바꿔줘", model.IntentUpdate},
		{"오늘 내역 보여줘", model.IntentSelect},
		{"어제 뭐 샀지?", model.IntentSelect},
		{"what did i buy today", model.IntentSelect},
		{"커피 4500원", model.IntentInsert},
		{"lunch 12000", model.IntentInsert},
		{"안녕하세요", model.IntentUnknown},
	}
	for _, tt := range tests {
		if got := Fallback(tt.message); got.Kind != tt.want {
			t.Errorf("Fallback(%q).Kind = %v, want %v", tt.message, got.Kind, tt.want)
		}
	}
}

func TestFallbackAmountAndDate(t *testing.T) {
	got := Fallback("오늘 커피 6,500원 썼어")
	if got.Kind != model.IntentInsert {
		t.Fatalf("Kind = %v, want insert", got.Kind)
	}
	if !got.HasAmount() || got.AmountValue() != 6500 {
		t.Errorf("Amount = %v, want 6500", got.Amount)
	}
	if want := time.Now().Format("2006-01-02"); got.Date != want {
		t.Errorf("Date = %q, want %q", got.Date, want)
	}
}

func TestFallbackTargetLast(t *testing.T) {
	for _, msg := range []string{"방금 거 삭제해줘", "최근 내역 지워", "delete the last one"} {
		if got := Fallback(msg); got.Target != model.TargetLast {
			t.Errorf("Fallback(%q).Target = %q, want %q", msg, got.Target, model.TargetLast)
		}
	}
	if got := Fallback("커피 삭제해줘"); got.Target != "" {
		t.Errorf("Target = %q, want empty", got.Target)
	}
}

// The fallback has no way to verify an item, so it must never claim one.
func TestFallbackNeverSetsItem(t *testing.T) {
	for _, msg := range []string{"오늘 스타벅스 6500원", "커피 삭제해줘", "어제 뭐 샀지?"} {
		if got := Fallback(msg); got.Item != "" {
			t.Errorf("Fallback(%q).Item = %q, want empty", msg, got.Item)
		}
	}
}
