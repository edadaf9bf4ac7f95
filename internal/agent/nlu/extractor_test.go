package nlu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

type stubBackend struct {
	out string
	err error
}

func (s *stubBackend) Chat(_ context.Context, _, _ string) (string, error) {
	return s.out, s.err
}

func newStubExtractor(out string, err error) *Extractor {
	return NewExtractor(&stubBackend{out: out, err: err}, time.Second)
}

func intentEq(a, b model.Intent) bool {
	if a.Kind != b.Kind || a.Date != b.Date || a.Item != b.Item || a.Target != b.Target {
		return false
	}
	if (a.Amount == nil) != (b.Amount == nil) {
		return false
	}
	return a.Amount == nil || *a.Amount == *b.Amount
}

func TestExtractBackendErrorFallsBack(t *testing.T) {
	e := newStubExtractor("", errors.New("backend down"))
	msg := "오늘 커피 6500원"
	got := e.Extract(context.Background(), msg, "")
	if want := Fallback(msg); !intentEq(got, want) {
		t.Errorf("got %+v, want fallback %+v", got, want)
	}
}

func TestExtractFallbackCounted(t *testing.T) {
	before := testutil.ToFloat64(fallbacksTotal)

	e := newStubExtractor("", errors.New("backend down"))
	e.Extract(context.Background(), "커피 5000원", "")
	if got := testutil.ToFloat64(fallbacksTotal) - before; got != 1 {
		t.Errorf("fallbacks after backend error = %v, want 1", got)
	}

	e = newStubExtractor(`{"intent":"insert","item":"커피","amount":5000}`, nil)
	e.Extract(context.Background(), "커피 5000원", "")
	if got := testutil.ToFloat64(fallbacksTotal) - before; got != 1 {
		t.Errorf("usable output counted as fallback, total delta = %v", got)
	}
}

func TestExtractGarbageOutputFallsBack(t *testing.T) {
	e := newStubExtractor("no json here at all", nil)
	msg := "커피 5000원"
	got := e.Extract(context.Background(), msg, "")
	if want := Fallback(msg); !intentEq(got, want) {
		t.Errorf("got %+v, want fallback %+v", got, want)
	}
}

func TestExtractValidJSON(t *testing.T) {
	e := newStubExtractor(`{"intent":"insert","date":"어제","item":"커피","amount":"3천원","target":null}`, nil)
	got := e.Extract(context.Background(), "어제 커피 3천원 썼어", "")

	if got.Kind != model.IntentInsert {
		t.Errorf("Kind = %v, want insert", got.Kind)
	}
	if want := time.Now().AddDate(0, 0, -1).Format("2006-01-02"); got.Date != want {
		t.Errorf("Date = %q, want %q", got.Date, want)
	}
	if got.Item != "커피" {
		t.Errorf("Item = %q, want 커피", got.Item)
	}
	if !got.HasAmount() || got.AmountValue() != 3000 {
		t.Errorf("Amount = %v, want 3000", got.Amount)
	}
}

func TestExtractJSONEmbeddedInProse(t *testing.T) {
	e := newStubExtractor("Sure! Here you go: {\"intent\":\"sum\",\"date\":\"오늘\"} hope that helps.", nil)
	got := e.Extract(context.Background(), "오늘 총합 알려줘", "")
	if got.Kind != model.IntentSum {
		t.Errorf("Kind = %v, want sum", got.Kind)
	}
	if want := time.Now().Format("2006-01-02"); got.Date != want {
		t.Errorf("Date = %q, want %q", got.Date, want)
	}
}

func TestExtractNumericAmount(t *testing.T) {
	e := newStubExtractor(`{"intent":"insert","item":"커피","amount":6500}`, nil)
	got := e.Extract(context.Background(), "커피 6500원 썼어", "")
	if !got.HasAmount() || got.AmountValue() != 6500 {
		t.Errorf("Amount = %v, want 6500", got.Amount)
	}
}

// An item the backend invented, absent from the message, is discarded.
func TestExtractDiscardsHallucinatedItem(t *testing.T) {
	e := newStubExtractor(`{"intent":"insert","item":"피자","amount":6500}`, nil)
	got := e.Extract(context.Background(), "오늘 커피 6500원", "")
	if got.Item != "" {
		t.Errorf("Item = %q, want empty", got.Item)
	}
	if !got.HasAmount() || got.AmountValue() != 6500 {
		t.Errorf("Amount = %v, want 6500", got.Amount)
	}
}

// A backend that punts with "unknown" defers to the fallback verdict
// when the fallback can classify the message.
func TestExtractUnknownPrefersFallback(t *testing.T) {
	e := newStubExtractor(`{"intent":"unknown"}`, nil)
	got := e.Extract(context.Background(), "커피 5000원", "")
	if got.Kind != model.IntentInsert {
		t.Errorf("Kind = %v, want insert via fallback", got.Kind)
	}

	got = e.Extract(context.Background(), "안녕하세요", "")
	if got.Kind != model.IntentUnknown {
		t.Errorf("Kind = %v, want unknown", got.Kind)
	}
}

func TestExtractTargetLastExactOnly(t *testing.T) {
	e := newStubExtractor(`{"intent":"delete","target":"last"}`, nil)
	if got := e.Extract(context.Background(), "방금 거 삭제", ""); got.Target != model.TargetLast {
		t.Errorf("Target = %q, want %q", got.Target, model.TargetLast)
	}

	e = newStubExtractor(`{"intent":"delete","target":"previous"}`, nil)
	if got := e.Extract(context.Background(), "삭제해줘", ""); got.Target != "" {
		t.Errorf("Target = %q, want empty", got.Target)
	}
}

func TestBalancedObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{`prefix {"a":{"b":2}} suffix`, `{"a":{"b":2}}`, true},
		{`{"s":"has } brace"}`, `{"s":"has } brace"}`, true},
		{`{"unclosed":`, "", false},
		{`no braces`, "", false},
	}
	for _, tt := range tests {
		got, ok := balancedObject(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("balancedObject(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
