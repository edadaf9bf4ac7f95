package nlu

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"오늘", "2025-01-15", true},
		{"today", "2025-01-15", true},
		{"어제", "2025-01-14", true},
		{"Yesterday", "2025-01-14", true},
		{"그제", "2025-01-13", true},
		{"엊그제", "2025-01-13", true},
		{"2 days ago", "2025-01-13", true},
		{"3일 전", "2025-01-12", true},
		{"3일전", "2025-01-12", true},
		{"10 days ago", "2025-01-05", true},
		{"2025-01-05", "2025-01-05", true},
		{"1월 5일", "2025-01-05", true},
		{"12월 31일", "2025-12-31", true},
		{"7일", "2025-01-07", true},
		{"23년 3월 5일", "2023-03-05", true},
		{"2024년 2월 29일", "2024-02-29", true},
		{"2월 30일", "", false},
		{"13월 1일", "", false},
		{"", "", false},
		{"garbage", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeDateAt(tt.in, fixedNow)
		if ok != tt.ok || got != tt.want {
			t.Errorf("normalizeDateAt(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"6500", 6500, true},
		{"6,500원", 6500, true},
		{"3천원", 3000, true},
		{"3천", 3000, true},
		{"2만원", 20000, true},
		{"1.5만", 15000, true},
		{"약 5000원쯤", 5000, true},
		{"", 0, false},
		{"원", 0, false},
		{"없음", 0, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeAmount(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizeAmount(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestItemInMessage(t *testing.T) {
	tests := []struct {
		message string
		item    string
		want    bool
	}{
		{"오늘 스타벅스 6500원", "스타벅스", true},
		{"오늘 스타 벅스 6500원", "스타벅스", true},
		{"오늘 스타벅스 6500원", "스타 벅스", true},
		{"오늘 커피 6500원", "피자", false},
		{"", "커피", false},
		{"오늘 커피 6500원", "", false},
	}
	for _, tt := range tests {
		if got := ItemInMessage(tt.message, tt.item); got != tt.want {
			t.Errorf("ItemInMessage(%q, %q) = %v, want %v", tt.message, tt.item, got, tt.want)
		}
	}
}

func TestDateInMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-01-05 커피 4500원", "2025-01-05", true},
		{"23년 3월 5일 점심값", "2023-03-05", true},
		{"1월 5일에 산 거 보여줘", "2025-01-05", true},
		{"7일에 산 커피", "2025-01-07", true},
		{"5일전에 산 커피", "2025-01-10", true},
		{"3 days ago I bought coffee", "2025-01-12", true},
		{"오늘 커피 4500원", "2025-01-15", true},
		{"what did I buy yesterday", "2025-01-14", true},
		{"커피 4500원", "", false},
	}
	for _, tt := range tests {
		got, ok := dateInMessageAt(tt.in, fixedNow)
		if ok != tt.ok || got != tt.want {
			t.Errorf("dateInMessageAt(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// A trailing 전 turns a bare day-of-month into a relative date; the
// bare-day rule must not swallow it.
func TestBareDaySkipsRelative(t *testing.T) {
	got, ok := dateInMessageAt("5일 전 커피", fixedNow)
	if !ok || got != "2025-01-10" {
		t.Fatalf("got (%q, %v), want (2025-01-10, true)", got, ok)
	}
}
