// Package nlu turns free-text ledger messages into structured intents.
//
// The normalizers in this file are total functions: unparseable input is
// reported as "not present" (ok == false), never as an error, so callers
// can treat every malformed fragment uniformly.
package nlu

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reISODate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDaysAgoEn = regexp.MustCompile(`(?i)(\d+)\s*days?\s*ago`)
	reDaysAgoKo = regexp.MustCompile(`(\d+)\s*일\s*전`)
	reYMDKo     = regexp.MustCompile(`^(\d{2,4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일$`)
	reMonthDay  = regexp.MustCompile(`^(\d{1,2})\s*월\s*(\d{1,2})\s*일$`)
	reDayOnly   = regexp.MustCompile(`^(\d{1,2})\s*일$`)

	reAmountUnit = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(천|만)?\s*(원)?$`)
	reNonDigits  = regexp.MustCompile(`[^0-9]`)
	reSpace      = regexp.MustCompile(`\s+`)
)

const isoDate = "2006-01-02"

func todayISO() string {
	return time.Now().Format(isoDate)
}

// NormalizeDate converts a loosely formatted date fragment into an ISO
// date. It understands literal ISO dates, relative terms in Korean and
// English, and terse Korean numeral-unit forms ("3월 5일"). Two-digit
// years mean 2000+year. Invalid calendar dates yield ok == false.
func NormalizeDate(text string) (string, bool) {
	return normalizeDateAt(text, time.Now())
}

func normalizeDateAt(text string, now time.Time) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(text))
	if value == "" {
		return "", false
	}

	switch value {
	case "today", "오늘":
		return now.Format(isoDate), true
	case "yesterday", "어제":
		return now.AddDate(0, 0, -1).Format(isoDate), true
	case "day before yesterday", "2 days ago", "two days ago", "그제", "엊그제":
		return now.AddDate(0, 0, -2).Format(isoDate), true
	}

	if m := reDaysAgoEn.FindStringSubmatch(value); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.AddDate(0, 0, -n).Format(isoDate), true
		}
	}
	if m := reDaysAgoKo.FindStringSubmatch(value); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.AddDate(0, 0, -n).Format(isoDate), true
		}
	}

	if reISODate.MatchString(value) {
		y, _ := strconv.Atoi(value[0:4])
		mo, _ := strconv.Atoi(value[5:7])
		d, _ := strconv.Atoi(value[8:10])
		return calendarDate(y, mo, d)
	}

	if m := reMonthDay.FindStringSubmatch(value); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		return calendarDate(now.Year(), mo, d)
	}

	if m := reDayOnly.FindStringSubmatch(value); m != nil {
		d, _ := strconv.Atoi(m[1])
		return calendarDate(now.Year(), int(now.Month()), d)
	}

	if m := reYMDKo.FindStringSubmatch(value); m != nil {
		y, _ := strconv.Atoi(m[1])
		if y < 100 {
			y += 2000
		}
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return calendarDate(y, mo, d)
	}

	return "", false
}

// calendarDate validates the components against the real calendar. Go's
// time.Date normalises overflow (Feb 30 becomes Mar 2), so the round trip
// is checked explicitly.
func calendarDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(isoDate), true
}

// NormalizeAmount extracts a non-negative integer amount from text,
// scaling by the Korean unit words 천 (x1000) and 만 (x10000) when
// present; otherwise everything but digits is stripped.
func NormalizeAmount(text string) (int64, bool) {
	value := strings.ToLower(strings.TrimSpace(text))
	if value == "" {
		return 0, false
	}
	value = strings.ReplaceAll(value, ",", "")

	if m := reAmountUnit.FindStringSubmatch(value); m != nil {
		number, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			scale := 1.0
			switch m[2] {
			case "천":
				scale = 1000
			case "만":
				scale = 10000
			}
			return int64(number * scale), true
		}
	}

	cleaned := reNonDigits.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ItemInMessage is the hallucination guard predicate: the claimed item
// must literally occur in the message, comparing with all whitespace
// removed on both sides. The NLU backend occasionally invents plausible
// items; anything that fails this check is discarded upstream.
func ItemInMessage(message, item string) bool {
	msg := strings.TrimSpace(message)
	it := strings.TrimSpace(item)
	if msg == "" || it == "" {
		return false
	}
	if strings.Contains(msg, it) {
		return true
	}
	return strings.Contains(stripSpace(msg), stripSpace(it))
}

func stripSpace(s string) string {
	return reSpace.ReplaceAllString(s, "")
}

// FoldItem lowers and strips whitespace, the canonical form used when
// matching a requested item against stored entries.
func FoldItem(s string) string {
	return strings.ToLower(stripSpace(s))
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
	regexp.MustCompile(`\d{2,4}\s*년\s*\d{1,2}\s*월\s*\d{1,2}\s*일`),
	regexp.MustCompile(`\d{1,2}\s*월\s*\d{1,2}\s*일`),
	nil, // bare day-of-month; needs the not-followed-by-전 check below
	regexp.MustCompile(`\d+\s*일\s*전`),
	regexp.MustCompile(`(?i)\d+\s*days?\s*ago`),
}

var reBareDay = regexp.MustCompile(`\d{1,2}\s*일`)

// DateInMessage scans a whole message for a date expression. Patterns are
// tried in a fixed precedence order: absolute forms beat "N days ago",
// which beats the bare 오늘/today and 어제/yesterday keywords.
func DateInMessage(message string) (string, bool) {
	return dateInMessageAt(message, time.Now())
}

func dateInMessageAt(message string, now time.Time) (string, bool) {
	for _, pat := range datePatterns {
		var frag string
		if pat == nil {
			frag = findBareDay(message)
		} else {
			frag = pat.FindString(message)
		}
		if frag == "" {
			continue
		}
		if normalized, ok := normalizeDateAt(frag, now); ok {
			return normalized, true
		}
	}

	lower := strings.ToLower(message)
	if strings.Contains(message, "오늘") || strings.Contains(lower, "today") {
		return now.Format(isoDate), true
	}
	if strings.Contains(message, "어제") || strings.Contains(lower, "yesterday") {
		return now.AddDate(0, 0, -1).Format(isoDate), true
	}
	return "", false
}

// findBareDay matches "N일" not followed by 전, which would make it a
// relative "N days ago" expression handled at a lower precedence.
func findBareDay(message string) string {
	for _, loc := range reBareDay.FindAllStringIndex(message, -1) {
		rest := strings.TrimLeft(message[loc[1]:], " \t")
		if strings.HasPrefix(rest, "전") {
			continue
		}
		return message[loc[0]:loc[1]]
	}
	return ""
}
