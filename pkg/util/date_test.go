package util

import (
	"strconv"
	"testing"
	"time"
)

func TestTruncateDay(t *testing.T) {
	in := time.Date(2024, 10, 10, 21, 30, 5, 0, time.FixedZone("EST", -5*3600))
	got := TruncateDay(in)
	want := time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" NVDA, KO ,,TSLA ")
	if len(got) != 3 || got[0] != "NVDA" || got[1] != "KO" || got[2] != "TSLA" {
		t.Fatalf("unexpected split %v", got)
	}
	if SplitCSV("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
