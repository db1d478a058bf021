package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshalDateOnly(t *testing.T) {
	var body struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2026-03-14"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := body.Date.Or(time.Time{}); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDateUnmarshalRFC3339(t *testing.T) {
	var body struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2026-03-14T15:30:00Z"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	if got := body.Date.Or(time.Time{}); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDateMissingUsesFallback(t *testing.T) {
	var body struct {
		Date Date `json:"date"`
	}
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{`{}`, `{"date":null}`, `{"date":""}`, `{"date":"  "}`} {
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if got := body.Date.Or(fallback); !got.Equal(fallback) {
			t.Errorf("%s: got %v, want fallback", raw, got)
		}
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	var body struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"not-a-date"}`), &body); err == nil {
		t.Fatal("want error for unparseable date")
	}
	if err := json.Unmarshal([]byte(`{"date":42}`), &body); err == nil {
		t.Fatal("want error for non-string date")
	}
}
