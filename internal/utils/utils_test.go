package utils

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestParseDurationEnv(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"5m", 5 * time.Minute},
		{"10", 10 * time.Second},
		{` "30s" `, 30 * time.Second},
		{"'60'", time.Minute},
	}
	for _, tc := range cases {
		got, err := ParseDurationEnv(tc.in)
		if err != nil {
			t.Errorf("ParseDurationEnv(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDurationEnv(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "   ", "fast"} {
		if _, err := ParseDurationEnv(in); err == nil {
			t.Errorf("ParseDurationEnv(%q): want error", in)
		}
	}
}

func TestParseRedisURL(t *testing.T) {
	addr, password, db, err := ParseRedisURL("redis://:hunter2@localhost:6380/3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if addr != "localhost:6380" || password != "hunter2" || db != 3 {
		t.Errorf("got %q %q %d", addr, password, db)
	}

	if _, _, _, err := ParseRedisURL("http://localhost:6379"); err == nil {
		t.Error("want error for non-redis scheme")
	}
	if _, _, _, err := ParseRedisURL("redis://"); err == nil {
		t.Error("want error for missing host")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: "23505", ConstraintName: "time_logs_one_open_per_user"}

	if !IsUniqueViolation(violation, "") {
		t.Error("any-constraint match failed")
	}
	if !IsUniqueViolation(violation, "time_logs_one_open_per_user") {
		t.Error("named-constraint match failed")
	}
	if IsUniqueViolation(violation, "users_email_key") {
		t.Error("matched the wrong constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("matched a foreign key violation")
	}
	if IsUniqueViolation(errors.New("plain"), "") {
		t.Error("matched a non-pg error")
	}

	wrapped := fmt.Errorf("insert: %w", violation)
	if !IsUniqueViolation(wrapped, "time_logs_one_open_per_user") {
		t.Error("wrapped error not matched")
	}
}
