package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSanitizeResource(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"google.com", "google_com"},
		{"https://example.com/path", "https___example_com_path"},
		{"plain", "plain"},
		{"a-b_c.d", "a_b_c_d"},
		{"", ""},
	}
	for _, c := range cases {
		if got := SanitizeResource(c.in); got != c.want {
			t.Fatalf("SanitizeResource(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestObservation_JSONFieldNames(t *testing.T) {
	o := Observation{
		Resource:  TargetID("example.com"),
		Outcome:   OutcomeUp,
		Timestamp: time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// wire format is {resource, status, timestamp}
	for _, k := range []string{"resource", "status", "timestamp"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing field %q in %s", k, b)
		}
	}
	if m["status"] != "Up" {
		t.Fatalf("status = %v, want Up", m["status"])
	}
}

func TestBucketState_String(t *testing.T) {
	if BucketFuture.String() != "future" || BucketNoData.String() != "nodata" {
		t.Fatalf("unexpected state strings: %s %s", BucketFuture, BucketNoData)
	}
}
