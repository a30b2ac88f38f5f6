package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSprintRefTriState(t *testing.T) {
	tests := []struct {
		name string
		body string
		set  bool
		null bool
		id   string
	}{
		{"absent", `{}`, false, false, ""},
		{"explicit null", `{"sprint_id": null}`, true, true, ""},
		{"value", `{"sprint_id": "sprint-7"}`, true, false, "sprint-7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req UpdateTaskRequest
			if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.SprintID.Set() != tc.set {
				t.Errorf("Set() = %v, want %v", req.SprintID.Set(), tc.set)
			}
			if req.SprintID.Null() != tc.null {
				t.Errorf("Null() = %v, want %v", req.SprintID.Null(), tc.null)
			}
			if req.SprintID.ID() != tc.id {
				t.Errorf("ID() = %q, want %q", req.SprintID.ID(), tc.id)
			}
		})
	}
}

func TestDateTimeLayouts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *time.Time
		err  bool
	}{
		{"date only", `{"due_date": "2026-02-19"}`, tp(time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)), false},
		{"rfc3339", `{"due_date": "2026-02-19T10:30:00Z"}`, tp(time.Date(2026, 2, 19, 10, 30, 0, 0, time.UTC)), false},
		{"no timezone", `{"due_date": "2026-02-19T10:30:00"}`, tp(time.Date(2026, 2, 19, 10, 30, 0, 0, time.UTC)), false},
		{"absent", `{}`, nil, false},
		{"null", `{"due_date": null}`, nil, false},
		{"empty string", `{"due_date": ""}`, nil, false},
		{"garbage", `{"due_date": "next tuesday"}`, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req CreateTaskRequest
			err := json.Unmarshal([]byte(tc.body), &req)
			if tc.err {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := req.DueDate.Ptr()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("Ptr() = %v, want %v", got, tc.want)
			}
			if got != nil && !got.Equal(*tc.want) {
				t.Errorf("Ptr() = %v, want %v", got, tc.want)
			}
		})
	}
}

func tp(t time.Time) *time.Time { return &t }
