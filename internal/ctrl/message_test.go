package ctrl_test

import (
	"testing"

	"wpactl/internal/ctrl"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		event    bool
		severity int
		body     string
	}{
		{name: "info event", frame: "<2>CTRL-EVENT-CONNECTED abc", event: true, severity: 2, body: "CTRL-EVENT-CONNECTED abc"},
		{name: "msgdump event", frame: "<0>RX ctrl_iface", event: true, severity: 0, body: "RX ctrl_iface"},
		{name: "max severity", frame: "<7>something", event: true, severity: 7, body: "something"},
		{name: "empty body", frame: "<3>", event: true, severity: 3, body: ""},
		{name: "plain reply", frame: "PONG\n", event: false},
		{name: "ok reply", frame: "OK\n", event: false},
		{name: "fail reply", frame: "FAIL\n", event: false},
		{name: "empty frame", frame: "", event: false},
		{name: "severity out of range", frame: "<8>nope", event: false},
		{name: "non-digit marker", frame: "<x>nope", event: false},
		{name: "lone angle bracket", frame: "<", event: false},
		{name: "unterminated marker", frame: "<2", event: false},
		{name: "reply that merely contains a marker", frame: "value=<2>", event: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := ctrl.Classify([]byte(tt.frame))
			if ok != tt.event {
				t.Fatalf("Classify(%q) event=%v, want %v", tt.frame, ok, tt.event)
			}
			if !tt.event {
				return
			}
			if ev.Severity != tt.severity {
				t.Errorf("severity = %d, want %d", ev.Severity, tt.severity)
			}
			if ev.Body != tt.body {
				t.Errorf("body = %q, want %q", ev.Body, tt.body)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	ev := ctrl.Event{Severity: 2, Body: "CTRL-EVENT-CONNECTED abc"}
	if got := ev.String(); got != "<2>CTRL-EVENT-CONNECTED abc" {
		t.Fatalf("String() = %q", got)
	}
}
