package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTablePlainFallback(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf,
		[]string{"ID", "SSID"},
		[][]string{{"0", "home"}, {"1", "office"}},
		[]columnAlignment{alignRight, alignLeft})

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "ID\tSSID" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "0\thome" || lines[2] != "1\toffice" {
		t.Errorf("rows = %q, %q", lines[1], lines[2])
	}
}

func TestRenderTableShortRowsPad(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf,
		[]string{"ID", "SSID", "FLAGS"},
		[][]string{{"0", "home"}},
		nil)

	if !strings.Contains(out, "0\thome") {
		t.Fatalf("missing row data:\n%s", out)
	}
}

func TestRenderTableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	if out := renderTable(&buf, nil, [][]string{{"x"}}, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestWriterIsTerminal(t *testing.T) {
	if writerIsTerminal(&bytes.Buffer{}) {
		t.Fatal("a bytes.Buffer is not a terminal")
	}
}
