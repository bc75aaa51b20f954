package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"eval", "score", "merge"} {
		p, ok := get(name)
		if !ok || p.name != name || p.main == nil {
			t.Errorf("expected sub-command %s", name)
		}
	}
	if _, ok := get("call"); ok {
		t.Errorf("unexpected sub-command")
	}
}

func TestPrintProgs(t *testing.T) {
	var buf bytes.Buffer
	printProgs(&buf)
	out := buf.String()
	if !strings.Contains(out, "] SURVIVOR") {
		t.Errorf("missing SURVIVOR line: %s", out)
	}
	if !strings.Contains(out, "score : report precision and recall") {
		t.Errorf("missing score help: %s", out)
	}
}
