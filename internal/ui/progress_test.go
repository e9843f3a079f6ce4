package ui

import (
	"strings"
	"testing"

	"frtypo/internal/driver"
)

func TestApplyEventTracksDocuments(t *testing.T) {
	m := NewProgressModel("check", []string{"a.md", "b.md"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.md", Stage: driver.StageCheck, Status: driver.StatusWorking})
	if m.items[0].status != "checking" {
		t.Fatalf("expected checking, got %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.md", Stage: driver.StageCheck, Status: driver.StatusDone, Records: 3})
	m.applyEvent(driver.Event{File: "unknown.md", Stage: driver.StageCheck, Status: driver.StatusDone})
	if !m.items[0].final || m.items[0].records != 3 || m.finished() != 1 {
		t.Fatalf("unexpected state %+v", m.items)
	}

	view := m.View()
	if !strings.Contains(view, "check (1/2)") || !strings.Contains(view, "3 records") {
		t.Fatalf("unexpected view %q", view)
	}
}

func TestVisibleBoundsRows(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".md"
	}
	m := NewProgressModel("fix", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: files[5], Stage: driver.StageCheck, Status: driver.StatusWorking})
	if got := m.visible(); len(got) != 1 || got[0].path != files[5] {
		t.Fatalf("expected only the running document, got %+v", got)
	}
	if !strings.Contains(m.View(), "29 more documents") {
		t.Fatalf("expected a summary line, got %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("docs/très-long-nom.md", 10); got != "docs/tr..." {
		t.Fatalf("unexpected %q", got)
	}
	if got := truncate("court.md", 20); got != "court.md" {
		t.Fatalf("unexpected %q", got)
	}
}
