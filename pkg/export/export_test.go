package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleRows() []PendingHolderRow {
	reg := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	return []PendingHolderRow{
		{HolderID: 12, Name: "North Andros Farm", Owner: "jrolle", RegisteredAt: reg, Urgency: UrgencyUrgent},
		{HolderID: 15, Name: "Exuma Smallhold", Owner: "mdean", RegisteredAt: reg.Add(20 * time.Hour), Urgency: UrgencyNormal},
	}
}

func TestUrgencyFor(t *testing.T) {
	now := time.Date(2025, 8, 2, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		age  time.Duration
		want string
	}{
		{2 * time.Hour, UrgencyNormal},
		{13 * time.Hour, UrgencyWarning},
		{25 * time.Hour, UrgencyUrgent},
	}
	for _, tc := range cases {
		if got := UrgencyFor(now.Add(-tc.age), now); got != tc.want {
			t.Fatalf("age %v: expected %s got %s", tc.age, tc.want, got)
		}
	}
}

func TestPendingHoldersCSV(t *testing.T) {
	data, err := PendingHoldersCSV(sampleRows())
	if err != nil {
		t.Fatalf("csv failed: %v", err)
	}
	out := string(data)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Holder ID,Name,Owner") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "North Andros Farm") || !strings.Contains(lines[1], UrgencyUrgent) {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestCompletionCSV(t *testing.T) {
	rows := []CompletionRow{
		{HolderID: 3, Name: "Cat Island Farm", Completed: []int{1, 2, 4}, Total: 5},
		{HolderID: 4, Name: "New Farm", Total: 5},
	}
	data, err := CompletionCSV(rows)
	if err != nil {
		t.Fatalf("csv failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "1 2 4") || !strings.Contains(out, "3/5") {
		t.Fatalf("missing sections/progress cells in %q", out)
	}
	if !strings.Contains(out, "0/5") {
		t.Fatalf("missing empty-progress cell in %q", out)
	}
}

func TestPendingHoldersXLSX(t *testing.T) {
	data, err := PendingHoldersXLSX(sampleRows())
	if err != nil {
		t.Fatalf("xlsx failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open generated xlsx: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Pending Holders")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows got %d", len(rows))
	}
	if rows[1][1] != "North Andros Farm" || rows[1][4] != UrgencyUrgent {
		t.Fatalf("unexpected row %v", rows[1])
	}
}

func TestPendingHoldersPDF(t *testing.T) {
	data, err := PendingHoldersPDF(sampleRows())
	if err != nil {
		t.Fatalf("pdf failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts %q)", data[:8])
	}
}
