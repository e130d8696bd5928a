// Package export renders admin report rows as downloadable CSV, XLSX and
// PDF documents.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Urgency thresholds for the pending-holder review queue.
const (
	UrgencyNormal  = "Normal"
	UrgencyWarning = "Review soon"
	UrgencyUrgent  = "Urgent"
)

// PendingHolderRow is one line of the pending-registration summary.
type PendingHolderRow struct {
	HolderID     uint
	Name         string
	Owner        string
	RegisteredAt time.Time
	Urgency      string
}

// UrgencyFor classifies a registration by how long it has been waiting.
// Registrations older than 24h are urgent, older than 12h need review.
func UrgencyFor(registeredAt, now time.Time) string {
	age := now.Sub(registeredAt)
	switch {
	case age > 24*time.Hour:
		return UrgencyUrgent
	case age > 12*time.Hour:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// CompletionRow is one line of the survey completion report.
type CompletionRow struct {
	HolderID  uint
	Name      string
	Completed []int
	Total     int
}

func (r CompletionRow) sectionsCell() string {
	if len(r.Completed) == 0 {
		return "-"
	}
	parts := make([]string, len(r.Completed))
	for i, id := range r.Completed {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " ")
}

func (r CompletionRow) progressCell() string {
	return fmt.Sprintf("%d/%d", len(r.Completed), r.Total)
}

var pendingHeader = []string{"Holder ID", "Name", "Owner", "Registered At", "Urgency"}

var completionHeader = []string{"Holder ID", "Name", "Completed Sections", "Progress"}

func (r PendingHolderRow) cells() []string {
	return []string{
		fmt.Sprintf("%d", r.HolderID),
		r.Name,
		r.Owner,
		r.RegisteredAt.Format(time.RFC3339),
		r.Urgency,
	}
}

func (r CompletionRow) cells() []string {
	return []string{
		fmt.Sprintf("%d", r.HolderID),
		r.Name,
		r.sectionsCell(),
		r.progressCell(),
	}
}
