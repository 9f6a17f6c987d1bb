package research

import (
	"fmt"
	"strings"
	"time"
)

// Severity classifies a notification without tying it to any presentation
type Severity int

const (
	SeverityNeutral Severity = iota
	SeverityPositive
	SeverityNegative
)

func (s Severity) String() string {
	switch s {
	case SeverityPositive:
		return "POSITIVE"
	case SeverityNegative:
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}

// ParseSeverity converts a stored severity name back to its variant
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "POSITIVE":
		return SeverityPositive, nil
	case "NEUTRAL":
		return SeverityNeutral, nil
	case "NEGATIVE":
		return SeverityNegative, nil
	default:
		return SeverityNeutral, fmt.Errorf("unknown severity: %q", value)
	}
}

// Notification is a user-facing message emitted when a project finishes
type Notification struct {
	Title     string
	Body      string
	Severity  Severity
	ProjectID string
	Timestamp time.Time
}

const nextInQueueNone = "none"

// NewCompletionNotification composes the message for a finished project.
// next is the project promoted in its place, or nil when the queue drained.
func NewCompletionNotification(finished, next *ProjectDef, at time.Time) Notification {
	title := fmt.Sprintf("Research finished: %s", finished.LabelCap())

	var body strings.Builder
	body.WriteString(title)
	if finished.Description() != "" {
		body.WriteString("\n\n")
		body.WriteString(finished.Description())
	}

	severity := SeverityPositive
	nextLabel := nextInQueueNone
	if next != nil {
		nextLabel = next.LabelCap()
	} else {
		severity = SeverityNegative
	}
	body.WriteString("\n\nNext in queue: ")
	body.WriteString(nextLabel)

	return Notification{
		Title:     title,
		Body:      body.String(),
		Severity:  severity,
		ProjectID: finished.ID(),
		Timestamp: at,
	}
}
