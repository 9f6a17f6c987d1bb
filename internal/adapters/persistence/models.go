package persistence

import (
	"time"
)

// QueueEntryModel represents the research_queue_entries table.
// One row per queued project; the rows of a session ordered by position
// form the saved "Queue" list. Nothing else about a node is persisted.
type QueueEntryModel struct {
	SessionID string    `gorm:"column:session_id;primaryKey;size:64;not null"`
	Position  int       `gorm:"column:position;primaryKey;not null"`
	ProjectID string    `gorm:"column:project_id;size:255;not null"`
	SavedAt   time.Time `gorm:"column:saved_at;not null"`
}

func (QueueEntryModel) TableName() string {
	return "research_queue_entries"
}

// HostStateModel represents the research_host_state table
type HostStateModel struct {
	SessionID        string    `gorm:"column:session_id;primaryKey;size:64;not null"`
	CurrentProjectID string    `gorm:"column:current_project_id;size:255"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null"`
}

func (HostStateModel) TableName() string {
	return "research_host_state"
}

// ProjectProgressModel represents the research_progress table
type ProjectProgressModel struct {
	SessionID string  `gorm:"column:session_id;primaryKey;size:64;not null"`
	ProjectID string  `gorm:"column:project_id;primaryKey;size:255;not null"`
	Progress  float64 `gorm:"column:progress;not null;default:0"`
}

func (ProjectProgressModel) TableName() string {
	return "research_progress"
}

// NotificationModel represents the research_notifications table
type NotificationModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID string    `gorm:"column:session_id;size:64;not null;index"`
	ProjectID string    `gorm:"column:project_id;size:255"`
	Title     string    `gorm:"column:title;not null"`
	Body      string    `gorm:"column:body;type:text"`
	Severity  string    `gorm:"column:severity;size:16;not null;default:'NEUTRAL'"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
}

func (NotificationModel) TableName() string {
	return "research_notifications"
}

// SessionLogModel represents the research_session_logs table
type SessionLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID string    `gorm:"column:session_id;size:64;not null;index"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	Level     string    `gorm:"column:level;not null;default:'INFO'"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (SessionLogModel) TableName() string {
	return "research_session_logs"
}
