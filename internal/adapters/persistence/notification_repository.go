package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// GormNotificationRepository implements research.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// Compile-time interface check
var _ research.NotificationRepository = (*GormNotificationRepository)(nil)

// NewGormNotificationRepository creates a new notification repository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Append stores one notification
func (r *GormNotificationRepository) Append(ctx context.Context, sessionID shared.SessionID, n research.Notification) error {
	model := NotificationModel{
		SessionID: sessionID.String(),
		ProjectID: n.ProjectID,
		Title:     n.Title,
		Body:      n.Body,
		Severity:  n.Severity.String(),
		Timestamp: n.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

// List returns up to limit notifications, newest first
func (r *GormNotificationRepository) List(ctx context.Context, sessionID shared.SessionID, limit int) ([]research.Notification, error) {
	var models []NotificationModel
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID.String()).
		Order("timestamp DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]research.Notification, 0, len(models))
	for _, model := range models {
		severity, err := research.ParseSeverity(model.Severity)
		if err != nil {
			continue // Skip rows written with an unknown severity
		}
		notifications = append(notifications, research.Notification{
			Title:     model.Title,
			Body:      model.Body,
			Severity:  severity,
			ProjectID: model.ProjectID,
			Timestamp: model.Timestamp,
		})
	}
	return notifications, nil
}
