package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// ListNotificationsQuery returns the most recent notifications of a session
type ListNotificationsQuery struct {
	SessionID string
	Limit     int
}

// NotificationDTO is one stored notification
type NotificationDTO struct {
	Title     string
	Body      string
	Severity  string
	ProjectID string
	Timestamp time.Time
}

// ListNotificationsResponse is the result of the query
type ListNotificationsResponse struct {
	Notifications []NotificationDTO
}

// ListNotificationsHandler handles the ListNotifications query
type ListNotificationsHandler struct {
	notificationRepo domainResearch.NotificationRepository
}

// NewListNotificationsHandler creates a new ListNotificationsHandler
func NewListNotificationsHandler(notificationRepo domainResearch.NotificationRepository) *ListNotificationsHandler {
	return &ListNotificationsHandler{notificationRepo: notificationRepo}
}

// Handle executes the ListNotifications query
func (h *ListNotificationsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListNotificationsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListNotificationsQuery")
	}

	sessionID, err := shared.NewSessionID(query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	notifications, err := h.notificationRepo.List(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, NotificationDTO{
			Title:     n.Title,
			Body:      n.Body,
			Severity:  n.Severity.String(),
			ProjectID: n.ProjectID,
			Timestamp: n.Timestamp,
		})
	}
	return &ListNotificationsResponse{Notifications: dtos}, nil
}
