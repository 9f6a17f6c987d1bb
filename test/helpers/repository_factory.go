package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/research-queue/internal/adapters/persistence"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB            *gorm.DB
	Snapshots     *persistence.GormQueueSnapshotRepository
	HostState     *persistence.GormHostStateRepository
	Notifications *persistence.GormNotificationRepository
	SessionLogs   *persistence.GormSessionLogRepository
}

// NewTestRepositories creates all repositories on db, or on the shared test DB when db is nil.
// clock is used for time-sensitive operations (usually a MockClock in tests)
func NewTestRepositories(db *gorm.DB, clock shared.Clock) *TestRepositories {
	if db == nil {
		db = SharedTestDB
	}

	return &TestRepositories{
		DB:            db,
		Snapshots:     persistence.NewGormQueueSnapshotRepository(db, clock),
		HostState:     persistence.NewGormHostStateRepository(db, clock),
		Notifications: persistence.NewGormNotificationRepository(db),
		SessionLogs:   persistence.NewGormSessionLogRepository(db, clock),
	}
}
