package setup

import (
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
	researchCommands "github.com/andrescamacho/research-queue/internal/application/research/commands"
	researchQueries "github.com/andrescamacho/research-queue/internal/application/research/queries"
	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	session          *researchApp.Session
	simulator        *researchApp.Simulator
	notificationRepo domainResearch.NotificationRepository
}

// NewHandlerRegistry creates a new handler registry.
// simulator and notificationRepo are optional; their handlers are skipped when nil.
func NewHandlerRegistry(
	session *researchApp.Session,
	simulator *researchApp.Simulator,
	notificationRepo domainResearch.NotificationRepository,
) *HandlerRegistry {
	return &HandlerRegistry{
		session:          session,
		simulator:        simulator,
		notificationRepo: notificationRepo,
	}
}

type handlerRegistration struct {
	name     string
	register func() error
}

// RegisterAll registers every research handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	registrations := []handlerRegistration{
		{"EnqueueProjects", func() error {
			return mediator.RegisterHandler[*researchCommands.EnqueueProjectsCommand](m, researchCommands.NewEnqueueProjectsHandler(r.session))
		}},
		{"RemoveProject", func() error {
			return mediator.RegisterHandler[*researchCommands.RemoveProjectCommand](m, researchCommands.NewRemoveProjectHandler(r.session))
		}},
		{"ClearQueue", func() error {
			return mediator.RegisterHandler[*researchCommands.ClearQueueCommand](m, researchCommands.NewClearQueueHandler(r.session))
		}},
		{"AdvanceProgress", func() error {
			return mediator.RegisterHandler[*researchCommands.AdvanceProgressCommand](m, researchCommands.NewAdvanceProgressHandler(r.session))
		}},
		{"SaveQueue", func() error {
			return mediator.RegisterHandler[*researchCommands.SaveQueueCommand](m, researchCommands.NewSaveQueueHandler(r.session))
		}},
		{"LoadQueue", func() error {
			return mediator.RegisterHandler[*researchCommands.LoadQueueCommand](m, researchCommands.NewLoadQueueHandler(r.session))
		}},
		{"GetQueue", func() error {
			return mediator.RegisterHandler[*researchQueries.GetQueueQuery](m, researchQueries.NewGetQueueHandler(r.session))
		}},
		{"ListCatalog", func() error {
			return mediator.RegisterHandler[*researchQueries.ListCatalogQuery](m, researchQueries.NewListCatalogHandler(r.session))
		}},
	}

	if r.simulator != nil {
		registrations = append(registrations, handlerRegistration{"RunSimulation", func() error {
			return mediator.RegisterHandler[*researchCommands.RunSimulationCommand](m, researchCommands.NewRunSimulationHandler(r.simulator))
		}})
	}
	if r.notificationRepo != nil {
		registrations = append(registrations, handlerRegistration{"ListNotifications", func() error {
			return mediator.RegisterHandler[*researchQueries.ListNotificationsQuery](m, researchQueries.NewListNotificationsHandler(r.notificationRepo))
		}})
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", reg.name, err)
		}
	}
	return nil
}
