package main

import (
	"github.com/hibiken/asynq"

	beeJob "b2bees-backend/internal/domains/bee/job"
	subscriberJob "b2bees-backend/internal/domains/subscriber/job"
	"b2bees-backend/internal/shared"
	"b2bees-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	welcomeEmail *subscriberJob.WelcomeEmailHandler
	warmCache    *beeJob.WarmCacheHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		welcomeEmail: subscriberJob.NewWelcomeEmailHandler(c.Email, c.BeeName),
		warmCache:    beeJob.NewWarmCacheHandler(c.BeeService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Subscriber
	mux.HandleFunc(shared.TypeSendWelcomeEmail, h.welcomeEmail.ProcessTask)

	// Catalog maintenance
	mux.HandleFunc(shared.TypeWarmCatalogCache, h.warmCache.ProcessTask)
}
