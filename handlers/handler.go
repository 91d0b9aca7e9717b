package handlers

import (
	"greychat/config"
	"greychat/middleware"
	"greychat/store"
)

// Handler bundles the explicitly constructed stores. No package-level
// state: everything a request needs is injected here at startup.
type Handler struct {
	cfg           *config.Config
	users         *store.IdentityStore
	relationships *store.RelationshipStore
	messages      *store.MessageStore
	statuses      *store.StatusStore
	queries       *store.Queries
	metrics       *middleware.Metrics
}

func New(
	cfg *config.Config,
	users *store.IdentityStore,
	relationships *store.RelationshipStore,
	messages *store.MessageStore,
	statuses *store.StatusStore,
	queries *store.Queries,
	metrics *middleware.Metrics,
) *Handler {
	return &Handler{
		cfg:           cfg,
		users:         users,
		relationships: relationships,
		messages:      messages,
		statuses:      statuses,
		queries:       queries,
		metrics:       metrics,
	}
}
