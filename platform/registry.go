package platform

import (
	"sync"

	"viralcast/models"
	"viralcast/service"

	log "github.com/sirupsen/logrus"
)

// Registry maps platform identifiers to their delivery adapters. Adapters
// are registered once at startup; adding a platform is a registration, not
// an orchestrator change.
type Registry struct {
	mu       sync.RWMutex
	adapters map[models.Platform]service.DeliveryAdapter
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[models.Platform]service.DeliveryAdapter),
	}
}

// Register adds an adapter under its platform, replacing any existing one.
// Replacement is how deployments flip a platform to the automation variant.
func (r *Registry) Register(adapter service.DeliveryAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[adapter.Platform()]; exists {
		log.WithField("platform", adapter.Platform()).Info("Replacing registered delivery adapter")
	}
	r.adapters[adapter.Platform()] = adapter
}

// Get returns the adapter registered for a platform, if any
func (r *Registry) Get(platform models.Platform) (service.DeliveryAdapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[platform]
	return adapter, ok
}

// Platforms returns every platform with a registered adapter
func (r *Registry) Platforms() []models.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]models.Platform, 0, len(r.adapters))
	for p := range r.adapters {
		platforms = append(platforms, p)
	}
	return platforms
}
