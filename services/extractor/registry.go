package extractor

import (
	"sync"

	"github.com/releasewatch/mailparser/interfaces"
)

// Registry maps an exact sender address to its extraction strategy.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]interfaces.ReleaseExtractor
}

func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]interfaces.ReleaseExtractor),
	}
}

// NewDefaultRegistry registers the storefront extractor under the given sender.
func NewDefaultRegistry(storefrontSender string) *Registry {
	registry := NewRegistry()
	if storefrontSender != "" {
		registry.Register(storefrontSender, NewStorefrontExtractor())
	}
	return registry
}

func (r *Registry) Register(sender string, extractor interfaces.ReleaseExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[sender] = extractor
}

func (r *Registry) Lookup(sender string) (interfaces.ReleaseExtractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	extractor, ok := r.extractors[sender]
	return extractor, ok
}
