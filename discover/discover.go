package discover

import (
	"github.com/rs/zerolog"

	"github.com/bwolf/gandi-dns-update/resolver"
)

// DefaultRecursiveServer is the trusted recursive resolver used for all
// bootstrap lookups (public IP discovery and NS resolution).
const DefaultRecursiveServer = "8.8.8.8:53"

// Discoverer bundles the resolver and the trusted recursive server address.
// It holds no state between calls; every run observes the world fresh.
type Discoverer struct {
	res       resolver.Resolver
	recursive string
	logger    zerolog.Logger
}

// New creates a Discoverer which performs bootstrap lookups against the
// supplied recursive server. An empty recursive selects
// DefaultRecursiveServer.
func New(res resolver.Resolver, recursive string, logger zerolog.Logger) *Discoverer {
	if recursive == "" {
		recursive = DefaultRecursiveServer
	}

	return &Discoverer{res: res, recursive: recursive, logger: logger}
}
