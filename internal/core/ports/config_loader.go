package ports

import "go.trai.ch/forge/internal/core/domain"

// ProfileLoader loads a build profile from a configuration file.
type ProfileLoader interface {
	// Load reads and validates the profile at the given path.
	Load(path string) (*domain.Profile, error)
}
