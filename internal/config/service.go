package config

import (
	"context"
	"sync"

	"fap/internal/ferrors"
)

// Service manages configuration with thread-safe access and change
// notifications, replacing a global configuration pattern with
// dependency injection (spec §9, "Global state").
type Service struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	watchers []chan<- *Config
}

// NewService creates a configuration service around an already-loaded
// config and the path it came from (possibly empty, for defaults-only).
func NewService(cfg *Config, path string) *Service {
	return &Service{config: cfg, path: path}
}

// Get returns the current configuration.
func (s *Service) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Path returns the configuration file path currently in effect.
func (s *Service) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.path
}

// Reload re-reads configuration from path and, on success, notifies
// watchers. On validation failure the prior configuration is retained.
func (s *Service) Reload(ctx context.Context, path string) error {
	result := LoadWithValidation(path)
	if result.ValidationError != nil {
		return ferrors.Wrap(result.ValidationError, ferrors.CodeInvalidConfig, "configuration reload failed")
	}

	s.mu.Lock()
	s.config = result.Config
	s.path = result.ConfigPath
	watchers := make([]chan<- *Config, len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	for _, watcher := range watchers {
		select {
		case watcher <- result.Config:
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// Watch returns a channel receiving configuration updates, closed when
// ctx is done. The current config is sent immediately.
func (s *Service) Watch(ctx context.Context) <-chan *Config {
	ch := make(chan *Config, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	ch <- s.Get()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		defer s.mu.Unlock()

		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)

				break
			}
		}

		close(ch)
	}()

	return ch
}

// LoadOrDefault loads configuration from path, falling back to defaults
// (with the error preserved) when loading fails.
func LoadOrDefault(path string) (*Service, error) {
	result := LoadWithValidation(path)
	if result.ValidationError != nil {
		return NewService(DefaultConfig(), ""), result.ValidationError
	}

	return NewService(result.Config, result.ConfigPath), nil
}
