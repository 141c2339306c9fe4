package server

import (
	"context"
	"sync"
	"time"

	"github.com/edgefn/translation-gateway/internal/config"
	"github.com/edgefn/translation-gateway/internal/upstream"
)

// Completer is the single outbound dependency of the translate handler.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// State holds the reloadable parts of the running server: the active config
// and the upstream client built from it. Apply swaps both atomically so a
// request sees one consistent snapshot.
type State struct {
	mu     sync.RWMutex
	cfg    *config.Config
	client Completer
}

func NewState(cfg *config.Config) *State {
	s := &State{}
	s.Apply(cfg)
	return s
}

// Apply installs a new config and rebuilds the upstream client from it.
func (s *State) Apply(cfg *config.Config) {
	client := upstream.New(upstream.Options{
		Provider:    cfg.Upstream.Provider,
		Endpoint:    cfg.Upstream.Endpoint,
		APIKey:      cfg.Upstream.APIKey,
		Deployment:  cfg.Upstream.Deployment,
		APIVersion:  cfg.Upstream.APIVersion,
		MaxTokens:   cfg.Upstream.MaxTokens,
		Temperature: cfg.UpstreamTemperature(),
		Timeout:     time.Duration(cfg.Upstream.TimeoutMs) * time.Millisecond,
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.client = client
}

// SetCompleter overrides the upstream client, keeping the current config.
func (s *State) SetCompleter(c Completer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = c
}

// Snapshot returns the active config and client pair.
func (s *State) Snapshot() (*config.Config, Completer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.client
}
