// Package memstore keeps client storage in process memory. Entries are lost
// on restart.
package memstore

import (
	"context"
	"sync"

	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

var (
	_ ports.StorageProvider = (*Provider)(nil)
	_ ports.Storage         = (*Storage)(nil)
)

// Provider holds one map per client namespace.
type Provider struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]string
}

// NewProvider creates an empty in-memory provider.
func NewProvider() *Provider {
	return &Provider{namespaces: make(map[string]map[string]string)}
}

// Namespace returns the storage for clientID.
func (p *Provider) Namespace(clientID string) ports.Storage {
	return &Storage{p: p, ns: clientID}
}

// Len reports how many namespaces hold at least one entry.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.namespaces)
}

// Storage is a single namespace view over a Provider.
type Storage struct {
	p  *Provider
	ns string
}

// New returns a standalone Storage backed by its own provider.
func New() *Storage {
	return &Storage{p: NewProvider(), ns: ""}
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.p.mu.RLock()
	defer s.p.mu.RUnlock()
	v, ok := s.p.namespaces[s.ns][key]
	return v, ok, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	m, ok := s.p.namespaces[s.ns]
	if !ok {
		m = make(map[string]string)
		s.p.namespaces[s.ns] = m
	}
	m[key] = value
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	m, ok := s.p.namespaces[s.ns]
	if !ok {
		return nil
	}
	delete(m, key)
	if len(m) == 0 {
		delete(s.p.namespaces, s.ns)
	}
	return nil
}

// Snapshot copies the namespace contents. Useful in tests.
func (s *Storage) Snapshot() map[string]string {
	s.p.mu.RLock()
	defer s.p.mu.RUnlock()
	out := make(map[string]string, len(s.p.namespaces[s.ns]))
	for k, v := range s.p.namespaces[s.ns] {
		out[k] = v
	}
	return out
}
