// Package session holds the process-wide authenticated context: the
// opaque bearer credential, the actor identity, and the capability set.
// It is the only cross-cutting mutable state in the console. Exactly one
// writer path exists per field; everything else reads.
package session

import (
	"sync"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
)

// Identity is the authenticated actor as reported by the backend.
type Identity struct {
	Email     string `json:"email"`
	RoleLabel string `json:"roleLabel,omitempty"`
	// StaffID links the operator to a staff record, when there is one.
	StaffID string `json:"staffId,omitempty"`
}

// Store is the narrow read/write surface. Mutators are called from the
// auth flow and the global unauthorized hook only.
type Store interface {
	// SetSession replaces credential and identity together.
	SetSession(credential string, identity Identity)
	// SetCapabilities replaces the cached capability set. Called once,
	// right after SetSession, from the dedicated permissions fetch.
	SetCapabilities(caps []string)
	// Clear resets to the anonymous state. Idempotent; safe to call from
	// the global response hook as well as an explicit logout.
	Clear()

	Credential() string
	Identity() (Identity, bool)
	Capabilities() []ability.Capability
	Authenticated() bool
}

type memoryStore struct {
	mu           sync.RWMutex
	credential   string
	identity     *Identity
	capabilities []ability.Capability
}

// NewMemory returns an in-memory Store with no persistence. Tests and
// the dev bypass use it directly; production wraps it with a snapshot
// (see FileStore).
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) SetSession(credential string, identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	id := identity
	s.identity = &id
	// A new principal invalidates the previous capability scope.
	s.capabilities = nil
}

func (s *memoryStore) SetCapabilities(caps []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ability.Capability, 0, len(caps))
	for _, c := range caps {
		out = append(out, ability.Capability(c))
	}
	s.capabilities = out
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	s.identity = nil
	s.capabilities = nil
}

func (s *memoryStore) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

func (s *memoryStore) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *memoryStore) Capabilities() []ability.Capability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ability.Capability, len(s.capabilities))
	copy(out, s.capabilities)
	return out
}

func (s *memoryStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential != ""
}
