package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
)

const snapshotFile = "session.json"

// snapshot is the durable form of the session. Written on every change,
// read back once at process start so capabilities are populated before
// the first protected screen evaluates Can.
type snapshot struct {
	Credential   string    `json:"credential"`
	Identity     *Identity `json:"identity,omitempty"`
	Capabilities []string  `json:"capabilities,omitempty"`
}

// FileStore wraps a memory store with a JSON snapshot under the state dir.
type FileStore struct {
	mu   sync.Mutex
	mem  Store
	path string
}

func NewFile(stateDir string) (*FileStore, error) {
	if stateDir == "" {
		return nil, errors.New("session: state dir is empty")
	}
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{
		mem:  NewMemory(),
		path: filepath.Join(stateDir, snapshotFile),
	}, nil
}

// Load rehydrates the session from the snapshot, if one exists.
// A missing file is the anonymous state, not an error.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt snapshot means re-authentication, not a crash.
		return nil
	}

	if snap.Credential == "" {
		return nil
	}
	var id Identity
	if snap.Identity != nil {
		id = *snap.Identity
	}
	s.mem.SetSession(snap.Credential, id)
	if len(snap.Capabilities) > 0 {
		s.mem.SetCapabilities(snap.Capabilities)
	}
	return nil
}

func (s *FileStore) persist() {
	snap := snapshot{Credential: s.mem.Credential()}
	if id, ok := s.mem.Identity(); ok {
		snap.Identity = &id
	}
	for _, c := range s.mem.Capabilities() {
		snap.Capabilities = append(snap.Capabilities, string(c))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	// Write-then-rename so a crash never leaves a truncated snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}

func (s *FileStore) SetSession(credential string, identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.SetSession(credential, identity)
	s.persist()
}

func (s *FileStore) SetCapabilities(caps []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.SetCapabilities(caps)
	s.persist()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.Clear()
	// Remove rather than persist an empty snapshot; both are idempotent.
	_ = os.Remove(s.path)
}

func (s *FileStore) Credential() string                  { return s.mem.Credential() }
func (s *FileStore) Identity() (Identity, bool)          { return s.mem.Identity() }
func (s *FileStore) Capabilities() []ability.Capability  { return s.mem.Capabilities() }
func (s *FileStore) Authenticated() bool                 { return s.mem.Authenticated() }
