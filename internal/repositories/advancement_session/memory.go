package advancementsession

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
)

type memoryRepository struct {
	mu       sync.RWMutex
	clock    clock.Clock
	sessions map[string][]byte
}

// NewMemoryRepository creates an in-process repository. Sessions are stored
// serialized so callers never share state with the repository.
func NewMemoryRepository(clk clock.Clock) Repository {
	if clk == nil {
		clk = clock.New()
	}
	return &memoryRepository{
		clock:    clk,
		sessions: make(map[string][]byte),
	}
}

// Ensure memoryRepository implements Repository
var _ Repository = (*memoryRepository)(nil)

func (m *memoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := m.clock.Now()
	state := *input.State
	state.CreatedAt = now
	state.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&state)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.load(state.ID); ok && !m.expired(existing) {
		return nil, errors.AlreadyExistsf("advancement session %s already exists", state.ID)
	}
	m.sessions[state.ID] = data

	return &CreateOutput{State: &state}, nil
}

func (m *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	m.mu.RLock()
	state, ok := m.load(input.ID)
	m.mu.RUnlock()

	if !ok {
		return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.ID)
	}
	if m.expired(state) {
		m.mu.Lock()
		delete(m.sessions, input.ID)
		m.mu.Unlock()
		return nil, errors.NotFound("advancement session has expired").WithMeta("session_id", input.ID)
	}
	return &GetOutput{State: state}, nil
}

func (m *memoryRepository) Update(_ context.Context, state *State) error {
	if state == nil {
		return errors.InvalidArgument(errStateNil)
	}
	if state.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if m.expired(state) {
		return errors.FailedPrecondition(errSessionExpired)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[state.ID]; !ok {
		return errors.NotFound(errNotFound).WithMeta("session_id", state.ID)
	}
	m.sessions[state.ID] = data
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[input.ID]
	delete(m.sessions, input.ID)
	return &DeleteOutput{Deleted: ok}, nil
}

// load decodes a stored session; callers hold the lock
func (m *memoryRepository) load(id string) (*State, bool) {
	data, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}
	return &state, true
}

func (m *memoryRepository) expired(state *State) bool {
	return m.clock.Now().After(state.ExpiresAt)
}
