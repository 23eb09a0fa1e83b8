package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"tidy-room/api/internal/room"
)

// Memory is an in-process store for development and tests. Readers get copies,
// so a reference read never observes a half-replaced set.
type Memory struct {
	mu         sync.RWMutex
	users      map[int64]bool
	rooms      map[int64]room.Reference
	drawings   []Drawing
	activities []Activity
	nextID     int64
	now        func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users: map[int64]bool{},
		rooms: map[int64]room.Reference{},
		now:   time.Now,
	}
}

func cloneRef(r room.Reference) room.Reference {
	r.Objects = append([]room.ReferenceObject(nil), r.Objects...)
	return r
}

func (m *Memory) GetReference(_ context.Context, userID int64) (room.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[userID]
	if !ok {
		return room.Reference{}, room.ErrNoReference
	}
	return cloneRef(r), nil
}

func (m *Memory) ReplaceReference(_ context.Context, ref room.Reference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref = cloneRef(ref)
	ref.CompletedTasks = m.rooms[ref.UserID].CompletedTasks
	ref.UpdatedAt = m.now()
	m.users[ref.UserID] = true
	m.rooms[ref.UserID] = ref
	return nil
}

func (m *Memory) Completed(_ context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[userID].CompletedTasks, nil
}

func (m *Memory) Increment(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[userID]
	if !ok {
		return 0, room.ErrNoReference
	}
	r.CompletedTasks++
	m.rooms[userID] = r
	return r.CompletedTasks, nil
}

func (m *Memory) Reset(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[userID]
	if !ok {
		return room.ErrNoReference
	}
	r.CompletedTasks = 0
	m.rooms[userID] = r
	return nil
}

func (m *Memory) EnsureUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = true
	return nil
}

func (m *Memory) UserExists(_ context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[userID], nil
}

func (m *Memory) Create(_ context.Context, d Drawing) (Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	d.ID = m.nextID
	d.CreatedAt = m.now()
	m.drawings = append(m.drawings, d)
	return d, nil
}

func (m *Memory) Get(_ context.Context, id int64) (Drawing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drawings {
		if d.ID == id {
			return d, nil
		}
	}
	return Drawing{}, ErrNotFound
}

func (m *Memory) ListByUser(_ context.Context, userID int64) ([]Drawing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Drawing
	for _, d := range m.drawings {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Log(_ context.Context, a Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.Timestamp.IsZero() {
		a.Timestamp = m.now()
	}
	m.activities = append(m.activities, a)
	return nil
}

// Activities returns a copy of the logged activities.
func (m *Memory) Activities() []Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Activity(nil), m.activities...)
}
