package project

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Project
}

// NewMemoryRepository constructs an in-memory repository for tests and local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Project)}
}

func (r *memoryRepository) Create(_ context.Context, p Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[p.ID]; exists {
		return errors.New("project exists")
	}
	r.storage[p.ID] = clone(p)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.storage[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return clone(p), nil
}

func (r *memoryRepository) Update(_ context.Context, p Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.storage[p.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	r.storage[p.ID] = stored
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return ErrNotFound
	}
	delete(r.storage, id)
	return nil
}

func (r *memoryRepository) AddMember(_ context.Context, projectID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.storage[projectID]
	if !ok {
		return ErrNotFound
	}
	if p.RoleOf(userID) != RoleNone {
		return nil
	}
	p.MemberIDs = append(p.MemberIDs, userID)
	r.storage[projectID] = p
	return nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Project
	for _, p := range r.storage {
		if p.OwnerID == ownerID {
			out = append(out, clone(p))
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *memoryRepository) ListByMember(_ context.Context, userID string) ([]Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Project
	for _, p := range r.storage {
		for _, id := range p.MemberIDs {
			if id == userID {
				out = append(out, clone(p))
				break
			}
		}
	}
	sortByCreation(out)
	return out, nil
}

func clone(p Project) Project {
	members := make([]string, len(p.MemberIDs))
	copy(members, p.MemberIDs)
	p.MemberIDs = members
	return p
}

func sortByCreation(projects []Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
}
