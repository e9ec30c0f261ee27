package handler_test

import (
	"context"
	"sort"
	"sync"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
)

// memoryRepo is an in-memory domain.UserRepository for end-to-end handler
// tests. It enforces the same unique email constraint as the users table.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]domain.User)}
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) List(_ context.Context, skip, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []*domain.User{}
	for i, id := range ids {
		if i < skip {
			continue
		}
		if len(out) == limit {
			break
		}
		u := r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *memoryRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return autherror.EmailExists(user.Email)
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *memoryRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return autherror.UserNotFound(user.ID)
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return autherror.EmailExists(user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return autherror.UserNotFound(id)
	}
	delete(r.users, id)
	return nil
}

func (r *memoryRepo) WithinTx(_ context.Context, fn func(repo domain.UserRepository) error) error {
	return fn(r)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
