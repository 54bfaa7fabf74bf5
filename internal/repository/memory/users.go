package memory

import (
	"context"
	"sort"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
)

type users struct{ s *Store }

func (r *users) Create(ctx context.Context, name, email string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return models.User{}, ledgererr.Conflict("email already exists")
		}
	}
	r.s.nextUserID++
	now := r.s.now()
	u := models.User{ID: r.s.nextUserID, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	r.s.users[u.ID] = u
	return u, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, ledgererr.NotFound("user not found")
	}
	return u, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ledgererr.NotFound("user not found")
}

func (r *users) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *users) Update(ctx context.Context, u models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[u.ID]
	if !ok {
		return ledgererr.NotFound("user not found")
	}
	for _, other := range r.s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return ledgererr.Conflict("email already exists")
		}
	}
	cur.Name = u.Name
	cur.Email = u.Email
	cur.UpdatedAt = r.s.now()
	r.s.users[u.ID] = cur
	return nil
}

func (r *users) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return ledgererr.NotFound("user not found")
	}
	delete(r.s.users, id)
	return nil
}
