package services

import (
	"context"
	"sync"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// memoryStore is a record store fake that mirrors the SQL repositories, including
// foreign key cascade on player deletion.
type memoryStore struct {
	mu      sync.Mutex
	nextID  int
	players []*models.Player
	matches []*models.Match
	failErr error
}

func newMemoryStore() *memoryStore { return &memoryStore{} }

type memoryPlayers struct{ s *memoryStore }
type memoryMatches struct{ s *memoryStore }

func (s *memoryStore) playerRepo() repositories.PlayerRepository { return memoryPlayers{s} }
func (s *memoryStore) matchRepo() repositories.MatchRepository   { return memoryMatches{s} }

func (r memoryPlayers) Create(_ context.Context, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return r.s.failErr
	}
	r.s.nextID++
	p.ID = r.s.nextID
	cp := *p
	r.s.players = append(r.s.players, &cp)
	return nil
}

func (r memoryPlayers) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return nil, r.s.failErr
	}
	for _, p := range r.s.players {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r memoryPlayers) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return 0, r.s.failErr
	}
	return len(r.s.players), nil
}

func (r memoryPlayers) List(context.Context) ([]*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return nil, r.s.failErr
	}
	out := make([]*models.Player, len(r.s.players))
	copy(out, r.s.players)
	return out, nil
}

func (r memoryPlayers) DeleteAll(context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return r.s.failErr
	}
	r.s.players = nil
	r.s.matches = nil
	return nil
}

func (r memoryMatches) Create(_ context.Context, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return r.s.failErr
	}
	r.s.nextID++
	m.ID = r.s.nextID
	cp := *m
	r.s.matches = append(r.s.matches, &cp)
	return nil
}

func (r memoryMatches) List(context.Context) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return nil, r.s.failErr
	}
	out := make([]*models.Match, len(r.s.matches))
	copy(out, r.s.matches)
	return out, nil
}

func (r memoryMatches) DeleteAll(context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failErr != nil {
		return r.s.failErr
	}
	r.s.matches = nil
	return nil
}
