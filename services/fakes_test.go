package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

// memStore backs the in-memory repositories used by the service tests.
type memStore struct {
	mu      sync.Mutex
	nextID  int
	users   map[int]*models.User
	peladas map[int]*models.Pelada
	players map[int]*models.Player
	matches []*models.Match
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int]*models.User{},
		peladas: map[int]*models.Pelada{},
		players: map[int]*models.Player{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

type memUserRepo struct{ *memStore }

func (r memUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	u.ID = r.id()
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type memPeladaRepo struct{ *memStore }

func (r memPeladaRepo) Create(_ context.Context, p *models.Pelada) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[p.OwnerID]; !ok {
		return repositories.ErrPeladaOwnerInvalid
	}
	p.ID = r.id()
	cp := *p
	r.peladas[p.ID] = &cp
	return nil
}

func (r memPeladaRepo) GetByID(_ context.Context, id int) (*models.Pelada, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.peladas[id]
	if !ok {
		return nil, repositories.ErrPeladaNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPeladaRepo) ListByOwner(_ context.Context, ownerID int) ([]models.Pelada, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Pelada
	for _, p := range r.peladas {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPeladaRepo) LockByID(ctx context.Context, _ repositories.SQLExecutor, id int) error {
	_, err := r.GetByID(ctx, id)
	return err
}

type memPlayerRepo struct{ *memStore }

func (r memPlayerRepo) Create(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.peladas[p.PeladaID]; !ok {
		return repositories.ErrPlayerPeladaInvalid
	}
	p.ID = r.id()
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r memPlayerRepo) GetByID(_ context.Context, peladaID, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok || p.PeladaID != peladaID {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPlayerRepo) ListByPelada(_ context.Context, peladaID int) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Player{}
	for _, p := range r.players {
		if p.PeladaID == peladaID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPlayerRepo) ListByIDs(_ context.Context, peladaID int, ids []int) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Player
	for _, id := range ids {
		if p, ok := r.players[id]; ok && p.PeladaID == peladaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r memPlayerRepo) Update(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.players[p.ID]
	if !ok || existing.PeladaID != p.PeladaID {
		return repositories.ErrPlayerNotFound
	}
	p.CreatedAt = existing.CreatedAt
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r memPlayerRepo) Delete(_ context.Context, peladaID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok || p.PeladaID != peladaID {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type memMatchRepo struct{ *memStore }

func (r memMatchRepo) CountByPelada(_ context.Context, _ repositories.SQLExecutor, peladaID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.matches {
		if m.PeladaID == peladaID {
			n++
		}
	}
	return n, nil
}

func (r memMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.id()
	for i := range m.Stats {
		m.Stats[i].ID = r.id()
		m.Stats[i].MatchID = m.ID
	}
	cp := *m
	cp.Stats = append([]models.MatchStat(nil), m.Stats...)
	r.matches = append(r.matches, &cp)
	return nil
}

func (r memMatchRepo) ListByPelada(_ context.Context, peladaID int) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Match{}
	for _, m := range r.matches {
		if m.PeladaID == peladaID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type memRankingRepo struct{ *memStore }

func (r memRankingRepo) ByPelada(_ context.Context, peladaID int) ([]models.RankingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := map[int]*models.RankingEntry{}
	for _, p := range r.players {
		if p.PeladaID == peladaID {
			totals[p.ID] = &models.RankingEntry{PlayerID: p.ID, Name: p.Name}
		}
	}
	for _, m := range r.matches {
		if m.PeladaID != peladaID {
			continue
		}
		for _, st := range m.Stats {
			if e, ok := totals[st.PlayerID]; ok {
				e.TotalGoals += st.Goals
				e.TotalAssists += st.Assists
			}
		}
	}
	out := make([]models.RankingEntry, 0, len(totals))
	for _, e := range totals {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalGoals != b.TotalGoals {
			return a.TotalGoals > b.TotalGoals
		}
		if a.TotalAssists != b.TotalAssists {
			return a.TotalAssists > b.TotalAssists
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PlayerID < b.PlayerID
	})
	return out, nil
}

// memTransactor serialises callers the way a row lock would.
type memTransactor struct{ mu sync.Mutex }

func (t *memTransactor) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(nil)
}

type publishedEvent struct {
	peladaID  int
	eventType string
	payload   interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(peladaID int, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{peladaID, eventType, payload})
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type recordingObserver struct {
	completed int
	rejected  []string
}

func (o *recordingObserver) DrawCompleted(time.Duration) { o.completed++ }
func (o *recordingObserver) DrawRejected(reason string)  { o.rejected = append(o.rejected, reason) }

var errBoom = errors.New("boom")

// fixture wires every service onto one memStore with an owner and a pelada.
type fixture struct {
	store    *memStore
	users    memUserRepo
	peladas  memPeladaRepo
	players  memPlayerRepo
	matches  memMatchRepo
	rankings memRankingRepo
	owner    *models.User
	stranger *models.User
	pelada   *models.Pelada
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{
		store:    s,
		users:    memUserRepo{s},
		peladas:  memPeladaRepo{s},
		players:  memPlayerRepo{s},
		matches:  memMatchRepo{s},
		rankings: memRankingRepo{s},
	}
	ctx := context.Background()
	f.owner = &models.User{Email: "dono@pelada.com"}
	_ = f.users.Create(ctx, f.owner)
	f.stranger = &models.User{Email: "outro@pelada.com"}
	_ = f.users.Create(ctx, f.stranger)
	f.pelada = &models.Pelada{Name: "Quinta", OwnerID: f.owner.ID}
	_ = f.peladas.Create(ctx, f.pelada)
	return f
}

// addPlayers creates n players with ratings n, n-1, ..., 1 and returns their ids.
func (f *fixture) addPlayers(n int) []int {
	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Player{Name: "Jogador", Rating: float64(n - i), PeladaID: f.pelada.ID}
		_ = f.players.Create(context.Background(), p)
		ids = append(ids, p.ID)
	}
	return ids
}
