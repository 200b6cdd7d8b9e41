package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gentil/internal/clock"
	"gentil/internal/models"

	"github.com/google/uuid"
)

type favoriteRow struct {
	id            string
	userID        string
	affirmationID string
	createdAt     time.Time
	seq           int
}

// MemoryStore implements Store in process memory. Data is lost on restart.
type MemoryStore struct {
	mu           sync.RWMutex
	clock        clock.Clock
	seq          int
	streaks      map[string]models.StreakRecord
	prefs        map[string]models.NotificationPreferences
	tokens       map[string]models.PushToken
	users        map[string]*models.User
	affirmations []models.Affirmation
	favorites    []favoriteRow
	reads        map[string]int
	profiles     map[string]models.Profile
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:    clk,
		streaks:  make(map[string]models.StreakRecord),
		prefs:    make(map[string]models.NotificationPreferences),
		tokens:   make(map[string]models.PushToken),
		users:    make(map[string]*models.User),
		reads:    make(map[string]int),
		profiles: make(map[string]models.Profile),
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Load(_ context.Context, userID string) (*models.StreakRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.streaks[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryStore) Save(_ context.Context, userID string, rec models.StreakRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.streaks[userID]; ok && prev.LastActivityDate == rec.LastActivityDate {
		return nil
	}
	m.streaks[userID] = rec
	return nil
}

func (m *MemoryStore) GetPreferences(_ context.Context, userID string) (*models.NotificationPreferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryStore) SavePreferences(_ context.Context, userID string, prefs models.NotificationPreferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[userID] = prefs
	return nil
}

func (m *MemoryStore) ListPreferences(_ context.Context) (map[string]models.NotificationPreferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]models.NotificationPreferences, len(m.prefs))
	for k, v := range m.prefs {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) SavePushToken(_ context.Context, token models.PushToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.UserID] = token
	return nil
}

func (m *MemoryStore) DeletePushToken(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, userID)
	return nil
}

func (m *MemoryStore) ListPushTokens(_ context.Context) ([]models.PushToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.PushToken, 0, len(m.tokens))
	for _, t := range m.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, email)
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    m.clock.Now().UTC(),
	}
	m.users[email] = u
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// newestFirst returns affirmations matching keep, newest first, at most limit.
func (m *MemoryStore) newestFirst(limit int, keep func(models.Affirmation) bool) []models.Affirmation {
	out := make([]models.Affirmation, 0)
	for i := len(m.affirmations) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(m.affirmations[i]) {
			out = append(out, m.affirmations[i])
		}
	}
	return out
}

func (m *MemoryStore) ListAffirmations(_ context.Context, limit int) ([]models.Affirmation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.newestFirst(limit, func(models.Affirmation) bool { return true }), nil
}

func (m *MemoryStore) ListAffirmationsByCategory(_ context.Context, category string, limit int) ([]models.Affirmation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(category)
	return m.newestFirst(limit, func(a models.Affirmation) bool {
		return strings.Contains(strings.ToLower(a.Category), needle)
	}), nil
}

func (m *MemoryStore) ListAffirmationsInCategories(ctx context.Context, categories []string, limit int) ([]models.Affirmation, error) {
	if len(categories) == 0 {
		return m.ListAffirmations(ctx, limit)
	}
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.newestFirst(limit, func(a models.Affirmation) bool {
		_, ok := set[a.Category]
		return ok
	}), nil
}

func (m *MemoryStore) CreateAffirmation(_ context.Context, in models.NewAffirmation) (*models.Affirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := models.Affirmation{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Category:  in.Category,
		Language:  in.Language,
		CreatedAt: m.clock.Now().UTC(),
	}
	m.affirmations = append(m.affirmations, a)
	return &a, nil
}

func (m *MemoryStore) FindFavorite(_ context.Context, userID, affirmationID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.favorites {
		if f.userID == userID && f.affirmationID == affirmationID {
			return f.id, nil
		}
	}
	return "", nil
}

func (m *MemoryStore) AddFavorite(_ context.Context, userID, affirmationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.favorites {
		if f.userID == userID && f.affirmationID == affirmationID {
			return nil
		}
	}
	m.seq++
	m.favorites = append(m.favorites, favoriteRow{
		id:            uuid.NewString(),
		userID:        userID,
		affirmationID: affirmationID,
		createdAt:     m.clock.Now().UTC(),
		seq:           m.seq,
	})
	return nil
}

func (m *MemoryStore) removeWhere(match func(favoriteRow) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.favorites[:0]
	for _, f := range m.favorites {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	m.favorites = kept
}

func (m *MemoryStore) DeleteFavorite(_ context.Context, favoriteID string) error {
	m.removeWhere(func(f favoriteRow) bool { return f.id == favoriteID })
	return nil
}

func (m *MemoryStore) RemoveFavorite(_ context.Context, userID, affirmationID string) error {
	m.removeWhere(func(f favoriteRow) bool { return f.userID == userID && f.affirmationID == affirmationID })
	return nil
}

func (m *MemoryStore) ListFavorites(_ context.Context, userID string) ([]models.FavoriteAffirmation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byID := make(map[string]models.Affirmation, len(m.affirmations))
	for _, a := range m.affirmations {
		byID[a.ID] = a
	}
	var rows []favoriteRow
	for _, f := range m.favorites {
		if f.userID == userID {
			rows = append(rows, f)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.After(rows[j].createdAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]models.FavoriteAffirmation, 0, len(rows))
	for _, f := range rows {
		a := byID[f.affirmationID]
		out = append(out, models.FavoriteAffirmation{
			ID:            f.id,
			AffirmationID: f.affirmationID,
			Text:          a.Text,
			Category:      a.Category,
			CreatedAt:     f.createdAt,
		})
	}
	return out, nil
}

func (m *MemoryStore) CountFavorites(_ context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, f := range m.favorites {
		if f.userID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) RecordRead(_ context.Context, userID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[userID]++
	return nil
}

func (m *MemoryStore) CountReads(_ context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads[userID], nil
}

func (m *MemoryStore) UpsertProfile(_ context.Context, p models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.profiles[p.UserID]; ok {
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = m.clock.Now().UTC()
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	m.profiles[p.UserID] = p
	return nil
}

func (m *MemoryStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
