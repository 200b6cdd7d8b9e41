package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gentil/internal/models"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

func (s *SQLStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.clock.Now().UTC(),
	}
	_, err := s.exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *SQLStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.queryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const affirmationColumns = `id, texto, categoria, linguagem, created_at`

func scanAffirmations(rows *sql.Rows) ([]models.Affirmation, error) {
	defer rows.Close()
	out := make([]models.Affirmation, 0)
	for rows.Next() {
		var a models.Affirmation
		if err := rows.Scan(&a.ID, &a.Text, &a.Category, &a.Language, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListAffirmations(ctx context.Context, limit int) ([]models.Affirmation, error) {
	rows, err := s.query(ctx, `
		SELECT `+affirmationColumns+`
		FROM affirmations
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanAffirmations(rows)
}

// ListAffirmationsByCategory matches category as a case-insensitive substring.
func (s *SQLStore) ListAffirmationsByCategory(ctx context.Context, category string, limit int) ([]models.Affirmation, error) {
	rows, err := s.query(ctx, `
		SELECT `+affirmationColumns+`
		FROM affirmations
		WHERE LOWER(categoria) LIKE LOWER(?)
		ORDER BY created_at DESC
		LIMIT ?`,
		"%"+category+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	return scanAffirmations(rows)
}

func (s *SQLStore) ListAffirmationsInCategories(ctx context.Context, categories []string, limit int) ([]models.Affirmation, error) {
	if len(categories) == 0 {
		return s.ListAffirmations(ctx, limit)
	}
	args := make([]any, 0, len(categories)+1)
	for _, c := range categories {
		args = append(args, c)
	}
	args = append(args, limit)

	rows, err := s.query(ctx, `
		SELECT `+affirmationColumns+`
		FROM affirmations
		WHERE categoria IN (`+placeholders(len(categories))+`)
		ORDER BY created_at DESC
		LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	return scanAffirmations(rows)
}

func (s *SQLStore) CreateAffirmation(ctx context.Context, in models.NewAffirmation) (*models.Affirmation, error) {
	a := &models.Affirmation{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Category:  in.Category,
		Language:  in.Language,
		CreatedAt: s.clock.Now().UTC(),
	}
	_, err := s.exec(ctx, `
		INSERT INTO affirmations (`+affirmationColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Text, a.Category, a.Language, a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SQLStore) FindFavorite(ctx context.Context, userID, affirmationID string) (string, error) {
	var id string
	err := s.queryRow(ctx, `
		SELECT id FROM user_favorites
		WHERE user_id = ? AND affirmation_id = ?`,
		userID, affirmationID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (s *SQLStore) AddFavorite(ctx context.Context, userID, affirmationID string) error {
	_, err := s.exec(ctx, `
		INSERT INTO user_favorites (id, user_id, affirmation_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, affirmation_id) DO NOTHING`,
		uuid.NewString(), userID, affirmationID, s.clock.Now().UTC(),
	)
	return err
}

func (s *SQLStore) DeleteFavorite(ctx context.Context, favoriteID string) error {
	_, err := s.exec(ctx, `DELETE FROM user_favorites WHERE id = ?`, favoriteID)
	return err
}

func (s *SQLStore) RemoveFavorite(ctx context.Context, userID, affirmationID string) error {
	_, err := s.exec(ctx, `
		DELETE FROM user_favorites
		WHERE user_id = ? AND affirmation_id = ?`,
		userID, affirmationID,
	)
	return err
}

func (s *SQLStore) ListFavorites(ctx context.Context, userID string) ([]models.FavoriteAffirmation, error) {
	rows, err := s.query(ctx, `
		SELECT f.id, f.affirmation_id, COALESCE(a.texto, ''), COALESCE(a.categoria, ''), f.created_at
		FROM user_favorites f
		LEFT JOIN affirmations a ON a.id = f.affirmation_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FavoriteAffirmation, 0)
	for rows.Next() {
		var f models.FavoriteAffirmation
		if err := rows.Scan(&f.ID, &f.AffirmationID, &f.Text, &f.Category, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLStore) CountFavorites(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM user_favorites WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (s *SQLStore) RecordRead(ctx context.Context, userID, affirmationID string) error {
	_, err := s.exec(ctx, `
		INSERT INTO user_read_history (id, user_id, affirmation_id, read_at)
		VALUES (?, ?, ?, ?)`,
		uuid.NewString(), userID, affirmationID, s.clock.Now().UTC(),
	)
	return err
}

func (s *SQLStore) CountReads(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM user_read_history WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (s *SQLStore) UpsertProfile(ctx context.Context, p models.Profile) error {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	encoded, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, `
		INSERT INTO profiles (
			user_id, name, relationship_status, is_religious, signo, recent_feeling,
			feeling_cause, time_dedication, start_goal, categories, troubles,
			avoidance, goals, goals_avoidance, onboarding_completed, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name                 = excluded.name,
			relationship_status  = excluded.relationship_status,
			is_religious         = excluded.is_religious,
			signo                = excluded.signo,
			recent_feeling       = excluded.recent_feeling,
			feeling_cause        = excluded.feeling_cause,
			time_dedication      = excluded.time_dedication,
			start_goal           = excluded.start_goal,
			categories           = excluded.categories,
			troubles             = excluded.troubles,
			avoidance            = excluded.avoidance,
			goals                = excluded.goals,
			goals_avoidance      = excluded.goals_avoidance,
			onboarding_completed = excluded.onboarding_completed`,
		p.UserID, p.Name, p.RelationshipStatus, p.IsReligious, p.Signo, p.RecentFeeling,
		p.FeelingCause, p.TimeDedication, p.StartGoal, string(encoded), p.Troubles,
		p.Avoidance, p.Goals, p.GoalsAvoidance, p.OnboardingCompleted, s.clock.Now().UTC(),
	)
	return err
}

func (s *SQLStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var (
		p          models.Profile
		categories string
	)
	err := s.queryRow(ctx, `
		SELECT user_id, name, relationship_status, is_religious, signo, recent_feeling,
			feeling_cause, time_dedication, start_goal, categories, troubles,
			avoidance, goals, goals_avoidance, onboarding_completed, created_at
		FROM profiles
		WHERE user_id = ?`,
		userID,
	).Scan(
		&p.UserID, &p.Name, &p.RelationshipStatus, &p.IsReligious, &p.Signo, &p.RecentFeeling,
		&p.FeelingCause, &p.TimeDedication, &p.StartGoal, &categories, &p.Troubles,
		&p.Avoidance, &p.Goals, &p.GoalsAvoidance, &p.OnboardingCompleted, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if categories != "" {
		if err := json.Unmarshal([]byte(categories), &p.Categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return &p, nil
}
