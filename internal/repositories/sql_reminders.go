package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gentil/internal/models"
)

func (s *SQLStore) Load(ctx context.Context, userID string) (*models.StreakRecord, error) {
	var rec models.StreakRecord
	err := s.queryRow(ctx, `
		SELECT current_streak, longest_streak, last_activity_date
		FROM user_streaks
		WHERE user_id = ?`,
		userID,
	).Scan(&rec.CurrentStreak, &rec.LongestStreak, &rec.LastActivityDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save writes the whole record in one statement. An existing row is only
// replaced when the activity date changes, so concurrent same-day writers
// cannot increment twice.
func (s *SQLStore) Save(ctx context.Context, userID string, rec models.StreakRecord) error {
	_, err := s.exec(ctx, `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_activity_date, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak     = excluded.current_streak,
			longest_streak     = excluded.longest_streak,
			last_activity_date = excluded.last_activity_date,
			updated_at         = excluded.updated_at
		WHERE user_streaks.last_activity_date <> excluded.last_activity_date`,
		userID, rec.CurrentStreak, rec.LongestStreak, rec.LastActivityDate, s.clock.Now().UTC(),
	)
	return err
}

func scanPreferences(perDay int, start, end string) (models.NotificationPreferences, error) {
	st, err := models.ParseTimeOfDay(start)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	et, err := models.ParseTimeOfDay(end)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	return models.NotificationPreferences{PerDay: perDay, StartTime: st, EndTime: et}, nil
}

func (s *SQLStore) GetPreferences(ctx context.Context, userID string) (*models.NotificationPreferences, error) {
	var (
		perDay     int
		start, end string
	)
	err := s.queryRow(ctx, `
		SELECT per_day, start_time, end_time
		FROM user_notification_prefs
		WHERE user_id = ?`,
		userID,
	).Scan(&perDay, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	prefs, err := scanPreferences(perDay, start, end)
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (s *SQLStore) SavePreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error {
	_, err := s.exec(ctx, `
		INSERT INTO user_notification_prefs (user_id, per_day, start_time, end_time, enabled, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			per_day    = excluded.per_day,
			start_time = excluded.start_time,
			end_time   = excluded.end_time,
			enabled    = excluded.enabled,
			updated_at = excluded.updated_at`,
		userID, prefs.PerDay, prefs.StartTime.String(), prefs.EndTime.String(), prefs.PerDay > 0, s.clock.Now().UTC(),
	)
	return err
}

func (s *SQLStore) ListPreferences(ctx context.Context) (map[string]models.NotificationPreferences, error) {
	rows, err := s.query(ctx, `SELECT user_id, per_day, start_time, end_time FROM user_notification_prefs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.NotificationPreferences)
	for rows.Next() {
		var (
			userID, start, end string
			perDay             int
		)
		if err := rows.Scan(&userID, &perDay, &start, &end); err != nil {
			return nil, err
		}
		prefs, err := scanPreferences(perDay, start, end)
		if err != nil {
			return nil, err
		}
		out[userID] = prefs
	}
	return out, rows.Err()
}

func (s *SQLStore) SavePushToken(ctx context.Context, token models.PushToken) error {
	_, err := s.exec(ctx, `
		INSERT INTO push_tokens (user_id, token, platform, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			token      = excluded.token,
			platform   = excluded.platform,
			updated_at = excluded.updated_at`,
		token.UserID, token.Token, token.Platform, s.clock.Now().UTC(),
	)
	return err
}

func (s *SQLStore) DeletePushToken(ctx context.Context, userID string) error {
	_, err := s.exec(ctx, `DELETE FROM push_tokens WHERE user_id = ?`, userID)
	return err
}

func (s *SQLStore) ListPushTokens(ctx context.Context) ([]models.PushToken, error) {
	rows, err := s.query(ctx, `SELECT user_id, token, platform FROM push_tokens ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PushToken
	for rows.Next() {
		var t models.PushToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
