package repositories

import (
	"context"
	"errors"

	"gentil/internal/models"
)

var (
	ErrNotFound  = errors.New("repositories: not found")
	ErrDuplicate = errors.New("repositories: already exists")
)

// StreakRepository satisfies streak.Store.
type StreakRepository interface {
	Load(ctx context.Context, userID string) (*models.StreakRecord, error)
	Save(ctx context.Context, userID string, rec models.StreakRecord) error
}

type PreferencesRepository interface {
	// GetPreferences returns (nil, nil) when the user never saved preferences.
	GetPreferences(ctx context.Context, userID string) (*models.NotificationPreferences, error)
	SavePreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error
	ListPreferences(ctx context.Context) (map[string]models.NotificationPreferences, error)
}

type PushTokenRepository interface {
	SavePushToken(ctx context.Context, token models.PushToken) error
	DeletePushToken(ctx context.Context, userID string) error
	ListPushTokens(ctx context.Context) ([]models.PushToken, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AffirmationRepository interface {
	ListAffirmations(ctx context.Context, limit int) ([]models.Affirmation, error)
	ListAffirmationsByCategory(ctx context.Context, category string, limit int) ([]models.Affirmation, error)
	ListAffirmationsInCategories(ctx context.Context, categories []string, limit int) ([]models.Affirmation, error)
	CreateAffirmation(ctx context.Context, a models.NewAffirmation) (*models.Affirmation, error)
}

type FavoriteRepository interface {
	// FindFavorite returns the favorite id, or "" when the affirmation is not a favorite.
	FindFavorite(ctx context.Context, userID, affirmationID string) (string, error)
	AddFavorite(ctx context.Context, userID, affirmationID string) error
	DeleteFavorite(ctx context.Context, favoriteID string) error
	RemoveFavorite(ctx context.Context, userID, affirmationID string) error
	ListFavorites(ctx context.Context, userID string) ([]models.FavoriteAffirmation, error)
	CountFavorites(ctx context.Context, userID string) (int, error)
}

type ReadHistoryRepository interface {
	RecordRead(ctx context.Context, userID, affirmationID string) error
	CountReads(ctx context.Context, userID string) (int, error)
}

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, p models.Profile) error
	// GetProfile returns (nil, nil) when no profile exists.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// Store is every repository backed by one database.
type Store interface {
	StreakRepository
	PreferencesRepository
	PushTokenRepository
	UserRepository
	AffirmationRepository
	FavoriteRepository
	ReadHistoryRepository
	ProfileRepository
	Close() error
}
