package services

import (
	"context"
	"strings"

	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/repositories"

	"github.com/gookit/validate"
)

const (
	DefaultListLimit     = 20
	DefaultCategoryLimit = 30
	MaxListLimit         = 200
)

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, MaxListLimit)
}

type AffirmationServiceInterface interface {
	List(ctx context.Context, limit int) ([]models.Affirmation, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]models.Affirmation, error)
	ListForUser(ctx context.Context, categories []string, limit int) ([]models.Affirmation, error)
	Create(ctx context.Context, in models.NewAffirmation) (*models.Affirmation, error)
	RecordRead(ctx context.Context, userID, affirmationID string) error
}

type AffirmationService struct {
	affirmations repositories.AffirmationRepository
	reads        repositories.ReadHistoryRepository
	logger       providers.Logger
}

func NewAffirmationService(affirmations repositories.AffirmationRepository, reads repositories.ReadHistoryRepository, logger providers.Logger) *AffirmationService {
	return &AffirmationService{affirmations: affirmations, reads: reads, logger: logger}
}

// List returns the newest affirmations.
func (s *AffirmationService) List(ctx context.Context, limit int) ([]models.Affirmation, error) {
	out, err := s.affirmations.ListAffirmations(ctx, clampLimit(limit, DefaultListLimit))
	if err != nil {
		return nil, storageErr("list affirmations", err)
	}
	return out, nil
}

// ListByCategory matches category case-insensitively anywhere in the name.
func (s *AffirmationService) ListByCategory(ctx context.Context, category string, limit int) ([]models.Affirmation, error) {
	out, err := s.affirmations.ListAffirmationsByCategory(ctx, strings.TrimSpace(category), clampLimit(limit, DefaultCategoryLimit))
	if err != nil {
		return nil, storageErr("list affirmations by category", err)
	}
	return out, nil
}

// ListForUser restricts to the given categories, or lists everything when
// there are none.
func (s *AffirmationService) ListForUser(ctx context.Context, categories []string, limit int) ([]models.Affirmation, error) {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	out, err := s.affirmations.ListAffirmationsInCategories(ctx, cleaned, clampLimit(limit, DefaultListLimit))
	if err != nil {
		return nil, storageErr("list affirmations for user", err)
	}
	return out, nil
}

func (s *AffirmationService) Create(ctx context.Context, in models.NewAffirmation) (*models.Affirmation, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Category = strings.TrimSpace(in.Category)
	in.Language = strings.TrimSpace(in.Language)

	v := validate.Struct(&in)
	v.StopOnError = false
	if !v.Validate() {
		fields := map[string]string{}
		for field, msgs := range v.Errors {
			for _, msg := range msgs {
				fields[field] = msg
				break
			}
		}
		return nil, &ValidationError{Fields: fields}
	}

	a, err := s.affirmations.CreateAffirmation(ctx, in)
	if err != nil {
		return nil, storageErr("create affirmation", err)
	}
	s.logger.Infof(providers.TypeApp, "Created affirmation %s in %s", a.ID, a.Category)
	return a, nil
}

// RecordRead appends to the user's read history. Anonymous reads are ignored.
func (s *AffirmationService) RecordRead(ctx context.Context, userID, affirmationID string) error {
	if userID == "" {
		return nil
	}
	if affirmationID == "" {
		return &ValidationError{Fields: map[string]string{"affirmation_id": "affirmation_id is required"}}
	}
	if err := s.reads.RecordRead(ctx, userID, affirmationID); err != nil {
		return storageErr("record read", err)
	}
	return nil
}

type FavoriteServiceInterface interface {
	IsFavorited(ctx context.Context, userID, affirmationID string) (bool, error)
	Toggle(ctx context.Context, userID, affirmationID string) (bool, error)
	List(ctx context.Context, userID string) ([]models.FavoriteAffirmation, error)
	Remove(ctx context.Context, userID, affirmationID string) error
	Count(ctx context.Context, userID string) (int, error)
}

type FavoriteService struct {
	favorites repositories.FavoriteRepository
}

func NewFavoriteService(favorites repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

func (s *FavoriteService) IsFavorited(ctx context.Context, userID, affirmationID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	id, err := s.favorites.FindFavorite(ctx, userID, affirmationID)
	if err != nil {
		return false, storageErr("find favorite", err)
	}
	return id != "", nil
}

// Toggle flips the favorite and returns whether it is now favorited.
func (s *FavoriteService) Toggle(ctx context.Context, userID, affirmationID string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	if affirmationID == "" {
		return false, &ValidationError{Fields: map[string]string{"affirmation_id": "affirmation_id is required"}}
	}
	id, err := s.favorites.FindFavorite(ctx, userID, affirmationID)
	if err != nil {
		return false, storageErr("find favorite", err)
	}
	if id != "" {
		if err = s.favorites.DeleteFavorite(ctx, id); err != nil {
			return true, storageErr("delete favorite", err)
		}
		return false, nil
	}
	if err = s.favorites.AddFavorite(ctx, userID, affirmationID); err != nil {
		return false, storageErr("add favorite", err)
	}
	return true, nil
}

// List returns the user's favorites, newest first. Anonymous users have none.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]models.FavoriteAffirmation, error) {
	if userID == "" {
		return []models.FavoriteAffirmation{}, nil
	}
	out, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		return nil, storageErr("list favorites", err)
	}
	return out, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, affirmationID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.favorites.RemoveFavorite(ctx, userID, affirmationID); err != nil {
		return storageErr("remove favorite", err)
	}
	return nil
}

func (s *FavoriteService) Count(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	n, err := s.favorites.CountFavorites(ctx, userID)
	if err != nil {
		return 0, storageErr("count favorites", err)
	}
	return n, nil
}
