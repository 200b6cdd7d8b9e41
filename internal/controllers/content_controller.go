package controllers

import (
	"net/http"
	"strings"

	"gentil/internal/auth"
	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/services"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type ContentController struct {
	logger       providers.Logger
	affirmations services.AffirmationServiceInterface
	favorites    services.FavoriteServiceInterface
	cache        providers.CacheProviderInterface
}

func NewContentController(logger providers.Logger, affirmations services.AffirmationServiceInterface, favorites services.FavoriteServiceInterface, cache providers.CacheProviderInterface) *ContentController {
	return &ContentController{
		logger:       logger,
		affirmations: affirmations,
		favorites:    favorites,
		cache:        cache,
	}
}

type affirmationRef struct {
	AffirmationID string `json:"affirmation_id"`
}

type favoriteStatus struct {
	AffirmationID string `json:"affirmation_id"`
	Favorited     bool   `json:"favorited"`
}

func (cc *ContentController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := cc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func splitCategories(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// List serves ?category= as a substring match and ?categories=a,b as an
// exact match on any of the listed categories. Without either the newest
// affirmations are returned.
func (cc *ContentController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	category := strings.TrimSpace(q.Get("category"))
	categories := splitCategories(q.Get("categories"))
	key := "aff:" + category + ":" + strings.Join(categories, ",") + ":" + cast.ToString(limit)

	cc.serveFromCacheOrCompute(w, r, key, func() (any, error) {
		switch {
		case category != "":
			return cc.affirmations.ListByCategory(r.Context(), category, limit)
		case len(categories) > 0:
			return cc.affirmations.ListForUser(r.Context(), categories, limit)
		default:
			return cc.affirmations.List(r.Context(), limit)
		}
	})
}

func (cc *ContentController) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	var in models.NewAffirmation
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := cc.affirmations.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	cc.cache.Purge()
	writeJSON(w, http.StatusCreated, a)
}

// RecordRead is accepted from anonymous callers and ignored for them.
func (cc *ContentController) RecordRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	var ref affirmationRef
	if !decodeJSON(w, r, &ref) {
		return
	}
	if err := cc.affirmations.RecordRead(r.Context(), userID, ref.AffirmationID); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (cc *ContentController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	favs, err := cc.favorites.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (cc *ContentController) FavoriteStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("affirmation_id")
	fav, err := cc.favorites.IsFavorited(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteStatus{AffirmationID: id, Favorited: fav})
}

func (cc *ContentController) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var ref affirmationRef
	if !decodeJSON(w, r, &ref) {
		return
	}
	fav, err := cc.favorites.Toggle(r.Context(), userID, ref.AffirmationID)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteStatus{AffirmationID: ref.AffirmationID, Favorited: fav})
}

func (cc *ContentController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("affirmation_id")
	if err := cc.favorites.Remove(r.Context(), userID, id); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
