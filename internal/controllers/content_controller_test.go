package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gentil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, e *testEnv, items ...models.NewAffirmation) []models.Affirmation {
	t.Helper()
	out := make([]models.Affirmation, 0, len(items))
	for _, in := range items {
		a, err := e.store.CreateAffirmation(context.Background(), in)
		require.NoError(t, err)
		out = append(out, *a)
		e.clock.Advance(time.Minute)
	}
	return out
}

func defaultSeed(t *testing.T, e *testEnv) []models.Affirmation {
	return seed(t, e,
		models.NewAffirmation{Text: "Eu sou suficiente", Category: "Autoestima", Language: "pt"},
		models.NewAffirmation{Text: "Eu mereço amor", Category: "Amor", Language: "pt"},
		models.NewAffirmation{Text: "Eu confio em mim", Category: "Autoconfiança", Language: "pt"},
	)
}

func TestList_NewestFirst(t *testing.T) {
	e := newTestEnv()
	defaultSeed(t, e)

	rr := serve(e.content.List, newRequest(t, http.MethodGet, "/affirmations", "", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[[]models.Affirmation](t, rr)
	require.Len(t, got, 3)
	assert.Equal(t, "Eu confio em mim", got[0].Text)
}

func TestList_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"category substring", "?category=auto", []string{"Autoconfiança", "Autoestima"}},
		{"categories exact", "?categories=Amor,Autoestima", []string{"Amor", "Autoestima"}},
		{"limit", "?limit=1", []string{"Autoconfiança"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv()
			defaultSeed(t, e)

			rr := serve(e.content.List, newRequest(t, http.MethodGet, "/affirmations"+tt.query, "", nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var got []string
			for _, a := range decodeBody[[]models.Affirmation](t, rr) {
				got = append(got, a.Category)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList_InvalidLimit(t *testing.T) {
	e := newTestEnv()
	rr := serve(e.content.List, newRequest(t, http.MethodGet, "/affirmations?limit=abc", "", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestList_ServedFromCache(t *testing.T) {
	e := newTestEnv()
	e.cache.Set("aff:::0", []byte(`[{"id":"cached"}]`))

	rr := serve(e.content.List, newRequest(t, http.MethodGet, "/affirmations", "", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":"cached"}]`, rr.Body.String())
}

func TestCreate_PurgesCache(t *testing.T) {
	e := newTestEnv()
	serve(e.content.List, newRequest(t, http.MethodGet, "/affirmations", "", nil))
	require.NotEmpty(t, e.cache.Data)

	rr := serve(e.content.Create, newRequest(t, http.MethodPost, "/affirmations", "u1", models.NewAffirmation{
		Text: " Eu sou luz ", Category: "Espiritualidade", Language: "pt",
	}))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "Eu sou luz", decodeBody[models.Affirmation](t, rr).Text)
	assert.Empty(t, e.cache.Data)
	assert.Equal(t, 1, e.cache.Purges)
}

func TestCreate_Validation(t *testing.T) {
	e := newTestEnv()
	rr := serve(e.content.Create, newRequest(t, http.MethodPost, "/affirmations", "u1", models.NewAffirmation{Text: "x"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(e.content.Create, newRequest(t, http.MethodPost, "/affirmations", "", models.NewAffirmation{Text: "x"}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRecordRead(t *testing.T) {
	e := newTestEnv()
	a := defaultSeed(t, e)[0]

	rr := serve(e.content.RecordRead, newRequest(t, http.MethodPost, "/affirmations/read", "u1", affirmationRef{AffirmationID: a.ID}))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(e.content.RecordRead, newRequest(t, http.MethodPost, "/affirmations/read", "", affirmationRef{AffirmationID: a.ID}))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	n, err := e.store.CountReads(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFavorites_ToggleStatusListRemove(t *testing.T) {
	e := newTestEnv()
	items := defaultSeed(t, e)

	rr := serve(e.content.ToggleFavorite, newRequest(t, http.MethodPost, "/favorites", "u1", affirmationRef{AffirmationID: items[0].ID}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeBody[favoriteStatus](t, rr).Favorited)

	rr = serve(e.content.FavoriteStatus, newRequest(t, http.MethodGet, "/favorites/status?affirmation_id="+items[0].ID, "u1", nil))
	assert.True(t, decodeBody[favoriteStatus](t, rr).Favorited)

	rr = serve(e.content.ListFavorites, newRequest(t, http.MethodGet, "/favorites", "u1", nil))
	favs := decodeBody[[]models.FavoriteAffirmation](t, rr)
	require.Len(t, favs, 1)
	assert.Equal(t, "Eu sou suficiente", favs[0].Text)

	rr = serve(e.content.RemoveFavorite, newRequest(t, http.MethodDelete, "/favorites?affirmation_id="+items[0].ID, "u1", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(e.content.ListFavorites, newRequest(t, http.MethodGet, "/favorites", "u1", nil))
	assert.Empty(t, decodeBody[[]models.FavoriteAffirmation](t, rr))
}

func TestFavorites_ToggleTwiceUnfavorites(t *testing.T) {
	e := newTestEnv()
	a := defaultSeed(t, e)[1]

	serve(e.content.ToggleFavorite, newRequest(t, http.MethodPost, "/favorites", "u1", affirmationRef{AffirmationID: a.ID}))
	rr := serve(e.content.ToggleFavorite, newRequest(t, http.MethodPost, "/favorites", "u1", affirmationRef{AffirmationID: a.ID}))

	assert.False(t, decodeBody[favoriteStatus](t, rr).Favorited)
}

func TestFavorites_RequireUser(t *testing.T) {
	e := newTestEnv()
	rr := serve(e.content.ListFavorites, newRequest(t, http.MethodGet, "/favorites", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
