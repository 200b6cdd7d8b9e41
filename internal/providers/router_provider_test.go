package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	})
}

func serve(t *testing.T, h http.Handler, method string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/test", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", namedHandler("get"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/test", routes[0].Url)
}

func TestRouterProvider_MethodsShareOneRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/favorites", namedHandler("list"))
	rp.Post("/favorites", namedHandler("toggle"))
	rp.Delete("/favorites", namedHandler("remove"))
	rp.Get("/streak", namedHandler("streak"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/favorites", routes[0].Url)
	assert.Equal(t, "/streak", routes[1].Url)

	h := routes[0].Handler
	assert.Equal(t, "list", serve(t, h, http.MethodGet).Body.String())
	assert.Equal(t, "toggle", serve(t, h, http.MethodPost).Body.String())
	assert.Equal(t, "remove", serve(t, h, http.MethodDelete).Body.String())
}

func TestRouterProvider_PutRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Put("/onboarding", namedHandler("save"))

	rr := serve(t, rp.GetRoutes()[0].Handler, http.MethodPut)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "save", rr.Body.String())
}

func TestRouterProvider_UnknownMethodRejected(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", namedHandler("get"))
	rp.Put("/test", namedHandler("put"))

	rr := serve(t, rp.GetRoutes()[0].Handler, http.MethodPost)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, PUT", rr.Header().Get("Allow"))
}

func TestRouterProvider_LaterRegistrationWins(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", namedHandler("first"))
	rp.Get("/test", namedHandler("second"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "second", serve(t, routes[0].Handler, http.MethodGet).Body.String())
}
