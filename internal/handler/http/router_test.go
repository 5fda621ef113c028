package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/servicetest"
	userService "github.com/simpeg-id/simpeg-backend-go/internal/service/user"
)

func newTestRouter(t *testing.T, f authFixture) *chi.Mux {
	t.Helper()
	users := userService.NewUserService(f.users, servicetest.NewEmployees())

	return NewRouter(RouterOptions{
		Env:            "test",
		Version:        "test",
		AllowedOrigins: []string{"http://localhost:5173"},
		LogLevel:       slog.LevelError,
	}, f.jwt, f.authz, Handlers{
		Auth:           f.handler,
		Event:          NewEventHandler(nil, f.jwt),
		Status:         NewStatusHandler(),
		Dashboard:      NewDashboardHandler(nil, f.authz),
		Notification:   NewNotificationHandler(nil),
		Employee:       NewEmployeeHandler(nil),
		User:           NewUserHandler(users),
		Leave:          NewLeaveHandler(nil, nil, f.authz),
		StudyPermit:    NewStudyPermitHandler(nil, nil, f.authz),
		SalaryIncrease: NewSalaryIncreaseHandler(nil, nil, f.authz),
		Pension:        NewPensionHandler(nil, nil, f.authz),
	})
}

func bearer(t *testing.T, f authFixture, u user.User) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(u)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	f := newAuthFixture(t)
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RejectsRefreshTokenAsBearer(t *testing.T) {
	f := newAuthFixture(t)
	router := newTestRouter(t, f)
	refresh, _, err := f.jwt.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PermissionDenied(t *testing.T) {
	pegawai := testUser(t, "user-1", "budi", user.RolePegawai)
	f := newAuthFixture(t, pegawai)
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", bearer(t, f, pegawai))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_AdminListsUsers(t *testing.T) {
	admin := testUser(t, "user-1", "admin", user.RoleAdmin)
	f := newAuthFixture(t, admin, testUser(t, "user-2", "budi", user.RolePegawai))
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?page=1&limit=10", nil)
	req.Header.Set("Authorization", bearer(t, f, admin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["items"], 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["total"])
}

func TestRouter_LoggedOutTokenIsRejected(t *testing.T) {
	pegawai := testUser(t, "user-1", "budi", user.RolePegawai)
	f := newAuthFixture(t, pegawai)
	router := newTestRouter(t, f)
	header := bearer(t, f, pegawai)

	logout := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logout.Header.Set("Authorization", header)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, logout)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", header)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_StatusesArePublic(t *testing.T) {
	f := newAuthFixture(t)
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statuses/classify?status=DITOLAK", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	badge := data["badge"].(map[string]interface{})
	assert.Equal(t, "rejected", badge["category"])
	assert.Equal(t, "red", badge["color"])
}

func TestRouter_UnknownStatusGetsNeutralBadge(t *testing.T) {
	f := newAuthFixture(t)
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statuses/classify?status=entah", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	badge := data["badge"].(map[string]interface{})
	assert.Equal(t, "unknown", badge["category"])
	assert.Equal(t, "gray", badge["color"])
}

func TestRouter_EventStreamRequiresSSEToken(t *testing.T) {
	pegawai := testUser(t, "user-1", "budi", user.RolePegawai)
	f := newAuthFixture(t, pegawai)
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/stream", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	access, _, err := f.jwt.GenerateAccessToken(pegawai)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/events/stream?token="+access, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
