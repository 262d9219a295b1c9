package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/lootcase"
	"github.com/linkup-app/linkup-engine/internal/memstore"
	"github.com/linkup-app/linkup-engine/internal/progression"
	"github.com/linkup-app/linkup-engine/internal/streak"
)

const testRetries = 5

type testEnv struct {
	store       *memstore.ProgressionStore
	progression progression.Service
	streak      streak.Service
	lootcase    lootcase.Service
	achievement achievement.Service
	router      chi.Router
}

const handlerTestCases = `{
	"cases": [
		{"id": "starter", "price": 100, "items": [
			{"type": "sticker", "value": 20},
			{"type": "badge", "value": 150}
		]}
	]
}`

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.NewProgressionStore()
	bus := event.NewMemoryBus()
	cases, err := catalog.ParseCaseCatalog([]byte(handlerTestCases))
	require.NoError(t, err)

	env := &testEnv{
		store:       store,
		progression: progression.NewService(store, bus, testRetries),
		streak:      streak.NewService(store, bus, testRetries),
		lootcase:    lootcase.NewService(store, cases, bus, testRetries),
		achievement: achievement.NewService(store, bus, testRetries),
	}

	r := chi.NewRouter()
	r.Post("/api/v1/users/register", HandleRegisterUser(env.progression))
	r.Post("/api/v1/xp/grant", HandleGrantXP(env.progression))
	r.Post("/api/v1/checkin", HandleCheckIn(env.streak))
	r.Post("/api/v1/cases/{caseID}/open", HandleOpenCase(env.lootcase))
	r.Post("/api/v1/achievements/check", HandleCheckAchievements(env.achievement))
	r.Get("/api/v1/users/{userID}/progression", HandleGetProgression(env.progression))
	r.Get("/api/v1/users/{userID}/achievements", HandleGetAchievements(env.achievement))
	env.router = r

	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(t *testing.T, userID, username string) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/v1/users/register", RegisterUserRequest{UserID: userID, Username: username})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleRegisterUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/users/register", RegisterUserRequest{UserID: "user-1", Username: "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.ProgressionRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Level)
}

func TestHandleRegisterUser_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/users/register", RegisterUserRequest{UserID: "user-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGrantXP(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	rec := env.do(t, http.MethodPost, "/api/v1/xp/grant", GrantXPRequest{
		UserID: "user-1",
		Action: string(domain.ActionQuestCompleted),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.XPGainResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(50), result.XPGained)
	assert.Contains(t, result.Unlocked, domain.AchievementID("first_quest"))
}

func TestHandleGrantXP_UserNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/xp/grant", GrantXPRequest{
		UserID: "ghost",
		Action: string(domain.ActionQuestCompleted),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgUserNotFoundError, resp.Error)
}

func TestHandleGrantXP_InvalidBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/xp/grant", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheckIn(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	rec := env.do(t, http.MethodPost, "/api/v1/checkin", CheckInRequest{UserID: "user-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.CheckInResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Streak)
	assert.False(t, result.AlreadyCheckedIn)

	// Same-day repeat is reported, not an error
	rec = env.do(t, http.MethodPost, "/api/v1/checkin", CheckInRequest{UserID: "user-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.AlreadyCheckedIn)
}

func TestHandleOpenCase(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	// Seed balance to afford the case
	ctx := context.Background()
	stored, err := env.store.GetRecord(ctx, "user-1")
	require.NoError(t, err)
	expected := stored.Version
	stored.Balance = 500
	stored.Version++
	require.NoError(t, env.store.ApplyProgression(ctx, stored, expected, domain.ProgressionChange{}))

	rec := env.do(t, http.MethodPost, "/api/v1/cases/starter/open", OpenCaseRequest{UserID: "user-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.DrawResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(400), result.Balance)
	assert.NotEmpty(t, result.Item.Type)
}

func TestHandleOpenCase_InsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	rec := env.do(t, http.MethodPost, "/api/v1/cases/starter/open", OpenCaseRequest{UserID: "user-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOpenCase_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	rec := env.do(t, http.MethodPost, "/api/v1/cases/nope/open", OpenCaseRequest{UserID: "user-1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCheckAchievements(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	// No actions yet: nothing unlocks
	rec := env.do(t, http.MethodPost, "/api/v1/achievements/check", CheckAchievementsRequest{
		UserID: "user-1",
		Action: string(domain.ActionQuestCompleted),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckAchievementsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Unlocked)
}

func TestHandleCheckAchievements_RejectsUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/achievements/check", CheckAchievementsRequest{
		UserID: "user-1",
		Action: "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetProgression(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	env.do(t, http.MethodPost, "/api/v1/xp/grant", GrantXPRequest{
		UserID: "user-1",
		Action: string(domain.ActionMeetingJoined),
	})

	rec := env.do(t, http.MethodGet, "/api/v1/users/user-1/progression", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.ProgressionSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(25), snap.TotalXP)
	assert.Equal(t, int64(25), snap.Skills[domain.SkillSocial])
	assert.Positive(t, snap.XPToNextLevel)
}

func TestHandleGetProgression_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/users/ghost/progression", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetAchievements(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	env.do(t, http.MethodPost, "/api/v1/xp/grant", GrantXPRequest{
		UserID: "user-1",
		Action: string(domain.ActionQuestCompleted),
	})

	rec := env.do(t, http.MethodGet, "/api/v1/users/user-1/achievements", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var unlocked []domain.UnlockedAchievement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unlocked))
	require.Len(t, unlocked, 1)
	assert.Equal(t, domain.AchievementID("first_quest"), unlocked[0].AchievementID)
}
