package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ekgus419/go-api-boilerplate/internal/application/services"
	"github.com/ekgus419/go-api-boilerplate/internal/config"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/cache"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/db/postgres"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/mailer"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/ratelimit"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/token"
	"github.com/ekgus419/go-api-boilerplate/internal/messaging"
)

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&postgres.UserModel{}))

	log := zap.NewNop()
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	userRepo := postgres.NewUserRepository(db)
	tokenProvider := token.NewProvider("test-secret", 15*time.Minute, 24*time.Hour)
	mail := mailer.New(config.MailConfig{}, log)
	publisher, err := messaging.NewPublisher(config.NatsConfig{}, log)
	require.NoError(t, err)

	limiter := ratelimit.NewKeyedLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)

	userService := services.NewUserService(userRepo, redisCache, mail, publisher, log)
	authService := services.NewAuthService(userRepo, tokenProvider, redisCache, limiter, 24*time.Hour, log)

	return NewServer(NewUserHandler(userService), NewAuthHandler(authService), tokenProvider, log)
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func signupAndLogin(t *testing.T, e *echo.Echo, username string) (userId, accessToken, refreshToken string) {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"secret123"}`, username, username+"@example.com")
	rec := doJSON(e, http.MethodPost, "/v1/users", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var user struct {
		Id string `json:"id"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &user))

	rec = doJSON(e, http.MethodPost, "/v1/auth/login", fmt.Sprintf(`{"username":%q,"password":"secret123"}`, username), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &tokens))

	return user.Id, tokens.AccessToken, tokens.RefreshToken
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateUserEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"username":"john_doe","email":"john@example.com","full_name":"John Doe","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "success", env.Status)
	assert.Contains(t, string(env.Data), `"john_doe"`)
	assert.NotContains(t, string(env.Data), "password")
}

func TestCreateUserValidation(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"username":"","email":"not-an-email","password":"123"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "fail", env.Status)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestCreateUserDuplicate(t *testing.T) {
	e := newTestServer(t)
	signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"username":"john_doe","email":"dup@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeEnvelope(t, rec).Status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/users/me", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRejectedByMiddleware(t *testing.T) {
	e := newTestServer(t)
	_, _, refreshToken := signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodGet, "/v1/users/me", "", refreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProfile(t *testing.T) {
	e := newTestServer(t)
	_, accessToken, _ := signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodGet, "/v1/users/me", "", accessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"john_doe"`)
}

func TestListUsersEndpoint(t *testing.T) {
	e := newTestServer(t)
	_, accessToken, _ := signupAndLogin(t, e, "alice")
	signupAndLogin(t, e, "bob")

	rec := doJSON(e, http.MethodGet, "/v1/users?page=1&size=1&sort_by=username&order=asc", "", accessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items      []json.RawMessage `json:"items"`
		Total      int64             `json:"total"`
		TotalPages int64             `json:"total_pages"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(2), page.TotalPages)

	rec = doJSON(e, http.MethodGet, "/v1/users?order=sideways", "", accessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/users?sort_by=password", "", accessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	e := newTestServer(t)
	userId, accessToken, _ := signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodGet, "/v1/users/"+userId, "", accessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/users/not-a-uuid", "", accessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/users/00000000-0000-0000-0000-000000000001", "", accessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	e := newTestServer(t)
	userId, accessToken, _ := signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodPatch, "/v1/users/"+userId+"/password",
		`{"password":"newsecret456"}`, accessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password updated successfully", decodeEnvelope(t, rec).Message)

	// Old password no longer works; the new one does.
	rec = doJSON(e, http.MethodPost, "/v1/auth/login", `{"username":"john_doe","password":"secret123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/auth/login", `{"username":"john_doe","password":"newsecret456"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPatch, "/v1/users/"+userId+"/password", `{"password":"123"}`, accessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteUserEndpoint(t *testing.T) {
	e := newTestServer(t)
	userId, accessToken, _ := signupAndLogin(t, e, "john_doe")
	_, otherToken, _ := signupAndLogin(t, e, "alice")

	rec := doJSON(e, http.MethodDelete, "/v1/users/"+userId, "", otherToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeEnvelope(t, rec).Message)

	rec = doJSON(e, http.MethodGet, "/v1/users/"+userId, "", accessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSoftDeleteUserEndpoint(t *testing.T) {
	e := newTestServer(t)
	userId, _, _ := signupAndLogin(t, e, "john_doe")
	_, otherToken, _ := signupAndLogin(t, e, "alice")

	rec := doJSON(e, http.MethodPatch, "/v1/users/"+userId+"/soft-delete", "", otherToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User soft deleted successfully", decodeEnvelope(t, rec).Message)

	rec = doJSON(e, http.MethodGet, "/v1/users/"+userId, "", otherToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRefreshEndpoint(t *testing.T) {
	e := newTestServer(t)
	_, _, refreshToken := signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodPost, "/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, refreshToken, tokens.RefreshToken)

	rec = doJSON(e, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"garbage"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLogoutEndpoint(t *testing.T) {
	e := newTestServer(t)
	_, _, refreshToken := signupAndLogin(t, e, "john_doe")

	rec := doJSON(e, http.MethodPost, "/v1/auth/logout",
		fmt.Sprintf(`{"username":"john_doe","refresh_token":%q}`, refreshToken), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decodeEnvelope(t, rec).Message)

	// The refresh token is dead after logout.
	rec = doJSON(e, http.MethodPost, "/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"username":"nobody","password":"secret123"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	e := newTestServer(t)
	signupAndLogin(t, e, "john_doe")

	expiredProvider := token.NewProvider("test-secret", -time.Minute, -time.Minute)
	expired, err := expiredProvider.GenerateAccessToken("john_doe")
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/v1/users/me", "", expired)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expired", decodeEnvelope(t, rec).Message)
}
