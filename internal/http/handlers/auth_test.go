package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelboada21/PruebaCVisual/internal/http/middleware"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/users"
)

type memUserRepo struct {
	byEmail map[string]*users.User
	nextID  int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*users.User{}, nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, u *users.User) error {
	key := strings.ToLower(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return users.ErrEmailTaken
	}
	u.ID = r.nextID
	r.nextID++
	r.byEmail[key] = u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func authRouter(repo users.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := users.NewService(repo, testTokenCfg, logger)

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger))
	r.POST("/registro", NewRegisterHandler(svc).Post)
	r.POST("/login", NewLoginHandler(svc).Post)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{"name":"Ana","surname":"Boada","email":"ana@example.com","password":"s3cret-pass"}`

func TestRegister_Created(t *testing.T) {
	r := authRouter(newMemUserRepo())

	w := postJSON(r, "/registro", registerBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestRegister_DuplicateEmailIs400(t *testing.T) {
	r := authRouter(newMemUserRepo())

	require.Equal(t, http.StatusOK, postJSON(r, "/registro", registerBody).Code)

	w := postJSON(r, "/registro", registerBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestRegister_ValidationErrors(t *testing.T) {
	r := authRouter(newMemUserRepo())

	for name, body := range map[string]string{
		"missing name":   `{"surname":"Boada","email":"a@example.com","password":"s3cret-pass"}`,
		"bad email":      `{"name":"Ana","surname":"Boada","email":"not-an-email","password":"s3cret-pass"}`,
		"short password": `{"name":"Ana","surname":"Boada","email":"a@example.com","password":"short"}`,
	} {
		w := postJSON(r, "/registro", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestLogin_IssuesToken(t *testing.T) {
	r := authRouter(newMemUserRepo())
	require.Equal(t, http.StatusOK, postJSON(r, "/registro", registerBody).Code)

	w := postJSON(r, "/login", `{"email":"ana@example.com","password":"s3cret-pass"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"`)
}

func TestLogin_BadCredentialsAreIndistinct(t *testing.T) {
	r := authRouter(newMemUserRepo())
	require.Equal(t, http.StatusOK, postJSON(r, "/registro", registerBody).Code)

	wrongPassword := postJSON(r, "/login", `{"email":"ana@example.com","password":"wrong-password"}`)
	unknownEmail := postJSON(r, "/login", `{"email":"nobody@example.com","password":"s3cret-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}
