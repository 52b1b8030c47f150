package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/adapters/persistence/blob"
	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
	"clinic-queue/internal/config"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
	svc *Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerOn(t, recordstore.NewBlobStore(blob.NewMemory()), logger.Discard())
}

func newTestServerOn(t *testing.T, store recordstore.Store, log *logger.Logger) *testServer {
	t.Helper()

	publicDir := t.TempDir()
	for _, page := range []string{"patient", "doctor", "admin", "login"} {
		body := []byte("<h1>" + page + " page</h1>")
		require.NoError(t, os.WriteFile(filepath.Join(publicDir, page+".html"), body, 0o644))
	}

	cfg := &config.Config{
		AppMode:   "dev",
		PublicDir: publicDir,
		JWT:       config.JWTConfig{Secret: "test-secret", SessionMinutes: 60},
		Cookie:    config.CookieConfig{Name: "session", SameSite: "lax"},
		Queue:     config.QueueConfig{AvgTimePerPatient: 5},
		Security:  config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Backup:    config.BackupConfig{Keep: 3},
	}

	require.NoError(t, config.NewSeeder(store, cfg).Run(context.Background()))

	collector := metrics.New()
	svc := NewServices(store, cfg, collector, log)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, cfg, collector)
	Setup(app, svc, cfg)

	return &testServer{t: t, app: app, svc: svc}
}

func (s *testServer) do(req *http.Request, session string) *http.Response {
	s.t.Helper()
	if session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: session})
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func (s *testServer) postJSON(path, body, session string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, session)
}

func (s *testServer) postForm(path string, form url.Values, session string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, session)
}

func (s *testServer) get(path, session string) *http.Response {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil), session)
}

func (s *testServer) register(username, department string) {
	s.t.Helper()
	resp := s.postJSON("/register", `{"username":"`+username+`","password":"pw","department":"`+department+`"}`, "")
	require.Equal(s.t, http.StatusCreated, resp.StatusCode)
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	resp := s.postJSON("/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(s.t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			assert.True(s.t, c.HttpOnly)
			return c.Value
		}
	}
	s.t.Fatal("no session cookie")
	return ""
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

type ticket struct {
	TokenNumber          int `json:"tokenNumber"`
	QueuePosition        int `json:"queuePosition"`
	EstimatedWaitingTime int `json:"estimatedWaitingTime"`
}

func TestQueueScenario(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", "General")
	s.register("bob", "General")
	s.register("carol", "General")

	alice := s.login("alice", "pw")
	bob := s.login("bob", "pw")
	carol := s.login("carol", "pw")
	doctor := s.login("doctor1", "123")

	assert.Equal(t, ticket{1, 1, 5}, decode[ticket](t, s.postJSON("/getToken", "", alice)))
	assert.Equal(t, ticket{2, 2, 10}, decode[ticket](t, s.postJSON("/getToken", "", bob)))

	state := decode[models.QueueState](t, s.postJSON("/next", "", doctor))
	assert.Equal(t, 1, state.CurrentToken)

	// /token is the legacy alias
	assert.Equal(t, ticket{3, 2, 10}, decode[ticket](t, s.postJSON("/token", "", carol)))

	resp := s.get("/status", "")
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
	assert.Equal(t, models.QueueState{LastToken: 3, CurrentToken: 1, AvgTimePerPatient: 5}, decode[models.QueueState](t, resp))

	history := decode[[]models.TokenEntry](t, s.get("/myTokens", alice))
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Token)

	history = decode[[]models.TokenEntry](t, s.get("/history", carol))
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].Token)
}

func TestNextWithEmptyQueueIsNoop(t *testing.T) {
	s := newTestServer(t)
	doctor := s.login("doctor1", "123")

	state := decode[models.QueueState](t, s.postJSON("/next", "", doctor))
	assert.Equal(t, models.QueueState{AvgTimePerPatient: 5}, state)
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", "General")
	alice := s.login("alice", "pw")
	doctor := s.login("doctor1", "123")

	assert.Equal(t, http.StatusOK, s.get("/status", "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, s.get("/myTokens", "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, s.postJSON("/getToken", "", "not-a-token").StatusCode)
	assert.Equal(t, http.StatusForbidden, s.postJSON("/next", "", alice).StatusCode)
	assert.Equal(t, http.StatusForbidden, s.postJSON("/getToken", "", doctor).StatusCode)
	assert.Equal(t, http.StatusForbidden, s.get("/appointments", alice).StatusCode)
	assert.Equal(t, http.StatusForbidden, s.get("/allUsers", doctor).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, s.get("/events", "").StatusCode)
	assert.Equal(t, http.StatusForbidden, s.get("/events", doctor).StatusCode)

	// bearer header works as well as the cookie
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+alice)
	assert.Equal(t, http.StatusOK, s.do(req, "").StatusCode)
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", "General")

	resp := s.postJSON("/register", `{"username":"alice","password":"x"}`, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.postJSON("/register", `{"username":"bob"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.postForm("/register", url.Values{"username": {"carol"}, "password": {"pw"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, middleware.LoginPage, resp.Header.Get("Location"))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp := s.postJSON("/login", `{"username":"doctor1","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.postJSON("/login", `{"username":"ghost","password":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.postForm("/login", url.Values{"username": {"doctor1"}, "password": {"123"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/doctor", resp.Header.Get("Location"))
	assert.NotEmpty(t, resp.Cookies())

	type loginData struct {
		Redirect string                 `json:"redirect"`
		User     models.AccountResponse `json:"user"`
	}
	type envelope struct {
		Success bool      `json:"success"`
		Data    loginData `json:"data"`
	}
	body := decode[envelope](t, s.postJSON("/login", `{"username":"admin","password":"admin123"}`, ""))
	assert.True(t, body.Success)
	assert.Equal(t, "/admin", body.Data.Redirect)
	assert.Equal(t, "admin", body.Data.User.Role)
}

func TestLogoutRevokesSession(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", "General")
	alice := s.login("alice", "pw")

	assert.Equal(t, http.StatusOK, s.get("/me", alice).StatusCode)

	resp := s.get("/logout", alice)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, middleware.LoginPage, resp.Header.Get("Location"))

	assert.Equal(t, http.StatusUnauthorized, s.get("/me", alice).StatusCode)

	// logging out without a session is harmless
	assert.Equal(t, http.StatusFound, s.postJSON("/logout", "", "").StatusCode)
}

func TestAppointmentFlow(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", "General")
	s.register("dave", "Cardiology")
	alice := s.login("alice", "pw")
	dave := s.login("dave", "pw")
	doctor := s.login("doctor1", "123")

	resp := s.postJSON("/book", `{"date":"2024-01-01","time":"10:00","reason":"checkup"}`, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	booked := decode[models.Appointment](t, resp)
	assert.Equal(t, "Pending", booked.Status)
	assert.Equal(t, "General", booked.Department)
	assert.Equal(t, "alice", booked.Patient)

	resp = s.postForm("/book", url.Values{"date": {"2024-01-02"}, "time": {"11:00"}, "reason": {"heart"}}, dave)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/patient", resp.Header.Get("Location"))

	list := decode[[]models.Appointment](t, s.get("/appointments", doctor))
	require.Len(t, list, 1)
	assert.Equal(t, booked.ID, list[0].ID)

	path := "/approve/" + jsonNumber(booked.ID)
	assert.Equal(t, http.StatusNoContent, s.postJSON(path, "", doctor).StatusCode)
	assert.Equal(t, http.StatusNoContent, s.postJSON(path, "", doctor).StatusCode)

	list = decode[[]models.Appointment](t, s.get("/appointments", doctor))
	assert.Equal(t, "Approved", list[0].Status)

	before, err := s.svc.Store.Read(context.Background(), recordstore.Appointments)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, s.postJSON("/approve/999", "", doctor).StatusCode)
	after, err := s.svc.Store.Read(context.Background(), recordstore.Appointments)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.Equal(t, http.StatusBadRequest, s.postJSON("/approve/abc", "", doctor).StatusCode)

	resp = s.postForm(path, url.Values{}, doctor)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/doctor", resp.Header.Get("Location"))
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestAllUsersHidesPasswords(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	resp := s.get("/allUsers", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := bodyString(t, resp)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "$2a$")

	var users []models.AccountResponse
	require.NoError(t, json.Unmarshal([]byte(body), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)

	type page struct {
		Data []models.AccountResponse `json:"data"`
		Meta struct {
			Total   int64 `json:"total"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}
	p := decode[page](t, s.get("/allUsers?page=1&limit=1", admin))
	assert.Len(t, p.Data, 1)
	assert.Equal(t, int64(2), p.Meta.Total)
	assert.True(t, p.Meta.HasNext)
}

func TestRolePages(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", "General")
	alice := s.login("alice", "pw")
	doctor := s.login("doctor1", "123")

	resp := s.get("/patient", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, middleware.LoginPage, resp.Header.Get("Location"))

	resp = s.get("/patient", doctor)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access Denied", bodyString(t, resp))

	resp = s.get("/patient", alice)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "patient page")

	resp = s.get("/login.html", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "max-age=600")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	type health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
		Driver string            `json:"driver"`
	}
	h := decode[health](t, s.get("/health", ""))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "healthy", h.Checks["store"])
	assert.Equal(t, "memory", h.Driver)

	s.get("/status", "")

	resp := s.get("/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := bodyString(t, resp)
	assert.Contains(t, body, "clinic_http_requests_total")
	assert.Contains(t, body, `route="/status"`)
}

type brokenStore struct {
	recordstore.Store
	broken bool
}

func (s *brokenStore) Read(ctx context.Context, name string) ([]byte, error) {
	if s.broken {
		return nil, errors.New("disk on fire")
	}
	return s.Store.Read(ctx, name)
}

func TestStorageFailureIsLogged(t *testing.T) {
	store := &brokenStore{Store: recordstore.NewBlobStore(blob.NewMemory())}
	log := logger.New("info", false)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	s := newTestServerOn(t, store, log)

	store.broken = true
	resp := s.get("/status", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	logged := buf.String()
	assert.Contains(t, logged, "disk on fire")
	assert.Contains(t, logged, `"component":"queue"`)
	assert.Contains(t, logged, `"request_id":"`)
}
