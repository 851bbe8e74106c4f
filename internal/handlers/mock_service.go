package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"radiorecon/internal/models"
	"radiorecon/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignUpInviter  int
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string, invitedBy int) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	m.lastSignUpInviter = invitedBy
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockMonitoring struct {
	status service.Status
	err    error
}

func (m *mockMonitoring) GetStatus(context.Context) (service.Status, error) {
	return m.status, m.err
}

type mockEventLog struct {
	resp       []models.LogEntry
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) Append(context.Context, models.Stream, models.Category, string) error {
	return nil
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.LogEntry, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockCycle struct {
	mu     sync.Mutex
	busy   bool
	runs   int
	ranCh  chan struct{}
	status service.RunnerStatus
}

func (m *mockCycle) RunCycle(context.Context) service.CycleReport {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	if m.ranCh != nil {
		m.ranCh <- struct{}{}
	}
	return service.CycleReport{}
}

func (m *mockCycle) Run(context.Context, time.Duration) {}

func (m *mockCycle) Status() service.RunnerStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.status
	st.Busy = m.busy
	return st
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
