package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
	"github.com/00jmdc-SysEng/Attendance/internal/logging"
	"github.com/00jmdc-SysEng/Attendance/internal/models"
	"github.com/00jmdc-SysEng/Attendance/internal/routes"
	"github.com/00jmdc-SysEng/Attendance/internal/storage"
	"github.com/00jmdc-SysEng/Attendance/internal/utils"
)

const testSecret = "test-secret"

type env struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	store := storage.NewMemoryStore()
	svc := ledger.NewService(store, logging.New("test")).
		WithClock(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local) })

	return &env{
		router: routes.NewRouter(db, svc, store, testSecret),
		db:     db,
	}
}

func (e *env) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/register", "", gin.H{
		"full_name": "Test Employee",
		"email":     email,
		"password":  "superSecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.request(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    email,
		"password": "superSecret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *env) adminToken(t *testing.T) string {
	t.Helper()
	hash, err := utils.HashPassword("adminSecret1")
	require.NoError(t, err)
	admin := models.User{FullName: "Admin", Email: "admin@example.com", PasswordHash: hash, IsAdmin: true}
	require.NoError(t, e.db.Create(&admin).Error)

	w := e.request(t, http.MethodPost, "/api/admin/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "adminSecret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestClockInFlowOverHTTP(t *testing.T) {
	e := setupEnv(t)
	token := e.registerAndLogin(t, "ana@example.com")

	w := e.request(t, http.MethodPost, "/api/clock-in", token, gin.H{
		"mode":     "onsite",
		"location": gin.H{"lat": 14.6, "lng": 121.0},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Double clock-in conflicts.
	w = e.request(t, http.MethodPost, "/api/clock-in", token, gin.H{"mode": "onsite"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.request(t, http.MethodPost, "/api/clock-out", token, gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)

	// No open session left.
	w = e.request(t, http.MethodPost, "/api/clock-out", token, gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.request(t, http.MethodGet, "/api/calendar/2025/3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cal struct {
		Calendar map[string]struct {
			Status string `json:"status"`
		} `json:"calendar"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
	assert.Equal(t, "present", cal.Calendar["2025-03-10"].Status)
}

func TestFileLeaveConflictsOverHTTP(t *testing.T) {
	e := setupEnv(t)
	token := e.registerAndLogin(t, "ben@example.com")

	w := e.request(t, http.MethodPost, "/api/file-leave", token, gin.H{
		"leave_type": "sick",
		"reason":     "flu",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.request(t, http.MethodPost, "/api/clock-in", token, gin.H{"mode": "onsite"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.request(t, http.MethodPost, "/api/file-leave", token, gin.H{"leave_type": "vacation"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Invalid leave type is a validation error, not a conflict.
	e2 := setupEnv(t)
	token2 := e2.registerAndLogin(t, "cara@example.com")
	w = e2.request(t, http.MethodPost, "/api/file-leave", token2, gin.H{"leave_type": "holiday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthIsRequired(t *testing.T) {
	e := setupEnv(t)

	w := e.request(t, http.MethodPost, "/api/clock-in", "", gin.H{"mode": "onsite"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Employee tokens cannot reach the admin console.
	token := e.registerAndLogin(t, "dan@example.com")
	w = e.request(t, http.MethodGet, "/api/admin/overview", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOverviewAndLogs(t *testing.T) {
	e := setupEnv(t)
	empToken := e.registerAndLogin(t, "ana@example.com")
	adminToken := e.adminToken(t)

	w := e.request(t, http.MethodPost, "/api/clock-in", empToken, gin.H{"mode": "remote"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.request(t, http.MethodGet, "/api/admin/overview", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var overview struct {
		TotalEmployees int `json:"total_employees"`
		RemoteToday    int `json:"remote_today"`
		PresentToday   int `json:"present_today"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	assert.Equal(t, 1, overview.TotalEmployees)
	assert.Equal(t, 1, overview.RemoteToday)
	assert.Equal(t, 0, overview.PresentToday)

	w = e.request(t, http.MethodGet, "/api/admin/attendance-logs?mode=remote", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs struct {
		Logs []struct {
			FullName string `json:"full_name"`
		} `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, "Test Employee", logs.Logs[0].FullName)
}

func TestAdminExportAttendance(t *testing.T) {
	e := setupEnv(t)
	empToken := e.registerAndLogin(t, "ana@example.com")
	adminToken := e.adminToken(t)

	w := e.request(t, http.MethodPost, "/api/clock-in", empToken, gin.H{"mode": "onsite"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.request(t, http.MethodPost, "/api/admin/export/attendance", adminToken, gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestAdminEmployeeManagement(t *testing.T) {
	e := setupEnv(t)
	empToken := e.registerAndLogin(t, "ana@example.com")
	adminToken := e.adminToken(t)

	w := e.request(t, http.MethodPost, "/api/file-leave", empToken, gin.H{"leave_type": "official"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.request(t, http.MethodGet, "/api/admin/employees", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Employees []struct {
			ID          uint   `json:"id"`
			FullName    string `json:"full_name"`
			TotalLeaves int    `json:"total_leaves"`
		} `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Employees, 1)
	assert.Equal(t, 1, list.Employees[0].TotalLeaves)

	id := list.Employees[0].ID
	w = e.request(t, http.MethodPut, "/api/admin/employees/"+itoa(id), adminToken, gin.H{
		"full_name": "Ana Cruz",
		"email":     "ana.cruz@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.request(t, http.MethodDelete, "/api/admin/employees/"+itoa(id), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.request(t, http.MethodGet, "/api/admin/employees", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Employees)
}

func itoa(n uint) string {
	return fmt.Sprint(n)
}
