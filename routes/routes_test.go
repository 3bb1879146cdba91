package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"training-backend/controllers"
	"training-backend/models"
	"training-backend/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "routes.db")
	db, err := gorm.Open(sqlite.Open("file:"+path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.Certificate{},
		&models.Post{},
		&models.UserLog{},
	))

	bookingSvc := services.NewBookingService(db)
	lifecycleSvc := services.NewLifecycleService(db)
	// SourcePath is empty so the backup endpoint reports unavailable.
	backupSvc := services.NewBackupService(db, "", t.TempDir())

	return SetupRouter(
		controllers.NewBookingController(bookingSvc, lifecycleSvc),
		controllers.NewBackupController(backupSvc),
		controllers.NewUserController(services.NewUserService(db)),
		controllers.NewCertificateController(services.NewCertificateService(db)),
		controllers.NewPostController(services.NewPostService(db)),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_CreateAndFetchBooking(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", gin.H{
		"client_name":   "Alice Example",
		"email":         "alice@example.test",
		"mobile_number": "0812345678",
		"booking_date":  "2024-09-09",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Success bool           `json:"success"`
		Data    models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Regexp(t, regexp.MustCompile(`^20240909-\d{4}$`), created.Data.ReferenceNumber)
	assert.Equal(t, models.StatusPending, created.Data.Status)

	w = doJSON(t, r, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Success bool             `json:"success"`
		Data    []models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, created.Data.ReferenceNumber, listed.Data[0].ReferenceNumber)
}

func TestRouter_CreateBookingRejectsBadPayload(t *testing.T) {
	r := newTestRouter(t)

	// missing required email
	w := doJSON(t, r, http.MethodPost, "/api/bookings", gin.H{
		"client_name":   "Bob",
		"mobile_number": "0800000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GetBookingNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/bookings/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_BackupUnavailableWithoutBackingFile(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/backups", gin.H{"type": "full"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_AdvanceExpiredEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/maintenance/advance-expired", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"advanced":0}}`, w.Body.String())
}
