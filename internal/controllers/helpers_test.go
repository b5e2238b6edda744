package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trip_ledger/internal/auth"
	"trip_ledger/internal/config"
	"trip_ledger/internal/repository"
	"trip_ledger/internal/storage"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type testServer struct {
	router      *gin.Engine
	db          *gorm.DB
	trips       repository.TripRepository
	clock       *fakeClock
	storageRoot string
}

// newTestServer registers every controller on a fresh engine backed by a temp SQLite file.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.InitDB(config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open sqlite DB: %v", err)
	}

	ts := &testServer{
		router:      gin.New(),
		db:          db,
		trips:       repository.NewTripRepository(db),
		clock:       &fakeClock{now: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
		storageRoot: t.TempDir(),
	}
	photos := storage.NewPhotoStore(ts.storageRoot, "http://test.local", 5<<20)
	tc := NewTripController(ts.trips, photos, ts.clock.Now)
	rc := NewReportController(ts.trips)
	pc := NewPinController(auth.NewPinVerifier(db, ts.clock.Now))

	r := ts.router
	r.GET("/data", rc.ListByMonth)
	r.POST("/data", tc.CreateTrip)
	r.GET("/data/:id", tc.GetTrip)
	r.PUT("/data/:id", tc.UpdateTrip)
	r.DELETE("/data/:id", tc.DeleteTrip)
	r.PUT("/setlunas/:id", tc.SetConfirmed)
	r.GET("/sum", rc.Summary)
	r.POST("/recap", rc.Recap)
	r.POST("/pin-verify", pc.VerifyPin)
	r.POST("/lockscreen", Lockscreen)
	return ts
}

func (ts *testServer) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	return ts.do(method, path, bytes.NewReader(b), "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, w.Body.String())
	}
	return out
}

func tripPayload(plate, date, status string, price, cost int64) map[string]interface{} {
	return map[string]interface{}{
		"tanggal":   date,
		"nopol":     plate,
		"driver":    "Budi",
		"origin":    "Jakarta",
		"destinasi": "Surabaya",
		"uj":        cost,
		"harga":     price,
		"status":    status,
	}
}

// createTrip posts a trip and returns its id.
func (ts *testServer) createTrip(t *testing.T, payload map[string]interface{}) uint {
	t.Helper()
	w := ts.doJSON(http.MethodPost, "/data", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return uint(decode(t, w)["id"].(float64))
}
