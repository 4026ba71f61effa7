package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotBooker/internal/config"
	"slotBooker/internal/lib/logger/handlers/slogdiscard"
	"slotBooker/internal/models"
	"slotBooker/internal/schedule"
	"slotBooker/internal/storage/sqlite"
)

const adminKey = "test-key"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	staticDir := filepath.Join(dir, "static")
	require.NoError(t, os.Mkdir(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>booking</html>"), 0o644))

	cfg := &config.Config{
		Env: "local",
		HTTPServer: config.HTTPServer{
			StaticDir:   staticDir,
			CORSOrigins: []string{"*"},
		},
		Storage: config.Storage{
			Driver: config.DriverSQLite,
			SQLite: config.SQLite{
				Path:        filepath.Join(dir, "bookings.db"),
				BusyTimeout: 5 * time.Second,
			},
		},
		Admin:   config.Admin{Key: adminKey},
		Metrics: config.Metrics{Enabled: true},
	}

	store, err := sqlite.New(context.Background(), &cfg.Storage.SQLite)
	require.NoError(t, err)

	srv := httptest.NewServer(New(slogdiscard.NewDiscardLogger(), cfg, store))
	t.Cleanup(func() {
		srv.Close()
		_ = store.Close()
	})

	return srv
}

func postBooking(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestBookingFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	body := `{"student_name":"Jane Doe","meeting_type":"zoom","day":"Monday","time":"05:00"}`

	first := postBooking(t, srv, body)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	var created models.Booking
	require.NoError(t, json.NewDecoder(first.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Jane Doe", created.StudentName)

	second := postBooking(t, srv, body)
	assert.Equal(t, http.StatusConflict, second.StatusCode)

	slotsResp := get(t, srv.URL+"/api/available-slots/Monday")
	require.Equal(t, http.StatusOK, slotsResp.StatusCode)

	var slots struct {
		Day   string   `json:"day"`
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.NewDecoder(slotsResp.Body).Decode(&slots))
	assert.Equal(t, "Monday", slots.Day)
	assert.NotContains(t, slots.Slots, "05:00")
	assert.Len(t, slots.Slots, len(schedule.Slots())-1)

	listResp := get(t, srv.URL+"/api/bookings")
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var all []models.Booking
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestInvalidDayIsClientError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/available-slots/Tuesday")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConcurrentBookingsOverHTTP(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	body := `{"student_name":"Jane Doe","meeting_type":"face-to-face","day":"Friday","time":"06:45"}`

	codes := make([]int, 2)

	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewBufferString(body))
			if err != nil {
				t.Errorf("post: %v", err)
				return
			}
			defer resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)
}

func TestDeleteBooking(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	first := postBooking(t, srv, `{"student_name":"Jane Doe","meeting_type":"zoom","day":"Wednesday","time":"07:15"}`)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	var created models.Booking
	require.NoError(t, json.NewDecoder(first.Body).Decode(&created))

	del := func(key string, id int64) *http.Response {
		req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/bookings/%d?key=%s", srv.URL, id, key), nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })

		return resp
	}

	assert.Equal(t, http.StatusForbidden, del("wrong", created.ID).StatusCode)
	assert.Equal(t, http.StatusNotFound, del(adminKey, created.ID+100).StatusCode)

	ok := del(adminKey, created.ID)
	require.Equal(t, http.StatusOK, ok.StatusCode)

	var deleted struct {
		Success   bool  `json:"success"`
		DeletedID int64 `json:"deletedId"`
	}
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&deleted))
	assert.True(t, deleted.Success)
	assert.Equal(t, created.ID, deleted.DeletedID)

	again := postBooking(t, srv, `{"student_name":"John Smith","meeting_type":"zoom","day":"Wednesday","time":"07:15"}`)
	assert.Equal(t, http.StatusCreated, again.StatusCode)
}

func TestAdminRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	assert.Equal(t, http.StatusForbidden, get(t, srv.URL+"/admin").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, srv.URL+"/admin/export?key=nope").StatusCode)

	page := get(t, srv.URL+"/admin?key="+adminKey)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.Header.Get("Content-Type"), "text/html")

	export := get(t, srv.URL+"/admin/export?key="+adminKey)
	assert.Equal(t, http.StatusOK, export.StatusCode)
}

func TestHealthMetricsAndFallback(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	health := get(t, srv.URL+"/api/health")
	require.Equal(t, http.StatusOK, health.StatusCode)

	var h struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	require.NoError(t, json.NewDecoder(health.Body).Decode(&h))
	assert.Equal(t, "OK", h.Status)
	assert.WithinDuration(t, time.Now(), h.Timestamp, time.Minute)

	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/api/ready").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/metrics").StatusCode)

	fallback := get(t, srv.URL+"/some/client/route")
	assert.Equal(t, http.StatusOK, fallback.StatusCode)
	assert.Contains(t, fallback.Header.Get("Content-Type"), "text/html")
}
