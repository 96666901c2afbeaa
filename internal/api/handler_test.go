package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studyseat-dashboard/config"
	"studyseat-dashboard/internal/backend"
	"studyseat-dashboard/internal/layout"
	"studyseat-dashboard/internal/model"
	"studyseat-dashboard/internal/state"
)

type recordedAction struct {
	Action string
	Target string
	Detail string
	OK     bool
}

// mockStore is an in-memory Store used by the handler tests.
type mockStore struct {
	actions       []recordedAction
	subscriptions map[string]model.PushSubscription
	recordErr     error
}

func newMockStore() *mockStore {
	return &mockStore{subscriptions: make(map[string]model.PushSubscription)}
}

func (m *mockStore) RecordAction(_ context.Context, action, target, detail string, ok bool) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.actions = append(m.actions, recordedAction{Action: action, Target: target, Detail: detail, OK: ok})
	return nil
}

func (m *mockStore) RecentActions(_ context.Context, limit int) ([]model.ActionRecord, error) {
	records := make([]model.ActionRecord, 0, len(m.actions))
	for i := len(m.actions) - 1; i >= 0 && len(records) < limit; i-- {
		a := m.actions[i]
		records = append(records, model.ActionRecord{Action: a.Action, Target: a.Target, Detail: a.Detail, OK: a.OK})
	}
	return records, nil
}

func (m *mockStore) SaveSubscription(_ context.Context, sub model.PushSubscription) error {
	m.subscriptions[sub.Endpoint] = sub
	return nil
}

func (m *mockStore) SubscriptionByEndpoint(_ context.Context, endpoint string) (*model.PushSubscription, error) {
	sub, ok := m.subscriptions[endpoint]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sub, nil
}

func (m *mockStore) DeleteSubscription(_ context.Context, endpoint string) error {
	delete(m.subscriptions, endpoint)
	return nil
}

func (m *mockStore) SubscriptionsForRoom(_ context.Context, room string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	for _, sub := range m.subscriptions {
		if sub.Room == room || sub.Room == "" {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

// mockRefresher counts refresh calls.
type mockRefresher struct {
	calls int
	err   error
}

func (m *mockRefresher) RefreshOnce(context.Context) error {
	m.calls++
	return m.err
}

type testFixture struct {
	router    *gin.Engine
	store     *mockStore
	refresher *mockRefresher
	backend   *struct {
		requests []string
		status   int
		body     string
	}
}

func newFixture(t *testing.T, webpushOptions *webpush.Options) *testFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backendState := &struct {
		requests []string
		status   int
		body     string
	}{status: http.StatusOK, body: "ok"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendState.requests = append(backendState.requests, r.Method+" "+r.URL.Path)
		w.WriteHeader(backendState.status)
		w.Write([]byte(backendState.body))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{RateLimitPerSec: 1000, CacheTTLSeconds: 1},
		Layout: config.LayoutConfig{
			Rooms:         []config.RoomConfig{{ID: "A", Name: "A"}, {ID: "B", Name: "B"}},
			TablesPerRoom: 15,
		},
	}

	rooms, tables := layout.BuildRooms(cfg.Layout.Rooms, cfg.Layout.TablesPerRoom)
	cache := state.NewCache(rooms, tables)
	client := backend.NewClient(&config.BackendConfig{BaseURL: server.URL})

	s := newMockStore()
	refresher := &mockRefresher{}
	router := NewRouter(cfg, cache, client, refresher, s, webpushOptions)

	return &testFixture{router: router, store: s, refresher: refresher, backend: backendState}
}

func (f *testFixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *testFixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func noticeOf(t *testing.T, w *httptest.ResponseRecorder) (kind, message string) {
	t.Helper()
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return location.Query().Get("kind"), location.Query().Get("notice")
}

func TestPostAssign_Success(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.body = "Student created and assigned successfully"

	w := f.postForm("/commands/assign", url.Values{
		"name":          {"Amit"},
		"contactNumber": {"111"},
		"roomNumber":    {"A"},
		"tableNumber":   {"3"},
		"amountPaid":    {"500"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, message := noticeOf(t, w)
	assert.Equal(t, "success", kind)
	assert.Equal(t, "Student assigned successfully!", message)

	require.Len(t, f.backend.requests, 1)
	assert.Equal(t, "POST /api/students/assign", f.backend.requests[0])
	assert.Equal(t, 1, f.refresher.calls)

	require.Len(t, f.store.actions, 1)
	assert.Equal(t, "assign", f.store.actions[0].Action)
	assert.Equal(t, "A-T3", f.store.actions[0].Target)
	assert.True(t, f.store.actions[0].OK)
}

func TestPostAssign_ValidationFailureSkipsBackend(t *testing.T) {
	f := newFixture(t, nil)

	w := f.postForm("/commands/assign", url.Values{
		"name":          {"Amit"},
		"contactNumber": {"111"},
		"roomNumber":    {"A"},
		// No table number or amount.
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, message := noticeOf(t, w)
	assert.Equal(t, "error", kind)
	assert.Contains(t, message, "required")

	assert.Empty(t, f.backend.requests)
	assert.Zero(t, f.refresher.calls)
	assert.Empty(t, f.store.actions)

	// The submitted values ride along so the form can be re-filled.
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Amit", location.Query().Get("name"))
	assert.Equal(t, "A", location.Query().Get("room"))
}

func TestPostAssign_BackendErrorSurfacesMessage(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.status = http.StatusConflict
	f.backend.body = "Table A-3 is already occupied"

	w := f.postForm("/commands/assign", url.Values{
		"name":          {"Amit"},
		"contactNumber": {"111"},
		"roomNumber":    {"A"},
		"tableNumber":   {"3"},
		"amountPaid":    {"500"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, message := noticeOf(t, w)
	assert.Equal(t, "error", kind)
	assert.Equal(t, "Error: Table A-3 is already occupied", message)

	assert.Zero(t, f.refresher.calls)
	require.Len(t, f.store.actions, 1)
	assert.False(t, f.store.actions[0].OK)
}

func TestPostPayment(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.body = "Payment updated successfully"

	w := f.postForm("/commands/students/7/payment", url.Values{
		"amount": {"600"},
		"paid":   {"true"},
		"months": {"2"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, message := noticeOf(t, w)
	assert.Equal(t, "success", kind)
	assert.Equal(t, "Fee updated successfully!", message)

	require.Len(t, f.backend.requests, 1)
	assert.Equal(t, "POST /api/students/7/payment", f.backend.requests[0])
	assert.Equal(t, 1, f.refresher.calls)
}

func TestPostPayment_MissingAmount(t *testing.T) {
	f := newFixture(t, nil)

	w := f.postForm("/commands/students/7/payment", url.Values{"paid": {"true"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, _ := noticeOf(t, w)
	assert.Equal(t, "error", kind)
	assert.Empty(t, f.backend.requests)
}

func TestPostDelete(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.body = "Student deleted successfully"

	w := f.postForm("/commands/students/7/delete", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, _ := noticeOf(t, w)
	assert.Equal(t, "success", kind)
	require.Len(t, f.backend.requests, 1)
	assert.Equal(t, "DELETE /api/students/7", f.backend.requests[0])
}

func TestPostDelete_InvalidID(t *testing.T) {
	f := newFixture(t, nil)

	w := f.postForm("/commands/students/abc/delete", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.backend.requests)
}

func TestPostClearAll(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.body = "Student data cleared successfully!"

	w := f.postForm("/commands/clear-all", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	kind, message := noticeOf(t, w)
	assert.Equal(t, "success", kind)
	assert.Equal(t, "All student data cleared successfully!", message)
	require.Len(t, f.backend.requests, 1)
	assert.Equal(t, "DELETE /api/cleanup/students", f.backend.requests[0])
	assert.Equal(t, 1, f.refresher.calls)
}

func TestPostClearAll_RejectsWhileInFlight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, &mockRefresher{}, newMockStore(), gocache.New(time.Second, time.Minute), nil)
	h.clearing.Store(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/commands/clear-all", nil)
	h.PostClearAll(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "A clear operation is already in progress", location.Query().Get("notice"))
	assert.True(t, h.clearing.Load(), "the in-flight clear must keep its guard")
}

func TestGetDashboard_RendersSnapshot(t *testing.T) {
	f := newFixture(t, nil)

	w := f.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Room A")
	assert.Contains(t, body, "Room B")
}

func TestGetDashboard_ShowsFlashNotice(t *testing.T) {
	f := newFixture(t, nil)

	w := f.get("/?notice=Student+assigned+successfully%21&kind=success")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Student assigned successfully!")
}

func TestGetTableDetail_UnknownID(t *testing.T) {
	f := newFixture(t, nil)

	w := f.get("/tables/Z-T99")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTableDetail_Vacant(t *testing.T) {
	f := newFixture(t, nil)

	w := f.get("/tables/A-T3")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Table 3 - A")
	assert.Contains(t, body, "This table is available for assignment")
}

func TestGetVacantTables(t *testing.T) {
	f := newFixture(t, nil)

	w := f.get("/rooms/A/vacant")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Vacant Tables - A")
	assert.Contains(t, body, "Total vacant tables: 15")

	assert.Equal(t, http.StatusNotFound, f.get("/rooms/Z/vacant").Code)
}

func TestGetRoomStats(t *testing.T) {
	f := newFixture(t, nil)

	w := f.get("/rooms/A/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0.0%")
}

func TestGetFeeForm_UnknownStudent(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, http.StatusNotFound, f.get("/students/99/fee").Code)
	assert.Equal(t, http.StatusBadRequest, f.get("/students/abc/fee").Code)
}

func TestSubscriptionLifecycle(t *testing.T) {
	f := newFixture(t, nil)

	put := httptest.NewRequest(http.MethodPut, "/api/subscriptions",
		strings.NewReader(`{"endpoint":"https://push.example/1","p256dh":"key","auth":"secret","room":"A"}`))
	put.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, put)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.get("/api/subscriptions?endpoint=https%3A%2F%2Fpush.example%2F1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"room":"A"}`, w.Body.String())

	del := httptest.NewRequest(http.MethodDelete, "/api/subscriptions",
		strings.NewReader(`{"endpoint":"https://push.example/1"}`))
	del.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, del)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.get("/api/subscriptions?endpoint=https%3A%2F%2Fpush.example%2F1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutSubscription_InvalidBody(t *testing.T) {
	f := newFixture(t, nil)

	put := httptest.NewRequest(http.MethodPut, "/api/subscriptions", strings.NewReader(`{"endpoint":""}`))
	put.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, put)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestGetVAPIDPublicKey(t *testing.T) {
	unconfigured := newFixture(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, unconfigured.get("/api/vapid_public_key").Code)

	configured := newFixture(t, &webpush.Options{VAPIDPublicKey: "test-public-key"})
	w := configured.get("/api/vapid_public_key")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"test-public-key"}`, w.Body.String())
}

func TestGetActivity(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.RecordAction(context.Background(), "assign", "A-T3", "Amit", true))
	require.NoError(t, f.store.RecordAction(context.Background(), "delete", "7", "", true))

	w := f.get("/api/activity")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "assign")
	assert.Contains(t, body, "delete")
}

func TestGetActivity_LimitValidation(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, http.StatusBadRequest, f.get("/api/activity?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, f.get("/api/activity?limit=501").Code)
	assert.Equal(t, http.StatusBadRequest, f.get("/api/activity?limit=abc").Code)
	assert.Equal(t, http.StatusOK, f.get("/api/activity?limit=10").Code)
}
