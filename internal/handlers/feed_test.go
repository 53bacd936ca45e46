package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/botstudio/backend/internal/store"
	"github.com/botstudio/backend/internal/types"
)

// One admin advances an order's status; a second admin view connected to the
// feed receives the updated record without refreshing.
func TestOrdersFeedPushesStatusChange(t *testing.T) {

	mem := newMemStore()
	mem.addOrder(types.Order{Category: "vendas", Status: types.PendingStatus}, "o1")

	h := newTestHandlerSet(mem)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleOrdersFeed))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	// give the handler a moment to register its subscription
	time.Sleep(100 * time.Millisecond)

	r := adminRouter(h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/admin/orders/o1/status",
		strings.NewReader(`{"status": "in_progress"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var event store.Event
	assert.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, store.UpdateAction, event.Action)
	assert.Equal(t, "o1", event.Record.ID)

	var order types.Order
	assert.NoError(t, json.Unmarshal(event.Record.Doc, &order))
	assert.Equal(t, types.InProgressStatus, order.Status)
}
