package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"github.com/botstudio/backend/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleOrdersFeed streams every change to the orders collection over a
// websocket, so admin list views update without manual refresh. The
// subscription is released when the connection goes away.
func (h *HandlerSet) HandleOrdersFeed(w http.ResponseWriter, req *http.Request) {

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		logger.Error(err)
		return
	}
	defer conn.Close()

	events := make(chan store.Event, 16)
	unsubscribe := h.store.Subscribe(store.OrdersCollection, func(e store.Event) {
		// a slow consumer loses intermediate events; its local state is
		// replaceable by the next pushed snapshot anyway
		select {
		case events <- e:
		default:
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case event := <-events:
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
