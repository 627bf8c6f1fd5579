package queue

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub stands up a real websocket pair and subscribes the server side to
// the hub. Returns the client conn (for reading) and the server conn (the one
// the hub tracks).
func dialHub(t *testing.T, hub *Hub, barberID int64) (*websocket.Conn, *websocket.Conn) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		hub.Subscribe(barberID, conn)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, <-serverConns
}

func TestHub_ConcurrentPublish(t *testing.T) {
	hub := NewHub()
	client, serverConn := dialHub(t, hub, 1)

	const writers = 8
	const perWriter = 20

	received := make(chan struct{}, writers*perWriter*2)
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
			received <- struct{}{}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Publish(1, map[string]int{"seq": j})
				hub.Send(1, serverConn, map[string]string{"kind": "direct"})
			}
		}()
	}
	wg.Wait()

	// every write must land; a dropped conn here means a write failed
	for i := 0; i < writers*perWriter*2; i++ {
		select {
		case <-received:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d of %d messages", i, writers*perWriter*2)
		}
	}
	assert.Equal(t, 1, hub.ViewerCount(1))
}

func TestHub_SubscribeLifecycle(t *testing.T) {
	hub := NewHub()
	_, serverConn := dialHub(t, hub, 7)

	assert.Equal(t, 1, hub.ViewerCount(7))
	assert.Equal(t, []int64{7}, hub.ActiveBarbers())

	hub.Unsubscribe(7, serverConn)
	assert.Equal(t, 0, hub.ViewerCount(7))
	assert.Empty(t, hub.ActiveBarbers())

	// publishing to a barber with no viewers is a no-op
	hub.Publish(7, map[string]string{"kind": "noop"})
}

func TestHub_SendToUnknownConnIsIgnored(t *testing.T) {
	hub := NewHub()
	_, serverConn := dialHub(t, hub, 1)

	// subscribed under barber 1, not barber 2
	hub.Send(2, serverConn, map[string]string{"kind": "misrouted"})
	assert.Equal(t, 1, hub.ViewerCount(1))
	assert.Equal(t, 0, hub.ViewerCount(2))
}
