package stream

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-workoutmap/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
)

func TestStreamHandlersUpgradeRequired(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), NewHub(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/stream/ws/workouts", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected non-200 for non-websocket request")
	}
}

func TestStreamHandlersWebsocketEvents(t *testing.T) {
	hub := NewHub(nil)
	view := NewView(hub, "workouts")
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub, view)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	defer ln.Close()

	go func() {
		_ = app.Listener(ln)
	}()
	defer func() { _ = app.Shutdown() }()

	wsURL := "ws://" + ln.Addr().String() + "/stream/ws/workouts"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// Registration happens after the upgrade completes.
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		n := len(hub.clients["workouts"])
		hub.mu.RUnlock()
		if n == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	view.Alert("hello")
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !bytes.Contains(msg, []byte(`"type":"alert"`)) || !bytes.Contains(msg, []byte("hello")) {
		t.Fatalf("unexpected message %s", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("client")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
}

func TestStreamHandlersMapClick(t *testing.T) {
	hub := NewHub(nil)
	view := NewView(hub, "workouts")
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub, view)

	post := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/stream/workouts/map/click", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		return resp.StatusCode
	}

	if code := post(`{"lat":32,"lng":-12}`); code != http.StatusConflict {
		t.Fatalf("expected conflict before map ready, got %d", code)
	}

	var got geo.Coords
	view.OnClick(func(c geo.Coords) { got = c })
	if code := post(`{"lat":32,"lng":-12}`); code != http.StatusNoContent {
		t.Fatalf("expected no content, got %d", code)
	}
	if got != (geo.Coords{Lat: 32, Lng: -12}) {
		t.Fatalf("click not delivered")
	}

	if code := post(`{"lat":95,"lng":0}`); code != http.StatusBadRequest {
		t.Fatalf("expected bad request for out-of-range click")
	}
	if code := post(`{`); code != http.StatusBadRequest {
		t.Fatalf("expected bad request for malformed body")
	}
}
