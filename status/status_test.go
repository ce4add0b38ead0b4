package status

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) *Status {
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var s Status
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatal(err)
	}
	return &s
}

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dial(t, srv.URL)
	defer conn.Close()

	b.Status("exporting hero.vif", PROGRESS, 0.5)
	s := readStatus(t, conn)
	if s.Message != "exporting hero.vif" || s.Type != PROGRESS || s.Progress != 0.5 {
		t.Errorf("got %+v", s)
	}

	// late clients start from the last message
	late := dial(t, srv.URL)
	defer late.Close()
	if s := readStatus(t, late); s.Message != "exporting hero.vif" {
		t.Errorf("late client got %+v", s)
	}

	b.Status("bad progress", INFO, float32(math.NaN()))
	if s := readStatus(t, conn); s.Progress != 0 || s.Message != "bad progress" {
		t.Errorf("got %+v", s)
	}
}
