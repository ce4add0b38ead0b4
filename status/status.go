package status

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	INFO = iota
	ERROR
	PROGRESS
)

type Status struct {
	Message  string
	Time     time.Time
	Type     int
	Progress float32
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump(b *Broadcaster) {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		b.unregister(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// readPump only drains control frames until the peer goes away.
func (c *client) readPump(b *Broadcaster) {
	defer b.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcaster fans status messages out to websocket clients. New clients
// get the last message right away.
type Broadcaster struct {
	lock     sync.Mutex
	clients  map[*client]bool
	last     []byte
	incoming chan *Status
	upgrader websocket.Upgrader
}

func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		clients:  make(map[*client]bool),
		incoming: make(chan *Status, 16),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for s := range b.incoming {
		data, err := json.Marshal(s)
		if err != nil {
			log.Printf("[status] marshal error: %v", err)
			continue
		}
		b.lock.Lock()
		b.last = data
		for c := range b.clients {
			select {
			case c.send <- data:
			default:
				log.Printf("[status] client %v is too slow, message dropped", c.conn.RemoteAddr())
			}
		}
		b.lock.Unlock()
	}
}

func (b *Broadcaster) register(c *client) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.clients[c] = true
	if b.last != nil {
		c.send <- b.last
	}
}

func (b *Broadcaster) unregister(c *client) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.clients[c] {
		delete(b.clients, c)
		close(c.send)
	}
}

func (b *Broadcaster) Attach(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	b.register(c)
	go c.writePump(b)
	go c.readPump(b)
}

func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[status] ws upgrade error: %v", err)
		return
	}
	b.Attach(conn)
}

func (b *Broadcaster) Status(msg string, _type int, progress float32) {
	if math.IsNaN(float64(progress)) || math.IsInf(float64(progress), 0) {
		progress = 0
	}
	b.incoming <- &Status{
		Message:  msg,
		Time:     time.Now(),
		Type:     _type,
		Progress: progress}
}

var Default = NewBroadcaster()

func Info(format string, a ...interface{}) {
	Default.Status(fmt.Sprintf(format, a...), INFO, 0.0)
}

func Error(format string, a ...interface{}) {
	Default.Status(fmt.Sprintf(format, a...), ERROR, 0.0)
}

func Progress(progress float32, format string, a ...interface{}) {
	Default.Status(fmt.Sprintf(format, a...), PROGRESS, progress)
}
