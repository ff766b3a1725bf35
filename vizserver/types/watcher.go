package types

import (
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
)

// Watcher is one websocket client. Writes are serialized, gorilla
// connections support a single concurrent writer.
type Watcher struct {
	id    string
	conn  *websocket.Conn
	mutex sync.Mutex
}

func NewWatcher(conn *websocket.Conn) *Watcher {
	return &Watcher{
		id:   uuid.NewV4().String(),
		conn: conn,
	}
}

func (watcher *Watcher) GetId() string {
	return watcher.id
}

func (watcher *Watcher) WriteJSON(v interface{}) error {
	watcher.mutex.Lock()
	defer watcher.mutex.Unlock()

	return watcher.conn.WriteJSON(v)
}
