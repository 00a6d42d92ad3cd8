package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/goroutine"
	"github.com/skillswap/skillswap-backend/internal/logger"
)

var ErrHubStopped = errors.New("ws: hub stopped")

// Event сообщение, которое получает браузер.
type Event struct {
	Type   string    `json:"type"`
	Data   any       `json:"data"`
	SentAt time.Time `json:"sentAt"`
}

type delivery struct {
	userID  uuid.UUID
	payload []byte
}

type countQuery struct {
	userID uuid.UUID
	reply  chan int
}

// Hub маршрутизирует события по пользователям. Карта клиентов принадлежит
// горутине Run, остальные методы общаются с ней через каналы.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	count      chan countQuery
	done       chan struct{}

	// total дублирует размер карты для чтения без обращения к Run
	total atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 64),
		count:      make(chan countQuery),
		done:       make(chan struct{}),
	}
}

// Run обслуживает хаб до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	log := logger.WithComponent("ws-hub")
	log.Debug("ws: hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Debug("ws: hub stopped")
			return
		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			if _, dup := set[c]; !dup {
				set[c] = struct{}{}
				h.total.Add(1)
			}
		case c := <-h.unregister:
			h.drop(c)
		case d := <-h.deliver:
			h.fanOut(d)
		case q := <-h.count:
			q.reply <- len(h.clients[q.userID])
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToUser ставит событие в очередь всем подключениям пользователя.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	payload, err := json.Marshal(Event{Type: event, Data: data, SentAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("ws: encode %s: %w", event, err)
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.deliver <- delivery{userID: userID, payload: payload}:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Online число подключений пользователя.
func (h *Hub) Online(userID uuid.UUID) int {
	q := countQuery{userID: userID, reply: make(chan int, 1)}
	select {
	case h.count <- q:
		return <-q.reply
	case <-h.done:
		return 0
	}
}

// Clients число всех подключений. Не блокируется, даже если Run не запущен.
func (h *Hub) Clients() int {
	return int(h.total.Load())
}

func (h *Hub) drop(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, present := set[c]; present {
		delete(set, c)
		h.total.Add(-1)
		c.closeSend()
	}
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

func (h *Hub) fanOut(d delivery) {
	for c := range h.clients[d.userID] {
		select {
		case c.send <- d.payload:
		default:
			// очередь клиента забита: отключаем его, чтобы не тормозить остальных
			logger.WithComponent("ws-hub").WithField("user_id", d.userID).Warn("ws: slow client dropped")
			h.drop(c)
			goroutine.SafeGo("ws-close", c.closeConn)
		}
	}
}

func (h *Hub) closeAll() {
	for userID, set := range h.clients {
		for c := range set {
			c.closeSend()
		}
		h.total.Add(-int64(len(set)))
		delete(h.clients, userID)
	}
}
