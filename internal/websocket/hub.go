package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

const broadcastBufferSize = 256

type roomMessage struct {
	quizID  uint
	payload []byte
}

// Hub держит подписчиков, сгруппированных по викторинам, и рассылает им новые результаты.
// Все изменения комнат происходят в горутине Run, mu нужен только для чтения из других горутин.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage

	done     chan struct{}
	stopOnce sync.Once
	clients  atomic.Int64
}

// NewHub создает хаб. Для работы нужно запустить Run.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, broadcastBufferSize),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрации и рассылку до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[c.QuizID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[c.QuizID] = room
			}
			room[c] = struct{}{}
			h.mu.Unlock()
			h.clients.Add(1)
			if msg, err := json.Marshal(Message{Type: SUBSCRIBED, Data: map[string]uint{"quiz_id": c.QuizID}}); err == nil {
				c.trySend(msg)
			}
			log.Printf("[WebSocket] Клиент %s подписан на викторину #%d", c.ConnectionID, c.QuizID)

		case c := <-h.unregister:
			h.remove(c)

		case m := <-h.broadcast:
			for c := range h.rooms[m.quizID] {
				if !c.trySend(m.payload) {
					// Медленный клиент: отключаем, чтобы не задерживать остальных
					log.Printf("[WebSocket] Буфер клиента %s переполнен, отключаем", c.ConnectionID)
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	room, ok := h.rooms[c.QuizID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	h.mu.Lock()
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.QuizID)
	}
	h.mu.Unlock()
	c.closeSend()
	h.clients.Add(-1)
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)
		for _, room := range h.rooms {
			for c := range room {
				c.closeSend()
			}
		}
		h.mu.Lock()
		h.rooms = make(map[uint]map[*Client]struct{})
		h.mu.Unlock()
		h.clients.Store(0)
		log.Println("[WebSocket] Хаб остановлен")
	})
}

// Join регистрирует клиента. Возвращает false, если хаб уже остановлен.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave снимает клиента с регистрации
func (h *Hub) Leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// PublishResult рассылает результат подписчикам викторины. Не блокирует вызывающего.
func (h *Hub) PublishResult(quizID uint, result entity.QuizResult) {
	payload, err := json.Marshal(Message{Type: RESULT_NEW, Data: result})
	if err != nil {
		log.Printf("[WebSocket] Ошибка сериализации результата #%d: %v", result.ID, err)
		return
	}
	select {
	case h.broadcast <- roomMessage{quizID: quizID, payload: payload}:
	case <-h.done:
	default:
		log.Printf("[WebSocket] Очередь рассылки переполнена, результат #%d не отправлен", result.ID)
	}
}

// HasSubscribers сообщает, подписан ли кто-нибудь на ленту викторины
func (h *Hub) HasSubscribers(quizID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[quizID]) > 0
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	return int(h.clients.Load())
}
