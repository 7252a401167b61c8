package websocket

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента.
	pongWait = 60 * time.Second

	// Лента только для чтения: входящие сообщения клиента маленькие
	maxMessageSize = 512

	defaultClientBufferSize = 32
)

// ClientConfig содержит настройки для клиента
type ClientConfig struct {
	BufferSize   int
	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration
}

// DefaultClientConfig возвращает конфигурацию клиента по умолчанию
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BufferSize:   defaultClientBufferSize,
		PingInterval: (pongWait * 9) / 10,
		PongWait:     pongWait,
		WriteWait:    writeWait,
	}
}

func (c ClientConfig) normalized() ClientConfig {
	def := DefaultClientConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = def.BufferSize
	}
	if c.PongWait <= 0 {
		c.PongWait = def.PongWait
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongWait {
		c.PingInterval = (c.PongWait * 9) / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = def.WriteWait
	}
	return c
}

// Client — подписчик ленты результатов одной викторины
type Client struct {
	ConnectionID string
	QuizID       uint

	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	config ClientConfig

	// Флаг, указывающий что канал send закрыт
	sendClosed atomic.Bool
}

// NewClient создает нового клиента
func NewClient(hub *Hub, conn *websocket.Conn, quizID uint, config ClientConfig) *Client {
	config = config.normalized()
	return &Client{
		ConnectionID: uuid.New().String(),
		QuizID:       quizID,
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, config.BufferSize),
		config:       config,
	}
}

// closeSend закрывает канал отправки ровно один раз
func (c *Client) closeSend() {
	if c.sendClosed.CompareAndSwap(false, true) {
		close(c.send)
	}
}

// trySend кладет сообщение в буфер клиента; false, если буфер полон или закрыт
func (c *Client) trySend(message []byte) bool {
	if c.sendClosed.Load() {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// readPump держит соединение живым и обнаруживает отключение клиента.
// Сообщения от клиента не обрабатываются.
func (c *Client) readPump() {
	defer func() {
		c.hub.Leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WebSocket] Read error (quiz: %d, conn: %s): %v", c.QuizID, c.ConnectionID, err)
			}
			return
		}
	}
}

// writePump отправляет сообщения клиенту из канала send и пингует его
func (c *Client) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait)); err != nil {
				return
			}
			if !ok {
				// Хаб закрыл канал клиента
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WebSocket] Write error (quiz: %d, conn: %s): %v", c.QuizID, c.ConnectionID, err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Serve регистрирует клиента в хабе и запускает насосы чтения и записи.
// Если хаб остановлен, соединение закрывается.
func (c *Client) Serve() {
	if !c.hub.Join(c) {
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		c.conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
