package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"queuecare/internal/auth"
	"queuecare/internal/feed"
	"queuecare/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
)

// Настраиваем апгрейдер для WebSocket с разрешением всех источников.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler отдает ленту изменений талонов по WebSocket. Каждому клиенту
// уходят все события; фильтрация по владельцу выполняется на клиенте.
type FeedHandler struct {
	hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Serve обновляет соединение до WebSocket и подписывает клиента на хаб.
// URL: /api/tickets/ws
func (h *FeedHandler) Serve(c *gin.Context) {
	viewer := auth.ViewerFrom(c)

	sub, err := h.hub.Subscribe(c.Request.Context())
	if err != nil {
		c.String(http.StatusServiceUnavailable, "Лента изменений недоступна")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		log.Printf("Ошибка обновления до WebSocket для %s: %v", viewer.ID, err)
		return
	}

	client := &client{conn: conn, sub: sub, viewer: viewer}
	go client.writePump()
	client.readPump()
}

// client: одно подключение к ленте.
type client struct {
	conn   *websocket.Conn
	sub    *feed.Subscription
	viewer models.Viewer
}

// readPump только отслеживает разрыв соединения: клиент ничего не присылает.
func (c *client) readPump() {
	defer func() {
		c.sub.Close()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump пересылает события подписки клиенту.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.sub.Events():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				reason := "feed closed"
				if err := c.sub.Err(); err != nil {
					reason = err.Error()
				}
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, reason))
				return
			}
			payload, err := feed.Encode(ev)
			if err != nil {
				log.Printf("Не удалось закодировать событие %s: %v", ev.TicketID(), err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			// Отправка ping-сообщения для поддержания соединения.
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
