package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"queuecare/internal/feed"
	"queuecare/internal/models"
	"queuecare/internal/projection"
	"queuecare/internal/response"
	"queuecare/internal/storage"
)

// Source получает данные проекции по сети. Выборка идет по HTTP, лента по WebSocket.
type Source struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Dialer  *websocket.Dialer
}

func NewSource(baseURL, token string) *Source {
	return &Source{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    http.DefaultClient,
		Dialer:  websocket.DefaultDialer,
	}
}

// Fetch загружает талоны. Без Limit в фильтре выборка читается постранично,
// пока сервер отдает новые талоны: сервер может ограничивать размер страницы.
func (s *Source) Fetch(ctx context.Context, filter storage.ListFilter) ([]models.Ticket, error) {
	if filter.Limit > 0 {
		return s.fetchPage(ctx, filter)
	}

	var all []models.Ticket
	seen := make(map[string]bool)
	for {
		page, err := s.fetchPage(ctx, filter)
		if err != nil {
			return nil, err
		}
		added := 0
		for _, t := range page {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			all = append(all, t)
			added++
		}
		if added == 0 {
			break
		}
		filter.Offset += len(page)
	}
	if all == nil {
		all = []models.Ticket{}
	}
	return all, nil
}

func (s *Source) fetchPage(ctx context.Context, filter storage.ListFilter) ([]models.Ticket, error) {
	query := url.Values{}
	if filter.OwnerID != "" {
		query.Set("patient_id", filter.OwnerID)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	endpoint := s.BaseURL + "/api/tickets"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr response.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("ws: fetch tickets: status %d %s", resp.StatusCode, apiErr.Code)
	}

	var tickets []models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		return nil, fmt.Errorf("ws: decode tickets: %w", err)
	}
	return tickets, nil
}

func (s *Source) Subscribe(ctx context.Context) (projection.Stream, error) {
	endpoint, err := s.feedURL()
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.Token)

	conn, resp, err := s.Dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("ws: dial %s: status %d: %w", endpoint, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("ws: dial %s: %w", endpoint, err)
	}

	st := &stream{conn: conn, events: make(chan feed.Event, 64), stop: make(chan struct{})}
	go contextDone(ctx, conn, st.stop)
	go st.readLoop()
	return st, nil
}

func (s *Source) feedURL() (string, error) {
	u, err := url.Parse(s.BaseURL + "/api/tickets/ws")
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// stream: подписка на ленту по WebSocket. События декодируются на границе;
// некорректные сообщения пропускаются.
type stream struct {
	conn      *websocket.Conn
	events    chan feed.Event
	stop      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

func (s *stream) Events() <-chan feed.Event { return s.events }

func (s *stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close закрывает соединение; повторный вызов и вызов на nil безопасны.
func (s *stream) Close() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		close(s.stop)
		s.conn.Close()
	})
	return nil
}

func (s *stream) readLoop() {
	defer close(s.events)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
		ev, err := feed.Decode(data)
		if err != nil {
			log.Printf("Пропущено некорректное сообщение ленты: %v", err)
			continue
		}
		select {
		case s.events <- ev:
		case <-s.stop:
			return
		}
	}
}

// contextDone закрывает соединение при отмене ctx, пока поток не остановлен.
func contextDone(ctx context.Context, conn *websocket.Conn, stop <-chan struct{}) {
	select {
	case <-ctx.Done():
		conn.Close()
	case <-stop:
	}
}
