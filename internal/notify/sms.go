package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"queuecare/internal/breaker"
)

type smsRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

type smsResponse struct {
	Success bool   `json:"success"`
	SID     string `json:"sid"`
	Error   string `json:"error"`
}

// SMSClient отправляет уведомления через SMS-шлюз (POST /send-sms).
type SMSClient struct {
	baseURL string
	client  *http.Client
	breaker *breaker.CircuitBreaker
}

func NewSMSClient(baseURL string, timeout time.Duration) *SMSClient {
	return &SMSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: breaker.New("sms-relay", breaker.DefaultSettings()),
	}
}

func (c *SMSClient) Send(ctx context.Context, req Request) (string, error) {
	var sid string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		sid, err = c.send(ctx, req)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return sid, nil
}

func (c *SMSClient) send(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(smsRequest{PhoneNumber: req.Recipient, Message: req.Message})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-sms", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("relay status %d: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		return "", fmt.Errorf("relay status %d: %s", resp.StatusCode, result.Error)
	}
	return result.SID, nil
}
