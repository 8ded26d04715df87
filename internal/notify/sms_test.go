package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relay(t *testing.T, status int, body string) (*httptest.Server, *[]smsRequest) {
	t.Helper()
	var received []smsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-sms", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var req smsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		received = append(received, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestSMSClient_Success(t *testing.T) {
	srv, received := relay(t, http.StatusOK, `{"success":true,"sid":"SM123"}`)
	client := NewSMSClient(srv.URL+"/", time.Second)

	sid, err := client.Send(context.Background(), Request{Recipient: "+15550001", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)
	require.Len(t, *received, 1)
	assert.Equal(t, smsRequest{PhoneNumber: "+15550001", Message: "hi"}, (*received)[0])
}

func TestSMSClient_Failures(t *testing.T) {
	srv, _ := relay(t, http.StatusOK, `{"success":false,"error":"invalid number"}`)
	_, err := NewSMSClient(srv.URL, time.Second).Send(context.Background(), Request{Recipient: "x", Message: "hi"})
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "invalid number")

	srv, _ = relay(t, http.StatusInternalServerError, `{"error":"twilio down"}`)
	_, err = NewSMSClient(srv.URL, time.Second).Send(context.Background(), Request{Recipient: "+1", Message: "hi"})
	assert.ErrorIs(t, err, ErrDelivery)

	_, err = NewSMSClient("http://127.0.0.1:1", 100*time.Millisecond).Send(context.Background(), Request{Recipient: "+1", Message: "hi"})
	assert.ErrorIs(t, err, ErrDelivery)
}
