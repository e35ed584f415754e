package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kenics-pageant-site/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/registration", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"reg-1","flutterwavePaymentUrl":{"data":{"link":"https://pay.example/abc"}}}`))
	}))
	defer server.Close()

	mutation := NewMutation(backend.NewClient(server.URL, 5*time.Second))

	resp, err := mutation.Trigger(context.Background(), map[string]string{"firstName": "Sarah"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "reg-1", resp.ID)
	require.NotNil(t, resp.FlutterwavePaymentURL)
	assert.Equal(t, "https://pay.example/abc", resp.FlutterwavePaymentURL.Data.Link)
	assert.False(t, mutation.InFlight())
}

func TestTriggerMissingRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"reg-2","message":"Registration received"}`))
	}))
	defer server.Close()

	mutation := NewMutation(backend.NewClient(server.URL, 5*time.Second))

	resp, err := mutation.Trigger(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.FlutterwavePaymentURL)
	assert.Equal(t, "Registration received", resp.Message)
}

func TestTriggerRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	mutation := NewMutation(backend.NewClient(server.URL, 5*time.Second))

	done := make(chan error, 1)
	go func() {
		_, err := mutation.Trigger(context.Background(), nil, nil)
		done <- err
	}()

	// wait for the first trigger to be in flight
	require.Eventually(t, mutation.InFlight, time.Second, 5*time.Millisecond)

	_, err := mutation.Trigger(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrMutationInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, mutation.InFlight())
}

func TestTriggerClearsFlagOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad request"}`))
	}))
	defer server.Close()

	mutation := NewMutation(backend.NewClient(server.URL, 5*time.Second))

	_, err := mutation.Trigger(context.Background(), nil, nil)
	require.Error(t, err)
	assert.False(t, mutation.InFlight())

	// a subsequent trigger is allowed again
	_, err = mutation.Trigger(context.Background(), nil, nil)
	require.Error(t, err)
}
