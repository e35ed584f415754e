package data

import (
	"context"
	"errors"
	"sync/atomic"

	"kenics-pageant-site/internal/backend"
)

// ErrMutationInFlight is returned when Trigger is called while a previous
// submission is still running.
var ErrMutationInFlight = errors.New("a registration is already being submitted")

// PaymentLink is the nested payment redirect inside a registration response
type PaymentLink struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
}

// RegistrationResponse is the backend's reply to a successful registration.
// FlutterwavePaymentURL may be absent; that is a completed registration with
// no payment redirect.
type RegistrationResponse struct {
	ID                    string       `json:"id,omitempty"`
	Message               string       `json:"message,omitempty"`
	FlutterwavePaymentURL *PaymentLink `json:"flutterwavePaymentUrl,omitempty"`
}

// Mutation submits registrations to the backend. At most one submission may
// be in flight per Mutation instance; a concurrent second Trigger returns
// ErrMutationInFlight rather than queueing.
type Mutation struct {
	client   *backend.Client
	path     string
	inFlight int32
}

// NewMutation creates a registration mutation
func NewMutation(client *backend.Client) *Mutation {
	return &Mutation{
		client: client,
		path:   "/registration",
	}
}

// InFlight reports whether a submission is currently running
func (m *Mutation) InFlight() bool {
	return atomic.LoadInt32(&m.inFlight) == 1
}

// Trigger POSTs the multipart registration payload and decodes the response.
// The in-flight flag is cleared on every return path.
func (m *Mutation) Trigger(ctx context.Context, fields map[string]string, files []backend.File) (*RegistrationResponse, error) {
	if !atomic.CompareAndSwapInt32(&m.inFlight, 0, 1) {
		return nil, ErrMutationInFlight
	}
	defer atomic.StoreInt32(&m.inFlight, 0)

	var resp RegistrationResponse
	if err := m.client.PostForm(ctx, m.path, fields, files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
