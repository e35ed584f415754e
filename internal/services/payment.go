package services

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"time"

	"kenics-pageant-site/internal/models"
)

const (
	refLength = 9
	refChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// PaymentStatus is the outcome shown on the payment-completion page
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentService builds the payment-completion summary from the provider's
// redirect parameters. There is no provider API call here; the outcome is
// decided by the status parameter the provider appends to the redirect, which
// keeps the page deterministic.
type PaymentService struct {
	now func() time.Time
}

// NewPaymentService creates a payment service
func NewPaymentService() *PaymentService {
	return &PaymentService{now: time.Now}
}

// Verify derives the payment outcome and transaction summary from the
// redirect query parameters.
func (s *PaymentService) Verify(params url.Values) (PaymentStatus, models.Transaction) {
	status := PaymentFailed
	if params.Get("status") == "successful" {
		status = PaymentSuccess
	}

	tx := models.Transaction{
		Reference: params.Get("tx_ref"),
		Amount:    params.Get("amount"),
		Name:      params.Get("name"),
		Date:      s.now().Format("January 2, 2006 03:04 PM"),
	}
	if tx.Reference == "" {
		tx.Reference = "TXN-" + generateReference()
	}
	if tx.Amount == "" {
		tx.Amount = "2,000.00"
	}
	if tx.Name == "" {
		tx.Name = "Contestant Registration"
	}

	return status, tx
}

// generateReference generates a random 9-character transaction reference
func generateReference() string {
	ref := make([]byte, refLength)
	for i := range ref {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(refChars))))
		ref[i] = refChars[n.Int64()]
	}
	return string(ref)
}
