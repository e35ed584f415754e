package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/data"

	"github.com/rs/zerolog/log"
)

// ErrValidation is returned by Submit when the draft fails validation; the
// per-field details are left in the error map and no network call is made.
var ErrValidation = errors.New("please fill in all required fields")

// Result is the outcome of a successful submission. PaymentURL is empty when
// the backend completed the registration without a payment redirect; that case
// is reported explicitly rather than left silent.
type Result struct {
	PaymentURL string
	Message    string
}

// Payload serializes the draft into the backend's multipart wire shape: every
// flat field as a text part, the nested records as JSON-encoded text parts,
// and the profile photo followed by the additional photos in order under the
// shared files key. The field list is fixed rather than derived from the
// state's shape, so the wire contract is visible here in full.
func (c *Controller) Payload() (map[string]string, []backend.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload()
}

func (c *Controller) payload() (map[string]string, []backend.File, error) {
	socialMedia, err := json.Marshal(c.state.SocialMedia)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode social media: %w", err)
	}
	emergency, err := json.Marshal(c.state.Emergency)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode emergency contact: %w", err)
	}

	fields := map[string]string{
		"firstName":        c.state.FirstName,
		"lastName":         c.state.LastName,
		"email":            c.state.Email,
		"phone":            c.state.Phone,
		"dateOfBirth":      c.state.DateOfBirth,
		"height":           c.state.Height,
		"weight":           c.state.Weight,
		"category":         c.state.Category,
		"bio":              c.state.Bio,
		"experience":       c.state.Experience,
		"achievements":     c.state.Achievements,
		"socialMedia":      string(socialMedia),
		"emergencyContact": string(emergency),
		"termsAccepted":    strconv.FormatBool(c.state.TermsAccepted),
	}

	files := make([]backend.File, 0, 1+len(c.additional))
	if c.profile != nil {
		files = append(files, *c.profile)
	}
	files = append(files, c.additional...)

	return fields, files, nil
}

// Submit validates the draft and forwards it through the mutation. On
// validation failure it returns ErrValidation before any network call. On
// backend failure the draft state is left untouched so the user can retry.
func (c *Controller) Submit(ctx context.Context, mutation *data.Mutation) (*Result, error) {
	c.mu.Lock()
	if !c.validate() {
		c.mu.Unlock()
		return nil, ErrValidation
	}
	c.submitting = true
	fields, files, err := c.payload()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if err != nil {
		return nil, err
	}

	resp, err := mutation.Trigger(ctx, fields, files)
	if err != nil {
		return nil, err
	}

	result := &Result{Message: resp.Message}
	if resp.FlutterwavePaymentURL != nil {
		result.PaymentURL = resp.FlutterwavePaymentURL.Data.Link
	} else {
		log.Info().Str("email", fields["email"]).Msg("Registration completed without payment redirect")
	}
	return result, nil
}
