// Package form implements the registration form controller: the mutable draft
// of a contestant record, its file selections, field-level validation and the
// submission pipeline that forwards the draft to the backend.
package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/models"
)

// MaxAdditionalPhotos caps the optional photo list. The cap is enforced here
// in the controller, not just by the page's add affordance.
const MaxAdditionalPhotos = 5

// ErrTooManyPhotos is returned when adding photos would exceed MaxAdditionalPhotos
var ErrTooManyPhotos = fmt.Errorf("at most %d additional photos are allowed", MaxAdditionalPhotos)

// ErrNoSuchPhoto is returned when removing a photo index that does not exist
var ErrNoSuchPhoto = errors.New("no photo at this index")

// State is the client-local draft of a contestant record
type State struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DateOfBirth   string
	Height        string
	Weight        string
	Category      string
	Bio           string
	Experience    string
	Achievements  string
	SocialMedia   models.SocialMedia
	Emergency     models.EmergencyContact
	TermsAccepted bool
}

// Controller owns one registration session: the draft state, the photo
// selections and the validation error map. A controller is bound to a single
// form session; the mutex only guards against overlapping requests for the
// same session.
type Controller struct {
	mu         sync.Mutex
	state      State
	profile    *backend.File
	additional []backend.File
	errors     map[string]string
	submitting bool
}

// New creates an empty registration draft
func New() *Controller {
	return &Controller{
		errors: make(map[string]string),
	}
}

// SetField updates one field of the draft. Dotted names ("parent.child")
// update a single child of a nested record, leaving siblings untouched. Any
// existing error entry for exactly this field name is cleared; no other
// validation runs. termsAccepted is stored as a boolean parsed from the
// checkbox value.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setField(name, value); err != nil {
		return err
	}
	delete(c.errors, name)
	return nil
}

func (c *Controller) setField(name, value string) error {
	if parent, child, ok := strings.Cut(name, "."); ok {
		return c.setNested(parent, child, value)
	}

	switch name {
	case "firstName":
		c.state.FirstName = value
	case "lastName":
		c.state.LastName = value
	case "email":
		c.state.Email = value
	case "phone":
		c.state.Phone = value
	case "dateOfBirth":
		c.state.DateOfBirth = value
	case "height":
		c.state.Height = value
	case "weight":
		c.state.Weight = value
	case "category":
		c.state.Category = value
	case "bio":
		c.state.Bio = value
	case "experience":
		c.state.Experience = value
	case "achievements":
		c.state.Achievements = value
	case "termsAccepted":
		c.state.TermsAccepted = value == "true" || value == "on"
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

func (c *Controller) setNested(parent, child, value string) error {
	switch parent {
	case "socialMedia":
		switch child {
		case "instagram":
			c.state.SocialMedia.Instagram = value
		case "facebook":
			c.state.SocialMedia.Facebook = value
		case "twitter":
			c.state.SocialMedia.Twitter = value
		case "tiktok":
			c.state.SocialMedia.TikTok = value
		default:
			return fmt.Errorf("unknown form field %q", parent+"."+child)
		}
	case "emergencyContact":
		switch child {
		case "name":
			c.state.Emergency.Name = value
		case "relationship":
			c.state.Emergency.Relationship = value
		case "phone":
			c.state.Emergency.Phone = value
		default:
			return fmt.Errorf("unknown form field %q", parent+"."+child)
		}
	default:
		return fmt.Errorf("unknown form field %q", parent+"."+child)
	}
	return nil
}

// SelectProfilePhoto replaces the single profile photo slot
func (c *Controller) SelectProfilePhoto(file backend.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profile = &file
	delete(c.errors, "profilePhoto")
}

// ProfilePhoto returns the selected profile photo, if any
func (c *Controller) ProfilePhoto() *backend.File {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.profile == nil {
		return nil
	}
	photo := *c.profile
	return &photo
}

// AddAdditionalPhotos appends newly selected files to the additional photo
// list. Adding past MaxAdditionalPhotos is rejected whole, with no files added.
func (c *Controller) AddAdditionalPhotos(files ...backend.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.additional)+len(files) > MaxAdditionalPhotos {
		return ErrTooManyPhotos
	}
	c.additional = append(c.additional, files...)
	if len(c.additional) > 0 {
		delete(c.errors, "additionalPhotos")
	}
	return nil
}

// RemoveAdditionalPhoto deletes the photo at index i, shifting later photos down
func (c *Controller) RemoveAdditionalPhoto(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.additional) {
		return ErrNoSuchPhoto
	}
	c.additional = append(c.additional[:i], c.additional[i+1:]...)
	return nil
}

// AdditionalPhotos returns a copy of the additional photo list
func (c *Controller) AdditionalPhotos() []backend.File {
	c.mu.Lock()
	defer c.mu.Unlock()

	photos := make([]backend.File, len(c.additional))
	copy(photos, c.additional)
	return photos
}

// Snapshot returns a copy of the current draft state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Errors returns a copy of the current validation error map
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make(map[string]string, len(c.errors))
	for field, msg := range c.errors {
		errs[field] = msg
	}
	return errs
}

// FieldError returns the validation message for one field, if present
func (c *Controller) FieldError(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg, ok := c.errors[name]
	return msg, ok
}

// Submitting reports whether a submission is currently running
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}
