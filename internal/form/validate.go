package form

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate recomputes the full error map from the current state and replaces
// the stored map wholesale. It returns true iff the draft is valid.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validate()
}

func (c *Controller) validate() bool {
	errs := make(map[string]string)

	if strings.TrimSpace(c.state.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(c.state.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(c.state.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(c.state.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(c.state.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if c.state.DateOfBirth == "" {
		errs["dateOfBirth"] = "Date of birth is required"
	}

	if c.state.Height == "" {
		errs["height"] = "Height is required"
	}
	if c.state.Weight == "" {
		errs["weight"] = "Weight is required"
	}
	if c.state.Category == "" {
		errs["category"] = "Category is required"
	}

	if strings.TrimSpace(c.state.Bio) == "" {
		errs["bio"] = "Bio is required"
	}
	if strings.TrimSpace(c.state.Experience) == "" {
		errs["experience"] = "Experience is required"
	}

	if strings.TrimSpace(c.state.Emergency.Name) == "" {
		errs["emergencyContact.name"] = "Emergency contact name is required"
	}
	if strings.TrimSpace(c.state.Emergency.Relationship) == "" {
		errs["emergencyContact.relationship"] = "Relationship is required"
	}
	if strings.TrimSpace(c.state.Emergency.Phone) == "" {
		errs["emergencyContact.phone"] = "Emergency contact phone is required"
	}

	if c.profile == nil {
		errs["profilePhoto"] = "Profile photo is required"
	}
	if len(c.additional) == 0 {
		errs["additionalPhotos"] = "At least one additional photo is required"
	}

	if !c.state.TermsAccepted {
		errs["termsAccepted"] = "You must accept the terms and conditions"
	}

	c.errors = errs
	return len(errs) == 0
}
