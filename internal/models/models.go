package models

import (
	"bytes"
	"encoding/json"
)

// Category identifies a pageant contest category
type Category string

const (
	CategoryBaby Category = "baby"
	CategoryTeen Category = "teen"
	CategoryMiss Category = "miss"
	CategoryMrs  Category = "mrs"
)

// Valid reports whether the category is one of the known contest categories
func (c Category) Valid() bool {
	switch c {
	case CategoryBaby, CategoryTeen, CategoryMiss, CategoryMrs:
		return true
	}
	return false
}

// SocialMedia holds a contestant's optional social handles
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// EmergencyContact holds the contact collected at registration time
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// VoteScore holds the tally attached to a contestant record
type VoteScore struct {
	Votes int `json:"voteCount"`
}

// Contestant represents a registered pageant contestant as returned by the
// backend. The backend stores socialMedia and emergencyContact as JSON text
// fields, so detail responses may carry them either as objects or as
// JSON-encoded strings; UnmarshalJSON accepts both.
type Contestant struct {
	ID           string           `json:"id"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	DateOfBirth  string           `json:"dateOfBirth"`
	Height       string           `json:"height,omitempty"`
	Weight       string           `json:"weight,omitempty"`
	Category     Category         `json:"category"`
	Bio          string           `json:"bio"`
	Experience   string           `json:"experience"`
	Achievements string           `json:"achievements,omitempty"`
	SocialMedia  SocialMedia      `json:"socialMedia"`
	Emergency    EmergencyContact `json:"emergencyContact"`
	Photos       []string         `json:"photos"`
	Videos       []string         `json:"videos"`
	Score        VoteScore        `json:"score"`
}

// UnmarshalJSON decodes a contestant record, tolerating nested sub-records
// that arrive as JSON-encoded strings instead of objects.
func (c *Contestant) UnmarshalJSON(data []byte) error {
	type alias Contestant
	aux := struct {
		SocialMedia json.RawMessage `json:"socialMedia"`
		Emergency   json.RawMessage `json:"emergencyContact"`
		*alias
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if err := decodeNested(aux.SocialMedia, &c.SocialMedia); err != nil {
		return err
	}
	return decodeNested(aux.Emergency, &c.Emergency)
}

// decodeNested unmarshals raw JSON into v, unwrapping one level of string
// encoding when the value is a JSON string rather than an object.
func decodeNested(raw json.RawMessage, v interface{}) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		if inner == "" {
			return nil
		}
		return json.Unmarshal([]byte(inner), v)
	}
	return json.Unmarshal(raw, v)
}

// FullName returns the contestant's display name
func (c Contestant) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// VotePackage is a static pricing tier for the vote purchase flow
type VotePackage struct {
	Votes   int  `json:"votes"`
	Price   int  `json:"price"`
	PerVote int  `json:"perVote"`
	Popular bool `json:"popular"`
}

// Transaction summarizes a payment redirect for the completion page
type Transaction struct {
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Name      string `json:"name"`
	Date      string `json:"date"`
}
