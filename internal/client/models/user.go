// Package models defines the client-side user record and the codecs for the
// server's wire format.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Gender is the fixed set of values the server accepts.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists every accepted value, in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Date is a calendar date serialized as YYYY-MM-DD. The zero value marshals
// as null, matching records where the server omits the field.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp accepts both RFC 3339 and the server's zone-less isoformat
// ("2006-01-02T15:04:05.999999"). It marshals as RFC 3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == nil || *s == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, *s); err == nil {
			*t = Timestamp{parsed}
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", *s)
}

// TagSet is an unordered set of interest tags. The server stores it as a
// JSON array re-encoded into a string field, so unmarshalling accepts both
// a plain array and the string-encoded form. It always marshals as an array;
// the string encoding never leaves the wire boundary.
type TagSet []string

func (t TagSet) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

func (t *TagSet) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = nil
		return nil
	}

	var tags []string
	if err := json.Unmarshal(b, &tags); err == nil {
		*t = tags
		return nil
	}

	var encoded string
	if err := json.Unmarshal(b, &encoded); err != nil {
		return fmt.Errorf("interests: %w", err)
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		*t = nil
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &tags); err == nil {
		*t = tags
		return nil
	}

	// Tolerate hand-entered comma-separated values.
	parts := strings.Split(encoded, ",")
	tags = tags[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	*t = tags
	return nil
}

// Contains reports whether tag is present; order is irrelevant.
func (t TagSet) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// User is a profile record as returned by the server. Public listings omit
// phone number, date of birth and timestamps; those fields stay zero.
type User struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth Date      `json:"date_of_birth,omitempty"`
	Gender      Gender    `json:"gender"`
	Interests   TagSet    `json:"interests"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   Timestamp `json:"created_at,omitempty"`
	UpdatedAt   Timestamp `json:"updated_at,omitempty"`
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate store-owned state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Interests != nil {
		c.Interests = append(TagSet(nil), u.Interests...)
	}
	return &c
}
