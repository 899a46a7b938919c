// Package forms decodes, validates, and forwards the three public form
// submissions: membership, contact, and partnership requests.
package forms

import (
	"encoding/json"
	"net/url"
	"strings"
)

// FlexBool is a consent flag that accepts the textual encodings browsers
// and JSON clients actually send: true, "true", "True", "on", "1", 1.
// Anything else is false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(truthy(v))
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "True" || t == "on" || t == "1"
	case float64:
		return t == 1
	case int:
		return t == 1
	}
	return false
}

func formBool(s string) FlexBool {
	return FlexBool(truthy(s))
}

// JoinRequest is a membership form submission.
type JoinRequest struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email" validate:"required"`
	Phone        string   `json:"phone,omitempty"`
	City         string   `json:"city,omitempty"`
	Level        string   `json:"level,omitempty"`
	Interests    string   `json:"interests,omitempty"`
	AgreePrivacy FlexBool `json:"agree_privacy"`
	AgreeCoC     FlexBool `json:"agree_coc"`
}

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email" validate:"required"`
	Subject      string   `json:"subject" validate:"required"`
	Message      string   `json:"message" validate:"required"`
	AgreePrivacy FlexBool `json:"agree_privacy"`
	AgreeCoC     FlexBool `json:"agree_coc"`
}

// PartnershipRequest is a partnership form submission.
type PartnershipRequest struct {
	Organization string   `json:"organization" validate:"required"`
	ContactName  string   `json:"contact_name" validate:"required"`
	Email        string   `json:"email" validate:"required"`
	Website      string   `json:"website,omitempty"`
	Message      string   `json:"message,omitempty"`
	AgreePrivacy FlexBool `json:"agree_privacy"`
	AgreeCoC     FlexBool `json:"agree_coc"`
}

// consent lets the service check both flags without knowing the kind.
type consented interface {
	consentGiven() bool
	email() string
}

func (r JoinRequest) consentGiven() bool        { return bool(r.AgreePrivacy) && bool(r.AgreeCoC) }
func (r ContactMessage) consentGiven() bool     { return bool(r.AgreePrivacy) && bool(r.AgreeCoC) }
func (r PartnershipRequest) consentGiven() bool { return bool(r.AgreePrivacy) && bool(r.AgreeCoC) }

func (r JoinRequest) email() string        { return r.Email }
func (r ContactMessage) email() string     { return r.Email }
func (r PartnershipRequest) email() string { return r.Email }

func (r *JoinRequest) fromForm(values url.Values) {
	r.Name = strings.TrimSpace(values.Get("name"))
	r.Email = strings.TrimSpace(values.Get("email"))
	r.Phone = strings.TrimSpace(values.Get("phone"))
	r.City = strings.TrimSpace(values.Get("city"))
	r.Level = strings.TrimSpace(values.Get("level"))
	r.Interests = strings.TrimSpace(values.Get("interests"))
	r.AgreePrivacy = formBool(values.Get("agree_privacy"))
	r.AgreeCoC = formBool(values.Get("agree_coc"))
}

func (r *ContactMessage) fromForm(values url.Values) {
	r.Name = strings.TrimSpace(values.Get("name"))
	r.Email = strings.TrimSpace(values.Get("email"))
	r.Subject = strings.TrimSpace(values.Get("subject"))
	r.Message = strings.TrimSpace(values.Get("message"))
	r.AgreePrivacy = formBool(values.Get("agree_privacy"))
	r.AgreeCoC = formBool(values.Get("agree_coc"))
}

func (r *PartnershipRequest) fromForm(values url.Values) {
	r.Organization = strings.TrimSpace(values.Get("organization"))
	r.ContactName = strings.TrimSpace(values.Get("contact_name"))
	r.Email = strings.TrimSpace(values.Get("email"))
	r.Website = strings.TrimSpace(values.Get("website"))
	r.Message = strings.TrimSpace(values.Get("message"))
	r.AgreePrivacy = formBool(values.Get("agree_privacy"))
	r.AgreeCoC = formBool(values.Get("agree_coc"))
}
