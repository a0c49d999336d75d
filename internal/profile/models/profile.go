package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
)

// ProfileType distinguishes personal cards from professional ones. Fixed at
// creation.
type ProfileType string

const (
	TypePersonal     ProfileType = "personal"
	TypeProfessional ProfileType = "professional"
)

// ParseProfileType validates a wire value.
func ParseProfileType(s string) (ProfileType, error) {
	switch ProfileType(s) {
	case TypePersonal, TypeProfessional:
		return ProfileType(s), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "profile type must be personal or professional")
	}
}

// ProfileStatus is the lifecycle state of a profile.
//
// Every directed transition among the three statuses is a legal single-profile
// operation; archived is not terminal. The only cross-profile effect is the
// compensation on activation: profiles currently active are demoted to
// inactive so at most one profile is active at any time. Archived profiles are
// never touched by that compensation.
type ProfileStatus string

const (
	StatusActive   ProfileStatus = "active"
	StatusInactive ProfileStatus = "inactive"
	StatusArchived ProfileStatus = "archived"
)

// ParseProfileStatus validates a wire value.
func ParseProfileStatus(s string) (ProfileStatus, error) {
	switch ProfileStatus(s) {
	case StatusActive, StatusInactive, StatusArchived:
		return ProfileStatus(s), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be active, inactive or archived")
	}
}

// DefaultPhotoURL is the placeholder portrait used when no photo is supplied.
const DefaultPhotoURL = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face"

// Profile is the aggregate for one identity card.
//
// Invariants:
//   - Name, Title, Email, Phone are non-empty
//   - Company is non-empty when Type is professional, empty otherwise
//   - Logo is only retained for professional profiles
//   - QRData is derived once at creation and never recomputed
//   - New profiles always start inactive
type Profile struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Company   string        `json:"company,omitempty"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Photo     string        `json:"photo"`
	Logo      string        `json:"logo,omitempty"`
	Type      ProfileType   `json:"type"`
	Status    ProfileStatus `json:"status"`
	QRData    string        `json:"qr_data"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}

// ApplyStatus sets the profile's status. All nine directed transitions are
// legal; idempotent transitions only bump the timestamp.
func (p *Profile) ApplyStatus(status ProfileStatus, now time.Time) {
	p.Status = status
	p.UpdatedAt = now
}

// NewProfileInput carries the creation fields. Photo and Logo are optional;
// Company is required for professional profiles.
type NewProfileInput struct {
	Name    string
	Title   string
	Company string
	Email   string
	Phone   string
	Photo   string
	Logo    string
	Type    ProfileType
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// NewProfile validates input and constructs an inactive profile with its
// payload derived once. It never produces a profile in any other status.
func NewProfile(id uuid.UUID, in NewProfileInput, now time.Time) (*Profile, error) {
	name := strings.TrimSpace(in.Name)
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, dErrors.New(dErrors.CodeValidation, "email format is invalid")
	}
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	if in.Type != TypePersonal && in.Type != TypeProfessional {
		return nil, dErrors.New(dErrors.CodeValidation, "profile type must be personal or professional")
	}
	if in.Type == TypeProfessional && company == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "company is required for professional profiles")
	}

	photo := in.Photo
	if photo == "" {
		photo = DefaultPhotoURL
	}

	p := &Profile{
		ID:        id,
		Name:      name,
		Title:     title,
		Email:     email,
		Phone:     phone,
		Photo:     photo,
		Type:      in.Type,
		Status:    StatusInactive,
		QRData:    EncodePayload(name, in.Type, company),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Type == TypeProfessional {
		p.Company = company
		p.Logo = in.Logo
	}
	return p, nil
}
