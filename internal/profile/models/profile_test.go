package models

import (
	"testing"
	"time"

	"github.com/google/uuid"

	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
)

func validInput() NewProfileInput {
	return NewProfileInput{
		Name:    "Jean Dupont",
		Title:   "Développeur Full Stack",
		Company: "TechCorp",
		Email:   "jean.dupont@techcorp.com",
		Phone:   "+33 6 12 34 56 78",
		Logo:    "https://example.com/logo.png",
		Type:    TypeProfessional,
	}
}

func TestNewProfileProfessional(t *testing.T) {
	now := time.Now()
	p, err := NewProfile(uuid.New(), validInput(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != StatusInactive {
		t.Fatalf("new profiles must start inactive, got %q", p.Status)
	}
	if p.QRData != "jean-dupont-techcorp" {
		t.Fatalf("expected qr data jean-dupont-techcorp, got %q", p.QRData)
	}
	if p.Company != "TechCorp" {
		t.Fatalf("expected company to be retained, got %q", p.Company)
	}
	if p.Logo == "" {
		t.Fatalf("expected logo to be retained for professional profiles")
	}
	if p.Photo != DefaultPhotoURL {
		t.Fatalf("expected placeholder photo, got %q", p.Photo)
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps pinned to creation time")
	}
}

func TestNewProfilePersonalDropsCompanyAndLogo(t *testing.T) {
	in := validInput()
	in.Type = TypePersonal
	p, err := NewProfile(uuid.New(), in, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.QRData != "jean-dupont-personal" {
		t.Fatalf("expected qr data jean-dupont-personal, got %q", p.QRData)
	}
	if p.Company != "" {
		t.Fatalf("company must be dropped for personal profiles, got %q", p.Company)
	}
	if p.Logo != "" {
		t.Fatalf("logo must be dropped for personal profiles, got %q", p.Logo)
	}
}

func TestNewProfileValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NewProfileInput)
	}{
		{"missing name", func(in *NewProfileInput) { in.Name = "  " }},
		{"missing title", func(in *NewProfileInput) { in.Title = "" }},
		{"missing email", func(in *NewProfileInput) { in.Email = "" }},
		{"malformed email", func(in *NewProfileInput) { in.Email = "not-an-email" }},
		{"missing phone", func(in *NewProfileInput) { in.Phone = "" }},
		{"unknown type", func(in *NewProfileInput) { in.Type = "corporate" }},
		{"professional without company", func(in *NewProfileInput) { in.Company = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := NewProfile(uuid.New(), in, time.Now())
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !dErrors.HasCode(err, dErrors.CodeValidation) {
				t.Fatalf("expected CodeValidation, got %v", err)
			}
		})
	}
}

func TestNewProfileKeepsExplicitPhoto(t *testing.T) {
	in := validInput()
	in.Photo = "https://example.com/me.png"
	p, err := NewProfile(uuid.New(), in, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Photo != "https://example.com/me.png" {
		t.Fatalf("expected explicit photo to be kept, got %q", p.Photo)
	}
}

func TestApplyStatus(t *testing.T) {
	p, err := NewProfile(uuid.New(), validInput(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	later := p.UpdatedAt.Add(time.Minute)
	p.ApplyStatus(StatusActive, later)
	if !p.IsActive() {
		t.Fatalf("expected profile to be active")
	}
	if !p.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt to advance on transition")
	}

	qr := p.QRData
	p.ApplyStatus(StatusArchived, later.Add(time.Minute))
	if p.QRData != qr {
		t.Fatalf("qr data must remain stable across transitions")
	}
}

func TestParseProfileStatus(t *testing.T) {
	for _, valid := range []string{"active", "inactive", "archived"} {
		if _, err := ParseProfileStatus(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseProfileStatus("deleted"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestParseProfileType(t *testing.T) {
	for _, valid := range []string{"personal", "professional"} {
		if _, err := ParseProfileType(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseProfileType("work"); err == nil {
		t.Fatalf("expected unknown type to be rejected")
	}
}
