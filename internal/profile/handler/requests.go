package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Debbarh/qr-card-connect-hub/internal/profile/models"
	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateProfileRequest is the HTTP request body for POST /profiles.
type CreateProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Company string `json:"company" validate:"required_if=Type professional"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Photo   string `json:"photo" validate:"omitempty,url"`
	Logo    string `json:"logo" validate:"omitempty,url"`
	Type    string `json:"type" validate:"required,oneof=personal professional"`
}

// Validate checks structural constraints. Field-level business rules such as
// the email format live on the model.
func (r *CreateProfileRequest) Validate() error {
	return translateValidation(validate.Struct(r))
}

// ToInput converts the request to a domain input. Call Validate first.
func (r *CreateProfileRequest) ToInput() models.NewProfileInput {
	return models.NewProfileInput{
		Name:    r.Name,
		Title:   r.Title,
		Company: r.Company,
		Email:   r.Email,
		Phone:   r.Phone,
		Photo:   r.Photo,
		Logo:    r.Logo,
		Type:    models.ProfileType(r.Type),
	}
}

// UpdateStatusRequest is the HTTP request body for PATCH /profiles/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive archived"`

	parsedStatus models.ProfileStatus
}

// Validate validates and parses the request.
func (r *UpdateStatusRequest) Validate() error {
	if err := translateValidation(validate.Struct(r)); err != nil {
		return err
	}
	status, err := models.ParseProfileStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

// ParsedStatus returns the validated status.
func (r *UpdateStatusRequest) ParsedStatus() models.ProfileStatus {
	return r.parsedStatus
}

func translateValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("%s failed on the %q rule", strings.ToLower(f.Field()), f.Tag()))
	}
	return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
}
