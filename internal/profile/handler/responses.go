package handler

import (
	"time"

	"github.com/Debbarh/qr-card-connect-hub/internal/profile/models"
	"github.com/Debbarh/qr-card-connect-hub/internal/qrcode"
)

// ProfileResponse is the HTTP representation of a profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Photo     string    `json:"photo"`
	Logo      string    `json:"logo,omitempty"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	QRData    string    `json:"qr_data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromProfile converts a domain profile to an HTTP response.
func FromProfile(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Title:     p.Title,
		Company:   p.Company,
		Email:     p.Email,
		Phone:     p.Phone,
		Photo:     p.Photo,
		Logo:      p.Logo,
		Type:      string(p.Type),
		Status:    string(p.Status),
		QRData:    p.QRData,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// StatusCounts summarises the collection by status.
type StatusCounts struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Archived int `json:"archived"`
}

// ListProfilesResponse is the HTTP response for GET /profiles. Counts always
// cover the whole collection, even when the list is filtered.
type ListProfilesResponse struct {
	Profiles []*ProfileResponse `json:"profiles"`
	Counts   StatusCounts       `json:"counts"`
}

// FromProfileList converts the listed profiles plus the full collection used
// for counting.
func FromProfileList(profiles, all []*models.Profile) *ListProfilesResponse {
	resp := &ListProfilesResponse{
		Profiles: make([]*ProfileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, FromProfile(p))
	}
	for _, p := range all {
		switch p.Status {
		case models.StatusActive:
			resp.Counts.Active++
		case models.StatusInactive:
			resp.Counts.Inactive++
		case models.StatusArchived:
			resp.Counts.Archived++
		}
	}
	return resp
}

// PatternResponse is the HTTP response for GET /profiles/{id}/qr.
type PatternResponse struct {
	Payload  string   `json:"payload"`
	GridSize int      `json:"grid_size"`
	Grid     [][]bool `json:"grid"`
}

// FromPattern converts a rendered grid to an HTTP response.
func FromPattern(payload string, grid qrcode.Grid) *PatternResponse {
	return &PatternResponse{
		Payload:  payload,
		GridSize: grid.Size(),
		Grid:     grid,
	}
}
