package models

import (
	"strings"
	"time"
)

// Certificate links an issued PDF artifact to its student and issuer.
// ArtifactPath is set when the row is written and never changes afterwards.
type Certificate struct {
	ID             string    `json:"id" db:"id"`
	Author         string    `json:"author" db:"author"`
	Student        string    `json:"student" db:"student"`
	Category       string    `json:"category" db:"category" example:"Algorithms"`
	StartDate      string    `json:"startDate" db:"start_date" example:"01.02.2025"`
	EndDate        string    `json:"endDate" db:"end_date" example:"01.05.2025"`
	Hours          string    `json:"hours" db:"hours" example:"40"`
	RegisterNumber string    `json:"registerNumber" db:"register_number"`
	ArtifactPath   string    `json:"certificate" db:"artifact_path"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Populated relations, password excluded via User's json tags
	StudentProfile *User `json:"studentProfile,omitempty"`
	AuthorProfile  *User `json:"authorProfile,omitempty"`
}

// ShortID returns the printable short form of the certificate id: the last
// six characters, uppercased. This is what appears on the rendered PDF.
func (c *Certificate) ShortID() string {
	id := c.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}
