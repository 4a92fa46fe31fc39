package dto

import "github.com/otabek/davomat/internal/app/models"

// IssueCertificateRequest carries everything printed on the certificate.
// Dates and hours are free-form strings because they are rendered verbatim.
type IssueCertificateRequest struct {
	Student        string `json:"student" binding:"required,uuid" example:"7d4a2c1e-9f3b-4a6d-8e5c-0b1a2c3d4e5f"`
	Category       string `json:"category" binding:"required" example:"Algorithms"`
	StartDate      string `json:"startDate" binding:"required" example:"01.02.2025"`
	EndDate        string `json:"endDate" binding:"required" example:"01.05.2025"`
	Hours          string `json:"hours" binding:"required" example:"40"`
	RegisterNumber string `json:"registerNumber" binding:"required" example:"N-0042"`
}

// CertificateResponse is the stored certificate plus the resolvable
// download URL for its artifact
type CertificateResponse struct {
	*models.Certificate
	CertificateURL string `json:"certificateUrl" example:"http://localhost:8080/uploads/certificate/1714656000000/certificate_7d4a2c1e.pdf"`
}
