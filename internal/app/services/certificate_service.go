package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/certpdf"
	"github.com/otabek/davomat/internal/pkg/logger"
	"github.com/otabek/davomat/internal/pkg/metrics"
)

// CertificateRenderer turns certificate fields into a finished PDF
type CertificateRenderer interface {
	Render(f certpdf.Fields) ([]byte, error)
}

// ArtifactStorage persists rendered artifacts
type ArtifactStorage interface {
	SaveBytes(relPath string, data []byte) (string, error)
	Delete(relPath string) error
}

// CertificateService issues and serves course certificates
type CertificateService interface {
	Issue(ctx context.Context, req *dto.IssueCertificateRequest, issuerID string) (*models.Certificate, error)
	GetByID(ctx context.Context, id string) (*models.Certificate, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.Certificate, error)
	Delete(ctx context.Context, id string) error
}

// certificateServiceImpl implements the CertificateService interface
type certificateServiceImpl struct {
	certRepo      CertificateStore
	userRepo      UserStore
	renderer      CertificateRenderer
	storage       ArtifactStorage
	publicBaseURL string
}

// NewCertificateService creates a new certificate service instance
func NewCertificateService(
	certRepo CertificateStore,
	userRepo UserStore,
	renderer CertificateRenderer,
	storage ArtifactStorage,
	publicBaseURL string,
) CertificateService {
	return &certificateServiceImpl{
		certRepo:      certRepo,
		userRepo:      userRepo,
		renderer:      renderer,
		storage:       storage,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Issue renders and persists a certificate. The id is allocated before
// rendering so the QR code and the filename can embed it; the database row
// is written last and the artifact removed again if that write fails, so a
// stored row always points at an existing file.
func (s *certificateServiceImpl) Issue(ctx context.Context, req *dto.IssueCertificateRequest, issuerID string) (*models.Certificate, error) {
	if err := validateIssueRequest(req); err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetByID(ctx, req.Student)
	if err != nil {
		return nil, err
	}

	cert := &models.Certificate{
		ID:             uuid.New().String(),
		Author:         issuerID,
		Student:        req.Student,
		Category:       req.Category,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Hours:          req.Hours,
		RegisterNumber: req.RegisterNumber,
	}

	pdf, err := s.renderer.Render(certpdf.Fields{
		StudentName:    student.Username,
		ShortID:        cert.ShortID(),
		Category:       cert.Category,
		StartDate:      cert.StartDate,
		EndDate:        cert.EndDate,
		Hours:          cert.Hours,
		RegisterNumber: cert.RegisterNumber,
		VerifyURL:      fmt.Sprintf("%s/certificate/%s", s.publicBaseURL, cert.ID),
	})
	if err != nil {
		metrics.CertificateRenderFailures.Inc()
		return nil, err
	}

	relPath := fmt.Sprintf("certificate/%d/certificate_%s.pdf", time.Now().UnixMilli(), cert.ID)
	if _, err := s.storage.SaveBytes(relPath, pdf); err != nil {
		return nil, err
	}
	cert.ArtifactPath = relPath

	if err := s.certRepo.Insert(ctx, cert); err != nil {
		if delErr := s.storage.Delete(relPath); delErr != nil {
			logger.Error().Err(delErr).Str("path", relPath).Msg("Failed to remove orphaned artifact")
		}
		return nil, err
	}

	metrics.CertificatesIssued.Inc()
	logger.Info().
		Str("certificateId", cert.ID).
		Str("student", cert.Student).
		Str("issuer", issuerID).
		Msg("Certificate issued")

	return s.certRepo.GetByID(ctx, cert.ID)
}

func validateIssueRequest(req *dto.IssueCertificateRequest) error {
	if req == nil {
		return apperrors.NewValidationError("request body is required")
	}
	for field, value := range map[string]string{
		"student":        req.Student,
		"category":       req.Category,
		"startDate":      req.StartDate,
		"endDate":        req.EndDate,
		"hours":          req.Hours,
		"registerNumber": req.RegisterNumber,
	} {
		if strings.TrimSpace(value) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s cannot be empty", field))
		}
	}
	if _, err := uuid.Parse(req.Student); err != nil {
		return apperrors.NewValidationError("student must be a valid id")
	}
	return nil
}

// GetByID serves the public verification lookup behind the QR code
func (s *certificateServiceImpl) GetByID(ctx context.Context, id string) (*models.Certificate, error) {
	return s.certRepo.GetByID(ctx, id)
}

// Delete revokes a certificate. The row goes first so the public lookup
// stops resolving, then the stored artifact is removed; a failed artifact
// delete is logged, not surfaced, since the certificate is already revoked.
func (s *certificateServiceImpl) Delete(ctx context.Context, id string) error {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.certRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(cert.ArtifactPath); err != nil {
		logger.Warn().Err(err).Str("path", cert.ArtifactPath).Msg("Failed to delete certificate artifact")
	}

	logger.Info().Str("certificateId", id).Msg("Certificate revoked")
	return nil
}

// ListForStudent returns the student's certificates; no certificates is an
// empty list, not an error.
func (s *certificateServiceImpl) ListForStudent(ctx context.Context, studentID string) ([]models.Certificate, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, apperrors.NewValidationError("student must be a valid id")
	}
	return s.certRepo.ListForStudent(ctx, studentID)
}
