package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/app/services"
	"github.com/otabek/davomat/internal/middleware"
)

// CertificateController handles certificate issuance and verification
type CertificateController struct {
	certificateService services.CertificateService
	publicBaseURL      string
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService services.CertificateService, publicBaseURL string) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		publicBaseURL:      strings.TrimRight(publicBaseURL, "/"),
	}
}

func (c *CertificateController) toResponse(cert *models.Certificate) dto.CertificateResponse {
	return dto.CertificateResponse{
		Certificate:    cert,
		CertificateURL: c.publicBaseURL + "/uploads/" + cert.ArtifactPath,
	}
}

// Issue godoc
// @Summary Issue a certificate
// @Description Renders the certificate PDF from the template, stores the artifact and records the certificate. The QR code on the PDF links to the public verification page.
// @Tags certificates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.IssueCertificateRequest true "Certificate fields"
// @Success 201 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /certificates [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	var req dto.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body"),
		})
		return
	}

	issuerID := ctx.GetString(middleware.ContextUserID)
	cert, err := c.certificateService.Issue(ctx.Request.Context(), &req, issuerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: c.toResponse(cert)})
}

// GetByID godoc
// @Summary Get a certificate by id
// @Description Public verification lookup used by the QR code on the printed certificate.
// @Tags certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /certificates/{id} [get]
func (c *CertificateController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	cert, err := c.certificateService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: c.toResponse(cert)})
}

// ListMine godoc
// @Summary List the caller's certificates
// @Description All certificates issued to the authenticated user, newest first. An empty list is a normal result.
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CertificateResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	certs, err := c.certificateService.ListForStudent(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.CertificateResponse, 0, len(certs))
	for i := range certs {
		out = append(out, c.toResponse(&certs[i]))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: out})
}

// Delete godoc
// @Summary Revoke a certificate
// @Description Deletes the certificate record and its stored PDF. The public verification link stops resolving immediately.
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /certificates/{id} [delete]
func (c *CertificateController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.certificateService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Certificate revoked"}})
}
