package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
)

const issuerID = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"

func validIssueRequest() *dto.IssueCertificateRequest {
	return &dto.IssueCertificateRequest{
		Student:        alice,
		Category:       "Backend Development",
		StartDate:      "2025-01-10",
		EndDate:        "2025-05-10",
		Hours:          "120",
		RegisterNumber: "DV-2025-0042",
	}
}

func newCertificateFixture() (*fakeCertificateStore, *fakeRenderer, *fakeStorage, CertificateService) {
	certs := newFakeCertificateStore()
	users := newFakeUserStore(&models.User{ID: alice, Username: "Alice Karimova", Email: "alice@davomat.app"})
	renderer := &fakeRenderer{}
	storage := newFakeStorage()
	svc := NewCertificateService(certs, users, renderer, storage, "https://davomat.app/")
	return certs, renderer, storage, svc
}

func TestIssueCertificate(t *testing.T) {
	certs, renderer, storage, svc := newCertificateFixture()

	cert, err := svc.Issue(context.Background(), validIssueRequest(), issuerID)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, parseErr := uuid.Parse(cert.ID); parseErr != nil {
		t.Errorf("certificate id %q is not a uuid", cert.ID)
	}
	if cert.Author != issuerID || cert.Student != alice {
		t.Errorf("unexpected author/student: %s/%s", cert.Author, cert.Student)
	}
	if !strings.HasPrefix(cert.ArtifactPath, "certificate/") || !strings.HasSuffix(cert.ArtifactPath, "certificate_"+cert.ID+".pdf") {
		t.Errorf("unexpected artifact path %q", cert.ArtifactPath)
	}
	if _, ok := storage.saved[cert.ArtifactPath]; !ok {
		t.Errorf("artifact %q was not saved", cert.ArtifactPath)
	}
	if _, ok := certs.certs[cert.ID]; !ok {
		t.Error("certificate row was not inserted")
	}

	wantShort := strings.ToUpper(cert.ID[len(cert.ID)-6:])
	if renderer.fields.ShortID != wantShort {
		t.Errorf("rendered ShortID = %q, want %q", renderer.fields.ShortID, wantShort)
	}
	if renderer.fields.StudentName != "Alice Karimova" {
		t.Errorf("rendered StudentName = %q", renderer.fields.StudentName)
	}
	if want := "https://davomat.app/certificate/" + cert.ID; renderer.fields.VerifyURL != want {
		t.Errorf("rendered VerifyURL = %q, want %q", renderer.fields.VerifyURL, want)
	}
}

func TestIssueCertificateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.IssueCertificateRequest)
	}{
		{"empty student", func(r *dto.IssueCertificateRequest) { r.Student = "" }},
		{"student not a uuid", func(r *dto.IssueCertificateRequest) { r.Student = "not-an-id" }},
		{"empty category", func(r *dto.IssueCertificateRequest) { r.Category = "  " }},
		{"empty start date", func(r *dto.IssueCertificateRequest) { r.StartDate = "" }},
		{"empty end date", func(r *dto.IssueCertificateRequest) { r.EndDate = "" }},
		{"empty hours", func(r *dto.IssueCertificateRequest) { r.Hours = "" }},
		{"empty register number", func(r *dto.IssueCertificateRequest) { r.RegisterNumber = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, storage, svc := newCertificateFixture()
			req := validIssueRequest()
			tt.mutate(req)

			_, err := svc.Issue(context.Background(), req, issuerID)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("Issue() error = %v, want ErrValidationFailed", err)
			}
			if len(storage.saved) != 0 {
				t.Error("nothing should be written for an invalid request")
			}
		})
	}
}

func TestIssueCertificateUnknownStudent(t *testing.T) {
	_, _, _, svc := newCertificateFixture()
	req := validIssueRequest()
	req.Student = bob // not seeded in the user store

	_, err := svc.Issue(context.Background(), req, issuerID)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("Issue() error = %v, want ErrUserNotFound", err)
	}
}

func TestIssueCertificateRenderFailure(t *testing.T) {
	_, renderer, storage, svc := newCertificateFixture()
	renderer.err = apperrors.ErrCertificateRenderFailed

	_, err := svc.Issue(context.Background(), validIssueRequest(), issuerID)
	if !errors.Is(err, apperrors.ErrCertificateRenderFailed) {
		t.Fatalf("Issue() error = %v, want ErrCertificateRenderFailed", err)
	}
	if len(storage.saved) != 0 {
		t.Error("no artifact should be saved when rendering fails")
	}
}

func TestIssueCertificateRemovesArtifactOnInsertFailure(t *testing.T) {
	certs, _, storage, svc := newCertificateFixture()
	certs.insertErr = errors.New("connection reset")

	_, err := svc.Issue(context.Background(), validIssueRequest(), issuerID)
	if err == nil {
		t.Fatal("expected insert error to propagate")
	}
	if len(storage.saved) != 0 {
		t.Errorf("orphaned artifacts left behind: %v", storage.saved)
	}
	if len(storage.deleted) != 1 {
		t.Fatalf("expected exactly one compensating delete, got %d", len(storage.deleted))
	}
	if !strings.HasSuffix(storage.deleted[0], ".pdf") {
		t.Errorf("deleted unexpected path %q", storage.deleted[0])
	}
}

func TestGetCertificateByID(t *testing.T) {
	certs, _, _, svc := newCertificateFixture()
	id := uuid.New().String()
	certs.certs[id] = &models.Certificate{ID: id, Student: alice}

	cert, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if cert.ID != id {
		t.Errorf("GetByID() returned %s, want %s", cert.ID, id)
	}

	if _, err := svc.GetByID(context.Background(), uuid.New().String()); !errors.Is(err, apperrors.ErrCertificateNotFound) {
		t.Errorf("unknown id error = %v, want ErrCertificateNotFound", err)
	}
}

func TestDeleteCertificate(t *testing.T) {
	certs, _, storage, svc := newCertificateFixture()

	cert, err := svc.Issue(context.Background(), validIssueRequest(), issuerID)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), cert.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, ok := certs.certs[cert.ID]; ok {
		t.Error("certificate row still present after delete")
	}
	if _, ok := storage.saved[cert.ArtifactPath]; ok {
		t.Error("artifact still present after delete")
	}
	if _, err := svc.GetByID(context.Background(), cert.ID); !errors.Is(err, apperrors.ErrCertificateNotFound) {
		t.Errorf("lookup after delete error = %v, want ErrCertificateNotFound", err)
	}

	if err := svc.Delete(context.Background(), uuid.New().String()); !errors.Is(err, apperrors.ErrCertificateNotFound) {
		t.Errorf("unknown id error = %v, want ErrCertificateNotFound", err)
	}
}

func TestListCertificatesForStudent(t *testing.T) {
	certs, _, _, svc := newCertificateFixture()

	list, err := svc.ListForStudent(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListForStudent() unexpected error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", list)
	}

	id := uuid.New().String()
	certs.certs[id] = &models.Certificate{ID: id, Student: alice}
	certs.certs[uuid.New().String()] = &models.Certificate{ID: uuid.New().String(), Student: bob}

	list, err = svc.ListForStudent(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListForStudent() unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Errorf("unexpected list: %v", list)
	}

	if _, err := svc.ListForStudent(context.Background(), "bogus"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("bad id error = %v, want ErrValidationFailed", err)
	}
}
