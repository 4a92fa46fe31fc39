package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/pkg/apperrors"
)

// CertificateRepository handles database operations for certificates
type CertificateRepository struct {
	db *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Insert writes a certificate row. The artifact must already exist on disk;
// the row is only created after a successful render.
func (r *CertificateRepository) Insert(ctx context.Context, cert *models.Certificate) error {
	query := `
		INSERT INTO certificates (id, author, student, category, start_date, end_date, hours, register_number, artifact_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		cert.ID,
		cert.Author,
		cert.Student,
		cert.Category,
		cert.StartDate,
		cert.EndDate,
		cert.Hours,
		cert.RegisterNumber,
		cert.ArtifactPath,
	).Scan(&cert.CreatedAt, &cert.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting certificate: %w", err)
	}

	return nil
}

const certificateColumns = `
	c.id, c.author, c.student, c.category, c.start_date, c.end_date,
	c.hours, c.register_number, c.artifact_path, c.created_at, c.updated_at,
	s.id, s.username, s.email, s.role, s.image_url, s.created_at, s.updated_at,
	a.id, a.username, a.email, a.role, a.image_url, a.created_at, a.updated_at`

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	var cert models.Certificate
	var student, author models.User
	err := row.Scan(
		&cert.ID, &cert.Author, &cert.Student, &cert.Category, &cert.StartDate, &cert.EndDate,
		&cert.Hours, &cert.RegisterNumber, &cert.ArtifactPath, &cert.CreatedAt, &cert.UpdatedAt,
		&student.ID, &student.Username, &student.Email, &student.Role, &student.ImageURL, &student.CreatedAt, &student.UpdatedAt,
		&author.ID, &author.Username, &author.Email, &author.Role, &author.ImageURL, &author.CreatedAt, &author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cert.StudentProfile = &student
	cert.AuthorProfile = &author
	return &cert, nil
}

// GetByID retrieves a certificate with student and author profiles populated.
// Password hashes never leave the User model's json:"-" field.
func (r *CertificateRepository) GetByID(ctx context.Context, id string) (*models.Certificate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM certificates c
		JOIN users s ON s.id = c.student
		JOIN users a ON a.id = c.author
		WHERE c.id = $1
	`, certificateColumns)

	cert, err := scanCertificate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return cert, nil
}

// ListForStudent returns all certificates issued to a student, newest first.
// An empty result is a valid empty list, not an error.
func (r *CertificateRepository) ListForStudent(ctx context.Context, studentID string) ([]models.Certificate, error) {
	builder := squirrel.Select(
		"c.id", "c.author", "c.student", "c.category", "c.start_date", "c.end_date",
		"c.hours", "c.register_number", "c.artifact_path", "c.created_at", "c.updated_at",
		"s.id", "s.username", "s.email", "s.role", "s.image_url", "s.created_at", "s.updated_at",
		"a.id", "a.username", "a.email", "a.role", "a.image_url", "a.created_at", "a.updated_at",
	).
		From("certificates c").
		Join("users s ON s.id = c.student").
		Join("users a ON a.id = c.author").
		Where("c.student = ?", studentID).
		OrderBy("c.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	certs := []models.Certificate{}
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		certs = append(certs, *cert)
	}

	return certs, rows.Err()
}

// Delete removes a certificate row
func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}
