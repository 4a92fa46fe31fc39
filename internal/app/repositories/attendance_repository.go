package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/db"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/dberrors"
	"github.com/otabek/davomat/internal/pkg/helpers"
)

// attendance_records carries a unique constraint on (group_id, attendance_day);
// the duplicate-day guard lives in the database, not in a read-then-write check.
const groupDayConstraint = "attendance_records_group_day_key"

// UserEntryStat is one attendance entry of a user projected for statistics
type UserEntryStat struct {
	UserID          string
	GroupID         string
	GroupTitle      string
	GroupCreatedAt  time.Time
	Status          models.AttendanceStatus
	EntryCreatedAt  time.Time
	RecordCreatedAt time.Time
}

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CreateDaily inserts a record for the UTC day containing now together with
// one entry per member, in a single transaction. A second record for the same
// (group, day) fails with ErrDuplicateAttendance via the unique constraint.
func (r *AttendanceRepository) CreateDaily(ctx context.Context, groupID string, entries []models.MemberAttendanceEntry, now time.Time) (*models.AttendanceRecord, error) {
	recordID := uuid.NewString()
	day := helpers.DayUTC(now)

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO attendance_records (id, group_id, attendance_day, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`, recordID, groupID, day, now)
		if err != nil {
			if dberrors.IsUniqueViolation(err, groupDayConstraint) {
				return apperrors.ErrDuplicateAttendance
			}
			return fmt.Errorf("error inserting attendance record: %w", err)
		}

		for _, entry := range entries {
			_, err := tx.Exec(ctx, `
				INSERT INTO attendance_entries (attendance_id, user_id, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $4)
			`, recordID, entry.UserID, entry.Status, now)
			if err != nil {
				return fmt.Errorf("error inserting attendance entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, recordID)
}

// GetByID retrieves a record with its member entries populated
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := `
		SELECT ar.id, ar.group_id, g.title, ar.attendance_day, ar.created_at, ar.updated_at
		FROM attendance_records ar
		JOIN groups g ON g.id = ar.group_id
		WHERE ar.id = $1
	`

	var record models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.GroupID,
		&record.GroupTitle,
		&record.Day,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	entries, err := r.entriesForRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Members = entries

	return &record, nil
}

func (r *AttendanceRepository) entriesForRecord(ctx context.Context, recordID string) ([]models.MemberAttendanceEntry, error) {
	query := `
		SELECT ae.user_id, u.username, u.email, ae.status, ae.created_at, ae.updated_at
		FROM attendance_entries ae
		JOIN users u ON u.id = ae.user_id
		WHERE ae.attendance_id = $1
		ORDER BY u.username
	`

	rows, err := r.db.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	entries := []models.MemberAttendanceEntry{}
	for rows.Next() {
		var entry models.MemberAttendanceEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.Email,
			&entry.Status,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpdateMemberStatus updates one member's status within a record. The update
// touches a single row, so concurrent writes to different members never
// conflict and same-member writes are serialized by the store.
func (r *AttendanceRepository) UpdateMemberStatus(ctx context.Context, attendanceID, userID string, status models.AttendanceStatus, now time.Time) (*models.AttendanceRecord, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE attendance_entries
		SET status = $3, updated_at = $4
		WHERE attendance_id = $1 AND user_id = $2
	`, attendanceID, userID, status, now)
	if err != nil {
		return nil, fmt.Errorf("error updating attendance entry: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a missing record from a user outside of it
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM attendance_records WHERE id = $1)`, attendanceID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("error executing query: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, apperrors.ErrMemberNotInRecord
	}

	return r.GetByID(ctx, attendanceID)
}

// FindByGroupAndDay returns the group's record for the given UTC day, or nil
// when none exists.
func (r *AttendanceRepository) FindByGroupAndDay(ctx context.Context, groupID string, day time.Time) (*models.AttendanceRecord, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		SELECT id FROM attendance_records
		WHERE group_id = $1 AND attendance_day = $2
	`, groupID, helpers.DayUTC(day)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return r.GetByID(ctx, id)
}

// ListEntriesForUser returns the user's attendance entries recorded since the
// given time, joined with group info for aggregation.
func (r *AttendanceRepository) ListEntriesForUser(ctx context.Context, userID string, since time.Time) ([]UserEntryStat, error) {
	query := `
		SELECT ae.user_id, ar.group_id, g.title, g.created_at, ae.status, ae.created_at, ar.created_at
		FROM attendance_entries ae
		JOIN attendance_records ar ON ar.id = ae.attendance_id
		JOIN groups g ON g.id = ar.group_id
		WHERE ae.user_id = $1 AND ar.created_at >= $2
		ORDER BY ar.created_at
	`

	return r.queryEntryStats(ctx, query, userID, since)
}

// ListEntriesForUsers returns all attendance entries of the given users,
// joined with group info for leaderboard aggregation.
func (r *AttendanceRepository) ListEntriesForUsers(ctx context.Context, userIDs []string) ([]UserEntryStat, error) {
	if len(userIDs) == 0 {
		return []UserEntryStat{}, nil
	}

	query := `
		SELECT ae.user_id, ar.group_id, g.title, g.created_at, ae.status, ae.created_at, ar.created_at
		FROM attendance_entries ae
		JOIN attendance_records ar ON ar.id = ae.attendance_id
		JOIN groups g ON g.id = ar.group_id
		WHERE ae.user_id = ANY($1::uuid[])
		ORDER BY ar.created_at
	`

	return r.queryEntryStats(ctx, query, userIDs)
}

// ListTodayForUser returns the user's entries within [start, end), one per
// group that already has a record today.
func (r *AttendanceRepository) ListTodayForUser(ctx context.Context, userID string, start, end time.Time) ([]UserEntryStat, error) {
	query := `
		SELECT ae.user_id, ar.group_id, g.title, g.created_at, ae.status, ae.created_at, ar.created_at
		FROM attendance_entries ae
		JOIN attendance_records ar ON ar.id = ae.attendance_id
		JOIN groups g ON g.id = ar.group_id
		WHERE ae.user_id = $1 AND ar.created_at >= $2 AND ar.created_at < $3
		ORDER BY ar.created_at
	`

	return r.queryEntryStats(ctx, query, userID, start, end)
}

func (r *AttendanceRepository) queryEntryStats(ctx context.Context, query string, args ...interface{}) ([]UserEntryStat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	stats := []UserEntryStat{}
	for rows.Next() {
		var s UserEntryStat
		if err := rows.Scan(
			&s.UserID,
			&s.GroupID,
			&s.GroupTitle,
			&s.GroupCreatedAt,
			&s.Status,
			&s.EntryCreatedAt,
			&s.RecordCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
