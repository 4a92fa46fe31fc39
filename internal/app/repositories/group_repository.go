package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/db"
	"github.com/otabek/davomat/internal/pkg/apperrors"
)

// GroupRepository handles database operations for groups and memberships
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	query := `
		SELECT id, title, description, image_url, level, achievement, author, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var group models.Group
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Title,
		&group.Description,
		&group.ImageURL,
		&group.Level,
		&group.Achievement,
		&group.Author,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &group, nil
}

// GetMemberIDs returns the ids of the group's current members
func (r *GroupRepository) GetMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM group_members WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetMembers returns the group's members joined with their user profiles
func (r *GroupRepository) GetMembers(ctx context.Context, groupID string) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.role, u.image_url, gm.created_at, u.updated_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY u.username
	`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	members := []models.User{}
	for rows.Next() {
		var user models.User
		// created_at here is the membership join time, the roster's anchor
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.Role,
			&user.ImageURL,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, user)
	}

	return members, rows.Err()
}

// GetGroupsForUser returns all groups the user is a member of
func (r *GroupRepository) GetGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	query := `
		SELECT g.id, g.title, g.description, g.image_url, g.level, g.achievement, g.author, g.created_at, g.updated_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Title,
			&group.Description,
			&group.ImageURL,
			&group.Level,
			&group.Achievement,
			&group.Author,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// GetGroupsForUsers returns, for each user id, the groups they belong to.
// Users without any membership are absent from the map.
func (r *GroupRepository) GetGroupsForUsers(ctx context.Context, userIDs []string) (map[string][]models.Group, error) {
	result := map[string][]models.Group{}
	if len(userIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT gm.user_id, g.id, g.title, g.created_at
		FROM group_members gm
		JOIN groups g ON g.id = gm.group_id
		WHERE gm.user_id = ANY($1::uuid[])
	`

	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var group models.Group
		if err := rows.Scan(&userID, &group.ID, &group.Title, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[userID] = append(result[userID], group)
	}

	return result, rows.Err()
}

// RemoveMember removes a user from the group and pulls their entries out of
// every attendance record belonging to the group, in one transaction.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
		if err != nil {
			return fmt.Errorf("error removing member: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrMemberNotInRecord
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM attendance_entries ae
			USING attendance_records ar
			WHERE ae.attendance_id = ar.id AND ar.group_id = $1 AND ae.user_id = $2
		`, groupID, userID)
		if err != nil {
			return fmt.Errorf("error removing attendance entries: %w", err)
		}

		return nil
	})
}

// Delete deletes the group; attendance records and entries cascade via
// foreign keys. The group's stored image path, if any, is returned so the
// caller can clean up the artifact.
func (r *GroupRepository) Delete(ctx context.Context, id string) (*string, error) {
	var imageURL *string
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT image_url FROM groups WHERE id = $1`, id).Scan(&imageURL); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrGroupNotFound
			}
			return fmt.Errorf("error executing query: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting group: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imageURL, nil
}
