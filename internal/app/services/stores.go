package services

import (
	"context"
	"time"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/repositories"
)

// The store interfaces name exactly what each service needs from the data
// layer. The concrete *repositories types satisfy them; tests substitute
// in-memory fakes.

// AttendanceStore is the ledger's persistence surface
type AttendanceStore interface {
	CreateDaily(ctx context.Context, groupID string, entries []models.MemberAttendanceEntry, now time.Time) (*models.AttendanceRecord, error)
	GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	UpdateMemberStatus(ctx context.Context, attendanceID, userID string, status models.AttendanceStatus, now time.Time) (*models.AttendanceRecord, error)
	FindByGroupAndDay(ctx context.Context, groupID string, day time.Time) (*models.AttendanceRecord, error)
	ListEntriesForUser(ctx context.Context, userID string, since time.Time) ([]repositories.UserEntryStat, error)
	ListEntriesForUsers(ctx context.Context, userIDs []string) ([]repositories.UserEntryStat, error)
	ListTodayForUser(ctx context.Context, userID string, start, end time.Time) ([]repositories.UserEntryStat, error)
}

// GroupStore is the group surface the attendance and stats services read
type GroupStore interface {
	GetByID(ctx context.Context, id string) (*models.Group, error)
	GetMemberIDs(ctx context.Context, groupID string) ([]string, error)
	GetMembers(ctx context.Context, groupID string) ([]models.User, error)
	GetGroupsForUser(ctx context.Context, userID string) ([]models.Group, error)
	GetGroupsForUsers(ctx context.Context, userIDs []string) (map[string][]models.Group, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
	Delete(ctx context.Context, id string) (*string, error)
}

// UserStore is the user lookup surface
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// CertificateStore is the certificate persistence surface
type CertificateStore interface {
	Insert(ctx context.Context, cert *models.Certificate) error
	GetByID(ctx context.Context, id string) (*models.Certificate, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.Certificate, error)
	Delete(ctx context.Context, id string) error
}
