package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	GroupRepository       *GroupRepository
	AttendanceRepository  *AttendanceRepository
	CertificateRepository *CertificateRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		GroupRepository:       NewGroupRepository(db),
		AttendanceRepository:  NewAttendanceRepository(db),
		CertificateRepository: NewCertificateRepository(db),
	}
}
