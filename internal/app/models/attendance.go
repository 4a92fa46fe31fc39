package models

import "time"

// AttendanceStatus is the per-member presence status within a daily record
type AttendanceStatus string

const (
	StatusPending      AttendanceStatus = "pending"
	StatusAttending    AttendanceStatus = "attending"
	StatusNotAttending AttendanceStatus = "not-attending"
)

// IsValid reports whether s is one of the known statuses
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAttending, StatusNotAttending:
		return true
	}
	return false
}

// AttendanceRecord is the per-group, per-day snapshot of member statuses.
// Day is the UTC calendar day the record belongs to; at most one record
// exists per (GroupID, Day).
type AttendanceRecord struct {
	ID         string                  `json:"id" db:"id"`
	GroupID    string                  `json:"groupId" db:"group_id"`
	GroupTitle string                  `json:"groupTitle,omitempty"`
	Day        time.Time               `json:"day" db:"attendance_day"`
	Members    []MemberAttendanceEntry `json:"members"`
	CreatedAt  time.Time               `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time               `json:"updatedAt" db:"updated_at"`
}

// MemberAttendanceEntry is one user's status within an attendance record.
// CreatedAt anchors session counting for the member.
type MemberAttendanceEntry struct {
	UserID    string           `json:"userId" db:"user_id"`
	Username  string           `json:"username,omitempty"`
	Email     string           `json:"email,omitempty"`
	Status    AttendanceStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}

// AttendanceSummary is the status breakdown of one record
type AttendanceSummary struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Attending    int `json:"attending"`
	NotAttending int `json:"notAttending"`
}

// Summarize computes the status breakdown of a record's member entries
func (r *AttendanceRecord) Summarize() AttendanceSummary {
	s := AttendanceSummary{Total: len(r.Members)}
	for _, m := range r.Members {
		switch m.Status {
		case StatusAttending:
			s.Attending++
		case StatusNotAttending:
			s.NotAttending++
		default:
			s.Pending++
		}
	}
	return s
}
