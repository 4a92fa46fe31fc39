package models

import "testing"

func TestAttendanceStatusIsValid(t *testing.T) {
	valid := []AttendanceStatus{StatusPending, StatusAttending, StatusNotAttending}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	invalid := []AttendanceStatus{"", "present", "ATTENDING", "not_attending"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestSummarize(t *testing.T) {
	rec := &AttendanceRecord{Members: []MemberAttendanceEntry{
		{UserID: "a", Status: StatusAttending},
		{UserID: "b", Status: StatusAttending},
		{UserID: "c", Status: StatusNotAttending},
		{UserID: "d", Status: StatusPending},
		{UserID: "e"}, // unset counts as pending
	}}

	got := rec.Summarize()
	want := AttendanceSummary{Total: 5, Attending: 2, NotAttending: 1, Pending: 2}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	empty := &AttendanceRecord{}
	if got := empty.Summarize(); got != (AttendanceSummary{}) {
		t.Errorf("empty record Summarize() = %+v", got)
	}
}
