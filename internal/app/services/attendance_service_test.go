package services

import (
	"context"
	"errors"
	"testing"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
)

const (
	testGroupID = "1f9d6c2a-0b3e-4f5a-8d7c-6e5b4a3c2d1e"
	alice       = "aaaaaaaa-0000-0000-0000-000000000001"
	bob         = "aaaaaaaa-0000-0000-0000-000000000002"
	carol       = "aaaaaaaa-0000-0000-0000-000000000003"
)

func newAttendanceFixture() (*fakeAttendanceStore, *fakeGroupStore, AttendanceService) {
	attStore := newFakeAttendanceStore()
	groupStore := newFakeGroupStore()
	groupStore.groups[testGroupID] = &models.Group{ID: testGroupID, Title: "Algorithms"}
	groupStore.memberIDs[testGroupID] = []string{alice, bob}
	svc := NewAttendanceService(attStore, groupStore, nil)
	return attStore, groupStore, svc
}

func TestCreateDailyAttendance(t *testing.T) {
	tests := []struct {
		name    string
		groupID string
		members []dto.MemberEntryRequest
		wantErr error
	}{
		{
			name:    "happy path",
			groupID: testGroupID,
			members: []dto.MemberEntryRequest{{UserID: alice}, {UserID: bob, Status: "attending"}},
		},
		{
			name:    "empty members",
			groupID: testGroupID,
			members: nil,
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "unknown group",
			groupID: "2f9d6c2a-0b3e-4f5a-8d7c-6e5b4a3c2d1e",
			members: []dto.MemberEntryRequest{{UserID: alice}},
			wantErr: apperrors.ErrGroupNotFound,
		},
		{
			name:    "member outside group",
			groupID: testGroupID,
			members: []dto.MemberEntryRequest{{UserID: alice}, {UserID: carol}},
			wantErr: apperrors.ErrInvalidMembers,
		},
		{
			name:    "duplicate member in request",
			groupID: testGroupID,
			members: []dto.MemberEntryRequest{{UserID: alice}, {UserID: alice}},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "bad status",
			groupID: testGroupID,
			members: []dto.MemberEntryRequest{{UserID: alice, Status: "absent"}},
			wantErr: apperrors.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := newAttendanceFixture()
			got, err := svc.CreateDailyAttendance(context.Background(), tt.groupID, tt.members)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateDailyAttendance() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateDailyAttendance() unexpected error: %v", err)
			}
			if got.Record == nil || len(got.Record.Members) != len(tt.members) {
				t.Fatalf("expected %d members on record, got %+v", len(tt.members), got.Record)
			}
		})
	}
}

func TestCreateDailyAttendanceDefaultsToPending(t *testing.T) {
	_, _, svc := newAttendanceFixture()

	got, err := svc.CreateDailyAttendance(context.Background(), testGroupID, []dto.MemberEntryRequest{
		{UserID: alice},
		{UserID: bob, Status: "attending"},
	})
	if err != nil {
		t.Fatalf("CreateDailyAttendance() unexpected error: %v", err)
	}

	statuses := map[string]models.AttendanceStatus{}
	for _, m := range got.Record.Members {
		statuses[m.UserID] = m.Status
	}
	if statuses[alice] != models.StatusPending {
		t.Errorf("alice status = %q, want pending", statuses[alice])
	}
	if statuses[bob] != models.StatusAttending {
		t.Errorf("bob status = %q, want attending", statuses[bob])
	}
	if got.Summary.Total != 2 || got.Summary.Pending != 1 || got.Summary.Attending != 1 {
		t.Errorf("unexpected summary: %+v", got.Summary)
	}
}

func TestCreateDailyAttendanceRejectsSecondSheetSameDay(t *testing.T) {
	_, _, svc := newAttendanceFixture()
	members := []dto.MemberEntryRequest{{UserID: alice}}

	if _, err := svc.CreateDailyAttendance(context.Background(), testGroupID, members); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateDailyAttendance(context.Background(), testGroupID, members)
	if !errors.Is(err, apperrors.ErrDuplicateAttendance) {
		t.Fatalf("second create error = %v, want ErrDuplicateAttendance", err)
	}
}

func TestSetMemberStatus(t *testing.T) {
	attStore, _, svc := newAttendanceFixture()
	created, err := svc.CreateDailyAttendance(context.Background(), testGroupID, []dto.MemberEntryRequest{
		{UserID: alice}, {UserID: bob},
	})
	if err != nil {
		t.Fatalf("setup create failed: %v", err)
	}
	recID := created.Record.ID

	t.Run("marks attending", func(t *testing.T) {
		got, err := svc.SetMemberStatus(context.Background(), recID, alice, "attending")
		if err != nil {
			t.Fatalf("SetMemberStatus() unexpected error: %v", err)
		}
		if got.Summary.Attending != 1 || got.Summary.Pending != 1 {
			t.Errorf("unexpected summary after mark: %+v", got.Summary)
		}
	})

	t.Run("repeating the same mark is a no-op", func(t *testing.T) {
		first, err := svc.SetMemberStatus(context.Background(), recID, alice, "attending")
		if err != nil {
			t.Fatalf("first mark failed: %v", err)
		}
		second, err := svc.SetMemberStatus(context.Background(), recID, alice, "attending")
		if err != nil {
			t.Fatalf("repeated mark failed: %v", err)
		}
		if first.Summary != second.Summary {
			t.Errorf("summaries differ after repeat: %+v vs %+v", first.Summary, second.Summary)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		if _, err := svc.SetMemberStatus(context.Background(), recID, alice, "maybe"); !errors.Is(err, apperrors.ErrInvalidStatus) {
			t.Errorf("error = %v, want ErrInvalidStatus", err)
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		if _, err := svc.SetMemberStatus(context.Background(), "rec-999", alice, "attending"); !errors.Is(err, apperrors.ErrAttendanceNotFound) {
			t.Errorf("error = %v, want ErrAttendanceNotFound", err)
		}
	})

	t.Run("member not on record", func(t *testing.T) {
		if _, err := svc.SetMemberStatus(context.Background(), recID, carol, "attending"); !errors.Is(err, apperrors.ErrMemberNotInRecord) {
			t.Errorf("error = %v, want ErrMemberNotInRecord", err)
		}
	})

	if len(attStore.records) != 1 {
		t.Errorf("expected a single record in store, got %d", len(attStore.records))
	}
}

func TestGetRecord(t *testing.T) {
	_, _, svc := newAttendanceFixture()

	created, err := svc.CreateDailyAttendance(context.Background(), testGroupID, []dto.MemberEntryRequest{
		{UserID: alice, Status: "attending"},
		{UserID: bob},
	})
	if err != nil {
		t.Fatalf("CreateDailyAttendance() unexpected error: %v", err)
	}

	got, err := svc.GetRecord(context.Background(), created.Record.ID)
	if err != nil {
		t.Fatalf("GetRecord() unexpected error: %v", err)
	}
	if got.Record.ID != created.Record.ID {
		t.Errorf("GetRecord() returned record %s, want %s", got.Record.ID, created.Record.ID)
	}
	want := models.AttendanceSummary{Total: 2, Attending: 1, Pending: 1}
	if got.Summary != want {
		t.Errorf("Summary = %+v, want %+v", got.Summary, want)
	}

	if _, err := svc.GetRecord(context.Background(), "rec-999"); !errors.Is(err, apperrors.ErrAttendanceNotFound) {
		t.Errorf("unknown record error = %v, want ErrAttendanceNotFound", err)
	}
}
