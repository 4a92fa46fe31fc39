package services

import (
	"context"
	"fmt"
	"time"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/repositories"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/certpdf"
)

// In-memory fakes for the store interfaces. Each fake only models the
// behavior the tests exercise.

type fakeAttendanceStore struct {
	records    map[string]*models.AttendanceRecord
	entries    []repositories.UserEntryStat
	today      []repositories.UserEntryStat
	createErr  error
	nextID     int
	createdNow time.Time
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: map[string]*models.AttendanceRecord{}}
}

func (f *fakeAttendanceStore) CreateDaily(_ context.Context, groupID string, entries []models.MemberAttendanceEntry, now time.Time) (*models.AttendanceRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, r := range f.records {
		if r.GroupID == groupID && r.Day.Equal(dayOf(now)) {
			return nil, apperrors.ErrDuplicateAttendance
		}
	}
	f.nextID++
	f.createdNow = now
	rec := &models.AttendanceRecord{
		ID:        fmt.Sprintf("rec-%d", f.nextID),
		GroupID:   groupID,
		Day:       dayOf(now),
		Members:   entries,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.records[rec.ID] = rec
	return rec, nil
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *fakeAttendanceStore) GetByID(_ context.Context, id string) (*models.AttendanceRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceStore) UpdateMemberStatus(_ context.Context, attendanceID, userID string, status models.AttendanceStatus, now time.Time) (*models.AttendanceRecord, error) {
	rec, ok := f.records[attendanceID]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	for i := range rec.Members {
		if rec.Members[i].UserID == userID {
			rec.Members[i].Status = status
			rec.Members[i].UpdatedAt = now
			return rec, nil
		}
	}
	return nil, apperrors.ErrMemberNotInRecord
}

func (f *fakeAttendanceStore) FindByGroupAndDay(_ context.Context, groupID string, day time.Time) (*models.AttendanceRecord, error) {
	for _, r := range f.records {
		if r.GroupID == groupID && r.Day.Equal(day) {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceStore) ListEntriesForUser(_ context.Context, userID string, since time.Time) ([]repositories.UserEntryStat, error) {
	var out []repositories.UserEntryStat
	for _, e := range f.entries {
		if e.UserID == userID && !e.EntryCreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListEntriesForUsers(_ context.Context, userIDs []string) ([]repositories.UserEntryStat, error) {
	want := map[string]bool{}
	for _, id := range userIDs {
		want[id] = true
	}
	var out []repositories.UserEntryStat
	for _, e := range f.entries {
		if want[e.UserID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListTodayForUser(_ context.Context, userID string, _, _ time.Time) ([]repositories.UserEntryStat, error) {
	var out []repositories.UserEntryStat
	for _, e := range f.today {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeGroupStore struct {
	groups        map[string]*models.Group
	memberIDs     map[string][]string
	members       map[string][]models.User
	groupsForUser map[string][]models.Group
	removed       [][2]string
	deleted       []string
	imageURL      *string
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{
		groups:        map[string]*models.Group{},
		memberIDs:     map[string][]string{},
		members:       map[string][]models.User{},
		groupsForUser: map[string][]models.Group{},
	}
}

func (f *fakeGroupStore) GetByID(_ context.Context, id string) (*models.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return g, nil
}

func (f *fakeGroupStore) GetMemberIDs(_ context.Context, groupID string) ([]string, error) {
	return f.memberIDs[groupID], nil
}

func (f *fakeGroupStore) GetMembers(_ context.Context, groupID string) ([]models.User, error) {
	return f.members[groupID], nil
}

func (f *fakeGroupStore) GetGroupsForUser(_ context.Context, userID string) ([]models.Group, error) {
	return f.groupsForUser[userID], nil
}

func (f *fakeGroupStore) GetGroupsForUsers(_ context.Context, userIDs []string) (map[string][]models.Group, error) {
	out := map[string][]models.Group{}
	for _, id := range userIDs {
		if gs, ok := f.groupsForUser[id]; ok {
			out[id] = gs
		}
	}
	return out, nil
}

func (f *fakeGroupStore) RemoveMember(_ context.Context, groupID, userID string) error {
	f.removed = append(f.removed, [2]string{groupID, userID})
	return nil
}

func (f *fakeGroupStore) Delete(_ context.Context, id string) (*string, error) {
	if _, ok := f.groups[id]; !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	f.deleted = append(f.deleted, id)
	return f.imageURL, nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[string]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) ListByIDs(_ context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeCertificateStore struct {
	certs     map[string]*models.Certificate
	insertErr error
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{certs: map[string]*models.Certificate{}}
}

func (f *fakeCertificateStore) Insert(_ context.Context, cert *models.Certificate) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	stored := *cert
	f.certs[cert.ID] = &stored
	return nil
}

func (f *fakeCertificateStore) GetByID(_ context.Context, id string) (*models.Certificate, error) {
	c, ok := f.certs[id]
	if !ok {
		return nil, apperrors.ErrCertificateNotFound
	}
	return c, nil
}

func (f *fakeCertificateStore) ListForStudent(_ context.Context, studentID string) ([]models.Certificate, error) {
	out := []models.Certificate{}
	for _, c := range f.certs {
		if c.Student == studentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCertificateStore) Delete(_ context.Context, id string) error {
	delete(f.certs, id)
	return nil
}

type fakeRenderer struct {
	err    error
	fields certpdf.Fields
}

func (f *fakeRenderer) Render(fields certpdf.Fields) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.fields = fields
	return []byte("%PDF-1.7 fake"), nil
}

type fakeStorage struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}}
}

func (f *fakeStorage) SaveBytes(relPath string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved[relPath] = data
	return relPath, nil
}

func (f *fakeStorage) Delete(relPath string) error {
	f.deleted = append(f.deleted, relPath)
	delete(f.saved, relPath)
	return nil
}
