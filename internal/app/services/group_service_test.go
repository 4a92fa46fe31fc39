package services

import (
	"context"
	"errors"
	"testing"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/pkg/apperrors"
)

func TestRemoveMember(t *testing.T) {
	groups := newFakeGroupStore()
	groups.groups[testGroupID] = &models.Group{ID: testGroupID, Title: "Algorithms"}
	svc := NewGroupService(groups, newFakeStorage(), nil)

	if err := svc.RemoveMember(context.Background(), testGroupID, alice); err != nil {
		t.Fatalf("RemoveMember() unexpected error: %v", err)
	}
	if len(groups.removed) != 1 || groups.removed[0] != [2]string{testGroupID, alice} {
		t.Errorf("unexpected removals: %v", groups.removed)
	}

	err := svc.RemoveMember(context.Background(), "4c8e1f2a-9b0d-4e3f-a5c6-7d8e9f0a1b2c", alice)
	if !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Errorf("RemoveMember() error = %v, want ErrGroupNotFound", err)
	}
}

func TestDeleteGroup(t *testing.T) {
	groups := newFakeGroupStore()
	groups.groups[testGroupID] = &models.Group{ID: testGroupID, Title: "Algorithms"}
	groups.memberIDs[testGroupID] = []string{alice, bob}
	image := "group/1/banner.png"
	groups.imageURL = &image
	storage := newFakeStorage()
	storage.saved[image] = []byte("png")
	svc := NewGroupService(groups, storage, nil)

	if err := svc.Delete(context.Background(), testGroupID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if len(groups.deleted) != 1 || groups.deleted[0] != testGroupID {
		t.Errorf("unexpected deletions: %v", groups.deleted)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != image {
		t.Errorf("group image was not cleaned up: %v", storage.deleted)
	}

	err := svc.Delete(context.Background(), "4c8e1f2a-9b0d-4e3f-a5c6-7d8e9f0a1b2c")
	if !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Errorf("Delete() error = %v, want ErrGroupNotFound", err)
	}
}
