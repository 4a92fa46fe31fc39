package services

import (
	"context"

	"github.com/otabek/davomat/internal/pkg/cache"
	"github.com/otabek/davomat/internal/pkg/logger"
)

// GroupService covers the group operations the attendance ledger depends
// on: membership removal and group deletion, both of which must scrub the
// ledger consistently.
type GroupService interface {
	RemoveMember(ctx context.Context, groupID, userID string) error
	Delete(ctx context.Context, groupID string) error
}

// groupServiceImpl implements the GroupService interface
type groupServiceImpl struct {
	groupRepo GroupStore
	storage   ArtifactStorage
	cache     *cache.Cache
}

// NewGroupService creates a new group service instance
func NewGroupService(groupRepo GroupStore, storage ArtifactStorage, cache *cache.Cache) GroupService {
	return &groupServiceImpl{
		groupRepo: groupRepo,
		storage:   storage,
		cache:     cache,
	}
}

// RemoveMember drops the user from the group and pulls their entries out
// of the group's attendance records in the same transaction.
func (s *groupServiceImpl) RemoveMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}

	logger.Info().Str("groupId", groupID).Str("userId", userID).Msg("Member removed from group")

	s.cache.InvalidatePrefix(ctx, userSummaryCachePrefix(userID))
	s.cache.InvalidatePrefix(ctx, leaderboardCachePrefix)
	return nil
}

// Delete removes the group, its memberships and its attendance history
// (via cascading foreign keys), then cleans up the stored group image.
func (s *groupServiceImpl) Delete(ctx context.Context, groupID string) error {
	members, err := s.groupRepo.GetMemberIDs(ctx, groupID)
	if err != nil {
		return err
	}

	imageURL, err := s.groupRepo.Delete(ctx, groupID)
	if err != nil {
		return err
	}

	if imageURL != nil && *imageURL != "" {
		if err := s.storage.Delete(*imageURL); err != nil {
			logger.Warn().Err(err).Str("path", *imageURL).Msg("Failed to delete group image")
		}
	}

	logger.Info().Str("groupId", groupID).Int("members", len(members)).Msg("Group deleted")

	for _, id := range members {
		s.cache.InvalidatePrefix(ctx, userSummaryCachePrefix(id))
	}
	s.cache.InvalidatePrefix(ctx, leaderboardCachePrefix)
	return nil
}
