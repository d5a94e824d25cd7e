package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// TagService manages tags and their association with transactions.
type TagService struct {
	tags   storage.TagRepository
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(tags storage.TagRepository, logger *slog.Logger) *TagService {
	return &TagService{tags: tags, logger: logger}
}

// GetByID returns the tag with the given ID.
func (s *TagService) GetByID(ctx context.Context, id int) (*TagDTO, error) {
	if err := requireID("tag id", id); err != nil {
		return nil, err
	}
	t, err := s.tags.GetTagByID(ctx, id)
	if err != nil {
		return nil, translate(err, EntityTag, id, "failed to load tag")
	}
	dto := newTagDTO(*t)
	return &dto, nil
}

// GetByUserID returns every tag of the user. An empty result is a NotFound
// error.
func (s *TagService) GetByUserID(ctx context.Context, userID int) ([]TagDTO, error) {
	tags, err := s.tags.ListTagsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, EntityTag, userID, "failed to list tags")
	}
	if len(tags) == 0 {
		return nil, noneFound(EntityTag, userID)
	}
	return tagDTOs(tags), nil
}

// GetByUserIDPaged returns one page of the user's tags.
func (s *TagService) GetByUserIDPaged(ctx context.Context, userID, page, pageSize int) ([]TagDTO, error) {
	tags, err := s.tags.ListTagsByUserPaged(ctx, userID, page, pageSize)
	if err != nil {
		return nil, translate(err, EntityTag, userID, "failed to list tags")
	}
	if len(tags) == 0 {
		return nil, noneFound(EntityTag, userID)
	}
	return tagDTOs(tags), nil
}

// GetByTransactionID returns the tags of a transaction, possibly none.
func (s *TagService) GetByTransactionID(ctx context.Context, transactionID int) ([]TagDTO, error) {
	tags, err := s.tags.ListTagsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, translate(err, EntityTransaction, transactionID, "failed to load transaction tags")
	}
	return tagDTOs(tags), nil
}

// Add creates a tag for the user.
func (s *TagService) Add(ctx context.Context, name, color string, userID int) (*TagDTO, error) {
	if err := validateTag(name, userID); err != nil {
		return nil, err
	}
	t := &models.Tag{Name: strings.TrimSpace(name), Color: color, UserID: userID}
	if err := s.tags.CreateTag(ctx, t); err != nil {
		return nil, translate(err, EntityTag, t.Name, "could not add tag")
	}
	s.logger.Info("Tag added", "tag_id", t.ID, "user_id", userID)
	dto := newTagDTO(*t)
	return &dto, nil
}

// Edit overwrites a tag. It reports false on any failure.
func (s *TagService) Edit(ctx context.Context, id int, name, color string, userID int) bool {
	return succeeded(s.logger, "TagService.Edit", id, s.edit(ctx, id, name, color, userID))
}

func (s *TagService) edit(ctx context.Context, id int, name, color string, userID int) error {
	if err := requireID("tag id", id); err != nil {
		return err
	}
	if err := validateTag(name, userID); err != nil {
		return err
	}
	t := &models.Tag{ID: id, Name: strings.TrimSpace(name), Color: color, UserID: userID}
	if err := s.tags.UpdateTag(ctx, t); err != nil {
		return translate(err, EntityTag, id, "could not edit tag")
	}
	return nil
}

// Delete removes a tag. It reports false on any failure.
func (s *TagService) Delete(ctx context.Context, id int) bool {
	var err error
	if err = requireID("tag id", id); err == nil {
		if err = s.tags.DeleteTag(ctx, id); err != nil {
			err = translate(err, EntityTag, id, "could not delete tag")
		}
	}
	return succeeded(s.logger, "TagService.Delete", id, err)
}

// AddTagsToTransaction associates the tags with the transaction. Tags that
// are already associated are left alone.
func (s *TagService) AddTagsToTransaction(ctx context.Context, transactionID int, tagIDs []int) error {
	if err := requireID("transaction id", transactionID); err != nil {
		return err
	}
	for _, id := range tagIDs {
		if err := requireID("tag id", id); err != nil {
			return err
		}
	}
	if err := s.tags.AddTagsToTransaction(ctx, transactionID, tagIDs); err != nil {
		return translate(err, EntityTransaction, transactionID, "could not tag transaction")
	}
	return nil
}

// RemoveTagsFromTransaction clears every tag of the transaction.
func (s *TagService) RemoveTagsFromTransaction(ctx context.Context, transactionID int) error {
	if err := requireID("transaction id", transactionID); err != nil {
		return err
	}
	if err := s.tags.RemoveTagsFromTransaction(ctx, transactionID); err != nil {
		return translate(err, EntityTransaction, transactionID, "could not untag transaction")
	}
	return nil
}

func tagDTOs(tags []models.Tag) []TagDTO {
	out := make([]TagDTO, len(tags))
	for i, t := range tags {
		out[i] = newTagDTO(t)
	}
	return out
}

func validateTag(name string, userID int) error {
	if err := requireText("name", name); err != nil {
		return err
	}
	return requireID("user id", userID)
}
