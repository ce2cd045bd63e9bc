package services

import (
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"gorm.io/gorm"
)

// LabelService handles the user's labels
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{labelRepo: labelRepo}
}

// LabelInput represents input for creating or updating a label. Nil fields
// are left unchanged on update; an empty color means the default color.
type LabelInput struct {
	Name  *string
	Color *string
}

func (s *LabelService) ListLabels(userID uint64) ([]models.Label, error) {
	labels, err := s.labelRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (s *LabelService) GetLabel(userID uint64, labelID string) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(userID, labelID)
	if err != nil {
		return nil, storageError(err, "Label", "find label")
	}
	return label, nil
}

// CreateLabel creates a label with a name unique for the user
func (s *LabelService) CreateLabel(userID uint64, input LabelInput) (*models.Label, error) {
	name, color, err := planner.NormalizeLabel(deref(input.Name), deref(input.Color))
	if err != nil {
		return nil, err
	}

	label := &models.Label{
		UserID: userID,
		Name:   name,
		Color:  color,
	}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, labelWriteError(err, name, "create label")
	}
	return label, nil
}

// UpdateLabel renames or recolors a label
func (s *LabelService) UpdateLabel(userID uint64, labelID string, input LabelInput) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(userID, labelID)
	if err != nil {
		return nil, storageError(err, "Label", "find label")
	}

	name := label.Name
	if input.Name != nil {
		name = *input.Name
	}
	color := label.Color
	if input.Color != nil {
		color = *input.Color
	}

	name, color, err = planner.NormalizeLabel(name, color)
	if err != nil {
		return nil, err
	}

	label.Name = name
	label.Color = color
	if err := s.labelRepo.Update(label); err != nil {
		return nil, labelWriteError(err, name, "update label")
	}
	return label, nil
}

// DeleteLabel removes a label from the user and from every daily task
func (s *LabelService) DeleteLabel(userID uint64, labelID string) error {
	if err := s.labelRepo.Delete(userID, labelID); err != nil {
		return storageError(err, "Label", "delete label")
	}
	return nil
}

func labelWriteError(err error, name, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &apierrors.ConflictError{Message: fmt.Sprintf("Label %q already exists", name)}
	}
	return storageError(err, "Label", action)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
