package repository

import (
	"github.com/yukikurage/daily-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label owned by the user
func (r *GormLabelRepository) FindByID(userID uint64, id string) (*models.Label, error) {
	var label models.Label
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// List returns the user's labels ordered by name
func (r *GormLabelRepository) List(userID uint64) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update saves name and color of a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Model(label).Select("name", "color", "updated_at").Updates(label).Error
}

// Delete removes a label and its links to daily tasks
func (r *GormLabelRepository) Delete(userID uint64, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var label models.Label
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&label).Error; err != nil {
			return err
		}
		if err := tx.Where("label_id = ?", id).Delete(&models.DailyTaskLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&label).Error
	})
}
