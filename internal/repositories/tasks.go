package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aymanElshayeb/reactExampleBackend/internal/models"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

// TaskRepository provides access to task storage.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, task *models.Task) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	SearchByDescription(ctx context.Context, substring string, page, size int) ([]models.Task, int64, error)
	FindAllByUserID(ctx context.Context, userID uint) ([]models.Task, error)
}

type GormTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *GormTaskRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check task existence: %w", err)
	}
	return count > 0, nil
}

// Save overwrites every column of the stored record with the given one.
func (r *GormTaskRepository) Save(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// DeleteByIDs removes the tasks with the given ids in a single transaction.
// Ids with no matching record are silently skipped.
func (r *GormTaskRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Task{}, ids).Error
	})
	if err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

// SearchByDescription returns the tasks whose description contains the given
// substring under case-insensitive comparison, in primary-key order, plus the
// total number of matches. Page numbers are zero-indexed.
func (r *GormTaskRepository) SearchByDescription(ctx context.Context, substring string, page, size int) ([]models.Task, int64, error) {
	pattern := "%" + strings.ToLower(substring) + "%"

	var total int64
	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("LOWER(description) LIKE ?", pattern)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	var tasks []models.Task
	if err := query.Order("id").Offset(page * size).Limit(size).Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *GormTaskRepository) FindAllByUserID(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("find tasks of user: %w", err)
	}
	return tasks, nil
}
