package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// ReminderRepository handles CRUD for task reminders. Soft-deleted rows are
// excluded from every lookup; a replaced or deleted reminder simply stops
// resolving by id.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ReminderRepository) WithTx(tx *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: tx}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id uint) (*model.Reminder, error) {
	var reminder model.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// FindWithTask loads a reminder together with its owning task and the task's
// project. Returns gorm.ErrRecordNotFound for missing and soft-deleted rows
// alike; a soft-deleted task leaves reminder.Task nil.
func (r *ReminderRepository) FindWithTask(ctx context.Context, id uint) (*model.Reminder, error) {
	var reminder model.Reminder
	if err := r.db.WithContext(ctx).
		Preload("Task.Project").
		First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *ReminderRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).
		Order("remind_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// DeleteByTask soft-deletes every reminder under a task. This is the
// replace-all primitive: in-flight delivery jobs for the removed rows find
// nothing on re-fetch and no-op.
func (r *ReminderRepository) DeleteByTask(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).
		Delete(&model.Reminder{}).Error; err != nil {
		return fmt.Errorf("delete task reminders: %w", err)
	}
	return nil
}

// MarkSentIfUnsent flips the sent flag with a conditional update so that two
// concurrent deliveries cannot both claim the same reminder. Reports whether
// this call performed the flip.
func (r *ReminderRepository) MarkSentIfUnsent(ctx context.Context, id uint, sentAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ? AND is_sent = ?", id, false).
		Updates(map[string]interface{}{"is_sent": true, "sent_at": sentAt})
	if res.Error != nil {
		return false, fmt.Errorf("mark reminder sent: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListScheduled returns unsent reminders whose delivery instant is still
// ahead, used to re-arm delivery timers after a restart.
func (r *ReminderRepository) ListScheduled(ctx context.Context, after time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("is_sent = ? AND remind_at > ?", false, after).
		Order("remind_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListDue returns unsent reminders whose delivery instant has passed.
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("is_sent = ? AND remind_at <= ?", false, now).
		Order("remind_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}
