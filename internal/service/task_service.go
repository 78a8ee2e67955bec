package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/model"
	"taskboard/internal/queue"
	"taskboard/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	ProjectID   uint
	Title       string
	Description string
	Priority    string
	Deadline    *time.Time
	Reminders   []ReminderInput
}

// TaskUpdate carries field updates for a task. Nil pointers leave the field
// untouched. A non-nil Reminders slice is authoritative: the existing set is
// replaced wholesale, never merged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *string
	Deadline    *time.Time
	IsCompleted *bool
	Reminders   []ReminderInput
}

// TaskService wraps task-related business logic, including the reminder
// resolve-persist-schedule pipeline.
type TaskService struct {
	tasks     *repository.TaskRepository
	reminders *repository.ReminderRepository
	resolver  *clock.Resolver
	clk       clock.Clock
	jobs      queue.Queue
}

func NewTaskService(
	tasks *repository.TaskRepository,
	reminders *repository.ReminderRepository,
	resolver *clock.Resolver,
	clk clock.Clock,
	jobs queue.Queue,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		reminders: reminders,
		resolver:  resolver,
		clk:       clk,
		jobs:      jobs,
	}
}

// resolvedReminder is a reminder input with its timestamp already normalized
// to UTC.
type resolvedReminder struct {
	at   time.Time
	sent bool
}

// resolveInputs normalizes reminder inputs up front so a bad timestamp aborts
// the whole request before anything is written. Structured inputs without a
// timestamp are dropped silently.
func (s *TaskService) resolveInputs(inputs []ReminderInput) ([]resolvedReminder, error) {
	resolved := make([]resolvedReminder, 0, len(inputs))
	for _, in := range inputs {
		if in.RemindAt == "" {
			continue
		}
		at, err := s.resolver.Resolve(in.RemindAt)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, resolvedReminder{at: at, sent: in.IsSent})
	}
	return resolved, nil
}

// createReminders persists resolved reminders and submits a delayed delivery
// job for each strictly-future instant. Past-dated reminders are persisted
// but never scheduled. Submit errors do not fail the request; the reminder
// row is the source of truth and the sweep picks up what the queue missed.
func (s *TaskService) createReminders(ctx context.Context, taskID uint, resolved []resolvedReminder) error {
	now := s.clk.Now()
	for _, rr := range resolved {
		reminder := model.Reminder{
			TaskID:   taskID,
			RemindAt: rr.at,
			IsSent:   rr.sent,
		}
		if err := s.reminders.Create(ctx, &reminder); err != nil {
			return err
		}
		if rr.at.After(now) {
			if err := s.jobs.Submit(reminder.ID, rr.at); err != nil {
				log.Printf("schedule reminder %d: %v", reminder.ID, err)
			}
		}
	}
	return nil
}

// CreateTask persists a task and its reminders, scheduling delivery for every
// future-dated one.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	resolved, err := s.resolveInputs(input.Reminders)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Deadline:    input.Deadline,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}

	if err := s.createReminders(ctx, task.ID, resolved); err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask applies field updates. When a reminder list is supplied it fully
// replaces the existing set; delayed jobs already in flight for the removed
// rows find nothing on re-fetch and no-op.
func (s *TaskService) UpdateTask(ctx context.Context, task *model.Task, update TaskUpdate) (*model.Task, error) {
	var resolved []resolvedReminder
	if update.Reminders != nil {
		var err error
		resolved, err = s.resolveInputs(update.Reminders)
		if err != nil {
			return nil, err
		}
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.Deadline != nil {
		task.Deadline = update.Deadline
	}
	if update.IsCompleted != nil {
		task.IsCompleted = *update.IsCompleted
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if update.Reminders != nil {
		if err := s.reminders.DeleteByTask(ctx, task.ID); err != nil {
			return nil, err
		}
		if err := s.createReminders(ctx, task.ID, resolved); err != nil {
			return nil, err
		}
	}

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

func (s *TaskService) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// DeleteTask soft-deletes a task. Its reminders stop delivering because the
// handler's re-fetch no longer resolves the owning task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.tasks.Delete(ctx, taskID)
}
