package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/clock"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/repository"
)

// ReminderService is the delivery side of reminders: the delayed-job handler
// and the periodic sweep that re-attempts anything due but unsent.
type ReminderService struct {
	reminders *repository.ReminderRepository
	users     *repository.UserRepository
	sender    notify.Sender
	clk       clock.Clock
	loc       *time.Location
}

// NewReminderService builds the delivery handler. Reminder times are rendered
// in loc, the timezone the user typed them in.
func NewReminderService(
	reminders *repository.ReminderRepository,
	users *repository.UserRepository,
	sender notify.Sender,
	clk clock.Clock,
	loc *time.Location,
) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		reminders: reminders,
		users:     users,
		sender:    sender,
		clk:       clk,
		loc:       loc,
	}
}

// Deliver runs one delivery attempt for a reminder id. The job carries only
// the id; everything else is re-read here so the decision reflects current
// state, not whatever was true at scheduling time. Stale jobs — replaced,
// deleted, or already-sent reminders — terminate silently. A failed send also
// returns nil without marking sent; redelivery is the queue's concern.
func (s *ReminderService) Deliver(ctx context.Context, reminderID uint) error {
	reminder, err := s.reminders.FindWithTask(ctx, reminderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load reminder %d: %w", reminderID, err)
	}

	if reminder.IsSent {
		return nil
	}

	task := reminder.Task
	if task == nil || task.Project == nil {
		return nil
	}

	user, err := s.users.FindByID(ctx, task.Project.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user for reminder %d: %w", reminderID, err)
	}
	if user.Email == "" {
		return nil
	}

	subject, body := s.composeMessage(task, reminder)
	if err := s.sender.Send(user.Email, subject, body); err != nil {
		log.Printf("send reminder %d: %v", reminderID, err)
		return nil
	}

	claimed, err := s.reminders.MarkSentIfUnsent(ctx, reminderID, s.clk.Now())
	if err != nil {
		return fmt.Errorf("mark reminder %d sent: %w", reminderID, err)
	}
	if !claimed {
		log.Printf("reminder %d already claimed by a concurrent delivery", reminderID)
	}
	return nil
}

// SweepDue delivers every unsent reminder whose instant has passed. This is
// the recovery path for jobs lost to restarts or transient send failures.
func (s *ReminderService) SweepDue(ctx context.Context) error {
	due, err := s.reminders.ListDue(ctx, s.clk.Now())
	if err != nil {
		return fmt.Errorf("list due reminders: %w", err)
	}
	for _, reminder := range due {
		if err := s.Deliver(ctx, reminder.ID); err != nil {
			log.Printf("deliver reminder %d: %v", reminder.ID, err)
		}
	}
	return nil
}

func (s *ReminderService) composeMessage(task *model.Task, reminder *model.Reminder) (string, string) {
	title := strings.TrimSpace(task.Title)
	if title == "" {
		title = "Your task"
	}
	subject := "Task reminder: " + title

	var b strings.Builder
	b.WriteString("A reminder for your task:\n\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", task.Title))
	b.WriteString(fmt.Sprintf("Description: %s\n", task.Description))
	b.WriteString(fmt.Sprintf("Reminder time: %s\n", reminder.RemindAt.In(s.loc).Format("2006-01-02 15:04")))

	return subject, b.String()
}
