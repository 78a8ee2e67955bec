package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/clock"
	"taskboard/internal/model"
	"taskboard/internal/queue"
	"taskboard/internal/repository"
)

// ProjectInput represents data required to create a project.
type ProjectInput struct {
	Title       string
	Description string
	IsPrivate   bool
}

// projectUpdateFields is the allow-list for partial project updates; anything
// else in the input map is ignored.
var projectUpdateFields = []string{"title", "description", "is_private"}

// ProjectService wraps project-related business logic, including the
// deep-copy cascade over tasks and reminders.
type ProjectService struct {
	db        *gorm.DB
	projects  *repository.ProjectRepository
	tasks     *repository.TaskRepository
	reminders *repository.ReminderRepository
	clk       clock.Clock
	jobs      queue.Queue
	baseURL   string
}

func NewProjectService(
	db *gorm.DB,
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	reminders *repository.ReminderRepository,
	clk clock.Clock,
	jobs queue.Queue,
	baseURL string,
) *ProjectService {
	return &ProjectService{
		db:        db,
		projects:  projects,
		tasks:     tasks,
		reminders: reminders,
		clk:       clk,
		jobs:      jobs,
		baseURL:   baseURL,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, ownerID uint, input ProjectInput) (*model.Project, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	project := model.Project{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		IsPrivate:   input.IsPrivate,
		ShareToken:  uuid.NewString(),
	}
	if err := s.projects.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial update restricted to the allow-list and
// returns the refreshed entity.
func (s *ProjectService) UpdateProject(ctx context.Context, project *model.Project, data map[string]interface{}) (*model.Project, error) {
	updates := make(map[string]interface{})
	for _, field := range projectUpdateFields {
		if v, ok := data[field]; ok {
			updates[field] = v
		}
	}
	if len(updates) == 0 {
		return project, nil
	}
	if err := s.projects.Update(ctx, project, updates); err != nil {
		return nil, err
	}
	return project, nil
}

// pendingJob is a delivery submission deferred until after the copy
// transaction commits.
type pendingJob struct {
	reminderID uint
	at         time.Time
}

// CopyProject duplicates a project with all of its non-deleted tasks and
// reminders into an independent graph owned by newOwnerID. The durable writes
// are one transaction; project and task row failures abort it, while
// per-reminder failures are logged and skipped. Copied reminders always start
// unsent. Delivery jobs for future-dated copies are submitted only after the
// transaction commits, best-effort.
func (s *ProjectService) CopyProject(ctx context.Context, source *model.Project, newOwnerID uint) (*model.Project, error) {
	var (
		copied *model.Project
		jobs   []pendingJob
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projects := s.projects.WithTx(tx)
		tasks := s.tasks.WithTx(tx)
		reminders := s.reminders.WithTx(tx)

		dup := model.Project{
			UserID:      newOwnerID,
			Title:       source.Title + " (Copy)",
			Description: source.Description,
			IsPrivate:   source.IsPrivate,
			ShareToken:  uuid.NewString(),
		}
		if err := projects.Create(ctx, &dup); err != nil {
			return err
		}

		srcTasks, err := tasks.ListByProject(ctx, source.ID)
		if err != nil {
			return err
		}

		now := s.clk.Now()
		for _, src := range srcTasks {
			newTask := model.Task{
				ProjectID:   dup.ID,
				Title:       src.Title,
				Description: src.Description,
				Priority:    src.Priority,
				Deadline:    src.Deadline,
				IsCompleted: src.IsCompleted,
			}
			if err := tasks.Create(ctx, &newTask); err != nil {
				return err
			}

			srcReminders, err := reminders.ListByTask(ctx, src.ID)
			if err != nil {
				log.Printf("copy reminders for task %d: %v", src.ID, err)
				continue
			}
			for _, rem := range srcReminders {
				// The sent flag never carries over to a copy.
				newRem := model.Reminder{
					TaskID:   newTask.ID,
					RemindAt: rem.RemindAt,
				}
				if err := reminders.Create(ctx, &newRem); err != nil {
					log.Printf("copy reminder %d: %v", rem.ID, err)
					continue
				}
				if newRem.RemindAt.After(now) {
					jobs = append(jobs, pendingJob{reminderID: newRem.ID, at: newRem.RemindAt})
				}
			}
		}

		copied = &dup
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, job := range jobs {
		if err := s.jobs.Submit(job.reminderID, job.at); err != nil {
			log.Printf("schedule reminder %d: %v", job.reminderID, err)
		}
	}

	return copied, nil
}

// ViewProject fetches a project on behalf of a viewer. Private projects are
// visible only to their owner.
func (s *ProjectService) ViewProject(ctx context.Context, projectID, viewerID uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.IsPrivate && project.UserID != viewerID {
		return nil, ErrForbidden
	}
	return project, nil
}

// ShareLink returns the public link for a project. Refused while private.
func (s *ProjectService) ShareLink(project *model.Project) (string, error) {
	if project.IsPrivate {
		return "", ErrProjectPrivate
	}
	return fmt.Sprintf("%s/shared/projects/%s", s.baseURL, project.ShareToken), nil
}

func (s *ProjectService) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

// DeleteProject removes a project and soft-deletes its tasks and their
// reminders in one transaction.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projects := s.projects.WithTx(tx)
		tasks := s.tasks.WithTx(tx)
		reminders := s.reminders.WithTx(tx)

		owned, err := tasks.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		for _, task := range owned {
			if err := reminders.DeleteByTask(ctx, task.ID); err != nil {
				return err
			}
		}
		if err := tasks.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		return projects.Delete(ctx, projectID)
	})
}
