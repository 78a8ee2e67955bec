package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// testNow is the pinned instant every service test runs at.
var testNow = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type submission struct {
	reminderID uint
	at         time.Time
}

// fakeQueue records submissions; optionally fails every Submit.
type fakeQueue struct {
	mu   sync.Mutex
	subs []submission
	err  error
}

func (q *fakeQueue) Submit(reminderID uint, at time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.subs = append(q.subs, submission{reminderID: reminderID, at: at})
	return nil
}

func (q *fakeQueue) submissions() []submission {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]submission(nil), q.subs...)
}

type sentMail struct {
	to      string
	subject string
	body    string
}

// fakeSender records outbound mail; optionally fails every Send.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (s *fakeSender) outbox() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A fresh pooled connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Project{}, &model.Task{}, &model.Reminder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db        *gorm.DB
	users     *repository.UserRepository
	projects  *repository.ProjectRepository
	tasks     *repository.TaskRepository
	reminders *repository.ReminderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	return &fixture{
		db:        db,
		users:     repository.NewUserRepository(db),
		projects:  repository.NewProjectRepository(db),
		tasks:     repository.NewTaskRepository(db),
		reminders: repository.NewReminderRepository(db),
	}
}

func (f *fixture) seedUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *fixture) seedProject(t *testing.T, ownerID uint, private bool) *model.Project {
	t.Helper()
	project := &model.Project{
		UserID:     ownerID,
		Title:      "Test Project",
		IsPrivate:  private,
		ShareToken: "token-" + time.Now().Format("150405.000000000"),
	}
	if err := f.db.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func (f *fixture) seedTask(t *testing.T, projectID uint, title string) *model.Task {
	t.Helper()
	task := &model.Task{ProjectID: projectID, Title: title, Priority: "medium"}
	if err := f.db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func (f *fixture) seedReminder(t *testing.T, taskID uint, at time.Time, sent bool) *model.Reminder {
	t.Helper()
	reminder := &model.Reminder{TaskID: taskID, RemindAt: at, IsSent: sent}
	if err := f.db.Create(reminder).Error; err != nil {
		t.Fatalf("seed reminder: %v", err)
	}
	return reminder
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
