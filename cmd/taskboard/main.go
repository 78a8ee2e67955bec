package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/config"
	"taskboard/internal/notify"
	"taskboard/internal/queue"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	resolver, err := clock.NewResolver(cfg.ClientTimezone)
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	clk := clock.System{}
	sender := notify.NewSMTPSender(cfg.Email)
	reminderSvc := service.NewReminderService(reminderRepo, userRepo, sender, clk, resolver.Location())

	jobs := queue.NewMemory(func(jobCtx context.Context, reminderID uint) {
		if err := reminderSvc.Deliver(jobCtx, reminderID); err != nil {
			log.Printf("deliver reminder %d: %v", reminderID, err)
		}
	}, 30*time.Second)
	defer jobs.Stop()

	// Re-arm timers for reminders scheduled before the last shutdown.
	pending, err := reminderRepo.ListScheduled(ctx, clk.Now())
	if err != nil {
		log.Fatalf("load scheduled reminders: %v", err)
	}
	for _, reminder := range pending {
		if err := jobs.Submit(reminder.ID, reminder.RemindAt); err != nil {
			log.Printf("schedule reminder %d: %v", reminder.ID, err)
		}
	}

	scheduler := service.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := reminderSvc.SweepDue(sweepCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("sweep: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Taskboard reminder worker started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
