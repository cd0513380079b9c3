// Command jobs runs one of the periodic jobs once from the command line,
// for operational use and dry runs:
//
//	jobs -job sweep -dry-run
//	jobs -job reminders
//	jobs -job cleanup
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smarttodo/internal/config"
	"smarttodo/internal/jobs"
	"smarttodo/internal/notify"
	"smarttodo/internal/repository"
)

func main() {
	jobName := flag.String("job", "", "job to run: sweep, reminders or cleanup")
	dryRun := flag.Bool("dry-run", false, "report what would change without mutating anything")
	flag.Parse()

	if *jobName == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)

	var notifier notify.Notifier
	switch cfg.Notifier {
	case "kafka":
		notifier = notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaReminderTopic)
	default:
		notifier = notify.NewLogNotifier(nil)
	}
	defer notifier.Close()

	ctx := context.Background()
	now := time.Now()

	var report interface{}
	switch *jobName {
	case "sweep":
		report, err = jobs.NewSweep(taskRepo).Execute(ctx, now, *dryRun)
	case "reminders":
		report, err = jobs.NewReminders(taskRepo, notifier).Execute(ctx, now, *dryRun)
	case "cleanup":
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		report, err = jobs.NewCleanup(taskRepo, retention).Execute(ctx, now, *dryRun)
	default:
		log.Fatalf("Unknown job %q", *jobName)
	}
	if err != nil {
		log.Fatalf("Job %q failed: %v", *jobName, err)
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
