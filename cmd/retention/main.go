package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"roomly/internal/repositories"
	"roomly/internal/services"
	"roomly/pkg/database"
)

// One-shot audit log retention run, for cron or manual cleanup.
func main() {
	days := flag.Int("days", 90, "delete audit logs older than this many days")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	auditSvc := services.NewAuditService(repositories.NewAuditLogsRepo(pool))

	deleted, err := auditSvc.Cleanup(context.Background(), *days)
	if err != nil {
		log.Fatalf("Retention run failed: %v", err)
	}

	fmt.Printf("Deleted %d audit log entries older than %d days\n", deleted, *days)
}
