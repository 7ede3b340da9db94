package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/scheduler"
	"github.com/chris/star-tournaments/pkg/storage"
	dydbstore "github.com/chris/star-tournaments/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Storage
var sqsScheduler scheduler.Scheduler

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler = scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	tournamentsTable := os.Getenv("DYNAMODB_TOURNAMENTS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	store = dydbstore.New(dbClient, sqsScheduler, tournamentsTable, usersTable, connectionsTable)
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps for
// tournaments whose scheduled status transition never landed (lost SQS
// message, crashed consumer) and re-enqueues them for immediate processing.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation sweep for overdue tournaments...")

	now := time.Now()
	overdue, err := store.GetOverdueTournaments(ctx, now)
	if err != nil {
		log.Printf("ERROR: failed to get overdue tournaments: %v", err)
		return err
	}

	if len(overdue) == 0 {
		log.Println("No overdue tournaments found.")
		return nil
	}

	log.Printf("Found %d overdue tournaments. Re-enqueuing transitions...", len(overdue))

	for _, t := range overdue {
		next := t.Status.NextStatus()
		if next == "" {
			log.Printf("ERROR: tournament %s is overdue but already terminal (%s)", t.ID, t.Status)
			continue
		}

		due := t.StartTime
		if t.Status == models.StatusActive {
			due = t.EndTime
		}

		transition := models.StatusTransition{
			TournamentID: t.ID,
			From:         t.Status,
			To:           next,
			Due:          due,
		}

		if err := sqsScheduler.ScheduleTransition(ctx, transition, 0); err != nil {
			log.Printf("ERROR: failed to re-enqueue transition for tournament %s: %v", t.ID, err)
			// Continue to the next tournament, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully re-enqueued transition for tournament %s (%s -> %s)", t.ID, t.Status, next)
	}

	log.Println("Reconciliation sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
