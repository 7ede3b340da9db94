package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
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

// earlyTolerance is how far ahead of its due time a transition may be
// applied. Messages arriving earlier than that were truncated by the SQS
// delay cap and go back on the queue.
const earlyTolerance = 30 * time.Second

type handler struct {
	store storage.LifecycleStore
	sched scheduler.Scheduler
}

func newHandlerFromEnv() *handler {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tournamentsTable := os.Getenv("DYNAMODB_TOURNAMENTS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if tournamentsTable == "" || usersTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	return &handler{
		store: dydbstore.New(dbClient, sqsScheduler, tournamentsTable, usersTable, connectionsTable),
		sched: sqsScheduler,
	}
}

// HandleRequest processes SQS messages and applies tournament status
// transitions that have come due.
func (h *handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var transition models.StatusTransition
		if err := json.Unmarshal([]byte(message.Body), &transition); err != nil {
			// A malformed body never becomes valid; retrying it would pin
			// the queue on a poison message.
			log.Printf("ERROR: dropping unreadable SQS message %s: %v", message.MessageId, err)
			continue
		}

		// The SQS per-message delay caps at 15 minutes; a transition further
		// out than that arrives early and gets re-enqueued with the
		// remaining delay.
		if remaining := time.Until(transition.Due); remaining > earlyTolerance {
			log.Printf("Transition for tournament %s is due in %s, re-enqueuing", transition.TournamentID, remaining)
			if err := h.sched.ScheduleTransition(ctx, transition, remaining); err != nil {
				log.Printf("ERROR: failed to re-enqueue transition for tournament %s: %v", transition.TournamentID, err)
				return err
			}
			continue
		}

		log.Printf("Applying transition for tournament %s: %s -> %s", transition.TournamentID, transition.From, transition.To)

		_, err := h.store.TransitionTournamentStatus(ctx, transition.TournamentID, transition.From, transition.To)
		switch {
		case err == nil:
			log.Printf("Successfully transitioned tournament %s to %s", transition.TournamentID, transition.To)
		case errors.Is(err, storage.ErrInvalidStatus):
			// The tournament already moved past `from`, e.g. through a
			// rescheduled duplicate or the reconciliation sweep. Done.
			log.Printf("Tournament %s already left status %s, nothing to do", transition.TournamentID, transition.From)
		case errors.Is(err, storage.ErrTournamentNotFound):
			// Deleted since scheduling. Done.
			log.Printf("Tournament %s no longer exists, nothing to do", transition.TournamentID)
		case errors.Is(err, storage.ErrValidation):
			// An illegal from/to pair is as much a poison message as an
			// unreadable body. Drop it.
			log.Printf("ERROR: dropping transition with illegal status pair for tournament %s: %v", transition.TournamentID, err)
		default:
			log.Printf("ERROR: failed to transition tournament %s: %v", transition.TournamentID, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}
	}

	return nil
}

func main() {
	lambda.Start(newHandlerFromEnv().HandleRequest)
}
