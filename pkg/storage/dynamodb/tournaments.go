package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
)

// GetTournament retrieves a tournament from DynamoDB by its ID.
func (s *Store) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": tournamentID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tournament ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TournamentsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrTournamentNotFound
	}

	var t models.Tournament
	if err := attributevalue.UnmarshalMap(result.Item, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}

	return &t, nil
}

// ListTournaments retrieves all tournaments from DynamoDB.
func (s *Store) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.TournamentsTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tournaments table: %w", err)
	}

	var tournaments []models.Tournament
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournaments: %w", err)
	}

	return tournaments, nil
}

// CreateTournament stores a new tournament and enqueues its status
// transitions. Enqueueing is best effort; the reconciliation sweep covers a
// lost message.
func (s *Store) CreateTournament(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tournament: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TournamentsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrTournamentExists
		}
		return nil, fmt.Errorf("failed to create tournament in DynamoDB: %w", err)
	}

	if s.Scheduler != nil {
		s.enqueueTransitions(ctx, t)
	}

	return t, nil
}

// UpdateTournament replaces the stored row if nobody else wrote in between.
func (s *Store) UpdateTournament(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	expectedVersion := t.Version
	updated := *t
	updated.Version = expectedVersion + 1
	updated.UpdatedAt = time.Now()

	item, err := attributevalue.MarshalMap(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tournament: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TournamentsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id) AND version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			if _, getErr := s.GetTournament(ctx, t.ID); getErr != nil {
				return nil, getErr
			}
			return nil, storage.ErrTransactionConflict
		}
		return nil, fmt.Errorf("failed to update tournament in DynamoDB: %w", err)
	}

	if s.Scheduler != nil {
		s.enqueueTransitions(ctx, &updated)
	}

	return &updated, nil
}

// DeleteTournament removes an upcoming tournament with an empty roster.
// A populated roster holds debited entry fees, so deletion is refused rather
// than silently dropping the money.
func (s *Store) DeleteTournament(ctx context.Context, tournamentID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": tournamentID})
	if err != nil {
		return fmt.Errorf("failed to marshal tournament ID for deletion: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.TournamentsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :upcoming AND size(participants) = :zero"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":upcoming": &types.AttributeValueMemberS{Value: string(models.StatusUpcoming)},
			":zero":     &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			if _, getErr := s.GetTournament(ctx, tournamentID); getErr != nil {
				return getErr
			}
			return storage.ErrInvalidStatus
		}
		return fmt.Errorf("failed to delete tournament from DynamoDB: %w", err)
	}

	return nil
}

// enqueueTransitions schedules the activation and completion messages for a
// tournament's start and end times.
func (s *Store) enqueueTransitions(ctx context.Context, t *models.Tournament) {
	now := time.Now()
	transitions := []models.StatusTransition{
		{TournamentID: t.ID, From: models.StatusUpcoming, To: models.StatusActive, Due: t.StartTime},
	}
	if !t.EndTime.IsZero() {
		transitions = append(transitions, models.StatusTransition{
			TournamentID: t.ID, From: models.StatusActive, To: models.StatusCompleted, Due: t.EndTime,
		})
	}

	for _, tr := range transitions {
		if err := s.Scheduler.ScheduleTransition(ctx, tr, tr.Due.Sub(now)); err != nil {
			slog.Error("tournament stored but transition not enqueued",
				"tournamentId", t.ID, "to", tr.To, "error", err)
		}
	}
}
