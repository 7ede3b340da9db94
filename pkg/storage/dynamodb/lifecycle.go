package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
)

const statusStartTimeGSI = "status-start_time-index"

// TransitionTournamentStatus moves a tournament to its successor status. The
// condition pins the predecessor, which both enforces monotonicity and makes
// redelivered transition messages harmless.
func (s *Store) TransitionTournamentStatus(ctx context.Context, tournamentID string, from, to models.TournamentStatus) (*models.Tournament, error) {
	if from.NextStatus() != to {
		return nil, fmt.Errorf("%w: illegal transition %s -> %s", storage.ErrValidation, from, to)
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TournamentsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tournamentID},
		},
		UpdateExpression:    aws.String("SET #status = :to, version = version + :one, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":   &types.AttributeValueMemberS{Value: string(to)},
			":from": &types.AttributeValueMemberS{Value: string(from)},
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":now":  &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			if _, getErr := s.GetTournament(ctx, tournamentID); getErr != nil {
				return nil, getErr
			}
			return nil, storage.ErrInvalidStatus
		}
		return nil, fmt.Errorf("failed to transition tournament %s: %w", tournamentID, err)
	}

	var t models.Tournament
	if err := attributevalue.UnmarshalMap(result.Attributes, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transitioned tournament: %w", err)
	}

	return &t, nil
}

// GetOverdueTournaments retrieves tournaments whose transition time has
// passed but whose status has not moved: upcoming past start_time and active
// past end_time.
func (s *Store) GetOverdueTournaments(ctx context.Context, now time.Time) ([]models.Tournament, error) {
	nowStr, err := now.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	zeroStr, err := time.Time{}.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zero time: %w", err)
	}

	var overdue []models.Tournament
	queries := []struct {
		status models.TournamentStatus
		filter string
		values map[string]types.AttributeValue
	}{
		{
			status: models.StatusUpcoming,
			filter: "start_time < :cutoff",
			values: map[string]types.AttributeValue{
				":cutoff": &types.AttributeValueMemberS{Value: string(nowStr)},
			},
		},
		{
			// An unset end_time marshals as the zero time, which sorts
			// below every cutoff. Open-ended tournaments stay active
			// until deleted.
			status: models.StatusActive,
			filter: "end_time < :cutoff AND end_time > :zero",
			values: map[string]types.AttributeValue{
				":cutoff": &types.AttributeValueMemberS{Value: string(nowStr)},
				":zero":   &types.AttributeValueMemberS{Value: string(zeroStr)},
			},
		},
	}

	for _, q := range queries {
		values := map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(q.status)},
		}
		for k, v := range q.values {
			values[k] = v
		}
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.TournamentsTableName),
			IndexName:              aws.String(statusStartTimeGSI),
			KeyConditionExpression: aws.String("#status = :status"),
			FilterExpression:       aws.String(q.filter),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: values,
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for overdue %s tournaments: %w", q.status, err)
		}

		var tournaments []models.Tournament
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &tournaments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal overdue tournaments: %w", err)
		}
		overdue = append(overdue, tournaments...)
	}

	return overdue, nil
}
