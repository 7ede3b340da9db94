package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
)

// UnregisterUser atomically refunds the entry fee and removes the user from
// the roster and their enrollment set. Same read-validate-commit shape as
// RegisterUser, same tournament-before-user item order.
//
// DynamoDB removes list elements by index, so the conditions pin both the row
// versions and the element values at the indexes found during the read.
func (s *Store) UnregisterUser(ctx context.Context, tournamentID, userID string) (*models.RegistrationOutcome, error) {
	tournament, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if tournament.Status != models.StatusUpcoming {
		return nil, storage.ErrInvalidStatus
	}

	participantIdx := indexOf(tournament.Participants, userID)
	if participantIdx < 0 {
		return nil, storage.ErrNotRegistered
	}
	enrolledIdx := indexOf(user.Enrolled, tournamentID)
	if enrolledIdx < 0 {
		// Roster and enrollment are written together, so this points at a
		// corrupted row rather than a user mistake.
		return nil, fmt.Errorf("user %s on roster of %s but not enrolled: data inconsistency", userID, tournamentID)
	}

	now := time.Now()
	fee := tournament.EntryFee

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: drop the user from the roster.
				Update: &types.Update{
					TableName: aws.String(s.TournamentsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tournamentID},
					},
					UpdateExpression:    aws.String(fmt.Sprintf("REMOVE participants[%d] SET version = version + :one, updated_at = :now", participantIdx)),
					ConditionExpression: aws.String(fmt.Sprintf("version = :tver AND #status = :upcoming AND participants[%d] = :uid", participantIdx)),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":uid":      &types.AttributeValueMemberS{Value: userID},
						":tver":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tournament.Version)},
						":upcoming": &types.AttributeValueMemberS{Value: string(models.StatusUpcoming)},
						":one":      &types.AttributeValueMemberN{Value: "1"},
						":now":      &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
			{
				// Operation 2: refund the fee and drop the enrollment.
				Update: &types.Update{
					TableName: aws.String(s.UsersTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: userID},
					},
					UpdateExpression:    aws.String(fmt.Sprintf("REMOVE enrolled[%d] SET balance = balance + :fee, version = version + :one", enrolledIdx)),
					ConditionExpression: aws.String(fmt.Sprintf("version = :uver AND enrolled[%d] = :tid", enrolledIdx)),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":fee":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", fee)},
						":tid":  &types.AttributeValueMemberS{Value: tournamentID},
						":uver": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", user.Version)},
						":one":  &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return nil, storage.ErrTransactionConflict
				}
			}
		}
		return nil, fmt.Errorf("failed to execute unregistration transaction: %w", err)
	}

	tournament.Participants = append(tournament.Participants[:participantIdx], tournament.Participants[participantIdx+1:]...)
	tournament.Version++
	tournament.UpdatedAt = now
	user.Balance += fee
	user.Enrolled = append(user.Enrolled[:enrolledIdx], user.Enrolled[enrolledIdx+1:]...)
	user.Version++

	return &models.RegistrationOutcome{Tournament: tournament, User: user}, nil
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
