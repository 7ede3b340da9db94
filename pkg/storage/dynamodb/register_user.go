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

// RegisterUser atomically debits the entry fee, appends the user to the
// roster and records the enrollment.
//
// The flow is read-validate-commit: both rows are read without locks, every
// precondition is checked in order, and the commit re-asserts all of them as
// condition expressions inside one TransactWriteItems call. The transact
// items are always ordered tournament before user; every multi-row write in
// this package keeps that order. A failed condition at commit time means a
// concurrent writer got in between the read and the commit, so the whole
// operation is reported as a retryable conflict rather than guessed at.
func (s *Store) RegisterUser(ctx context.Context, tournamentID, userID string, startingBalance int64) (*models.RegistrationOutcome, error) {
	// 1. Read current state of both rows.
	tournament, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	user, err := s.GetOrCreateUser(ctx, userID, startingBalance)
	if err != nil {
		return nil, err
	}

	// 2. Precondition checks, in order. These produce the caller-facing
	// error; the commit conditions below only ever report a conflict.
	if tournament.Status != models.StatusUpcoming {
		return nil, storage.ErrInvalidStatus
	}
	if tournament.HasParticipant(userID) {
		return nil, storage.ErrAlreadyRegistered
	}
	if tournament.IsFull() {
		return nil, storage.ErrCapacityExceeded
	}
	if user.Balance < tournament.EntryFee {
		return nil, storage.ErrInsufficientBalance
	}

	now := time.Now()
	fee := tournament.EntryFee

	// 3. Commit both updates in one transaction, re-asserting the
	// preconditions. Order: tournament, then user.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: append the user to the roster.
				Update: &types.Update{
					TableName: aws.String(s.TournamentsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tournamentID},
					},
					UpdateExpression:    aws.String("SET participants = list_append(participants, :user), version = version + :one, updated_at = :now"),
					ConditionExpression: aws.String("version = :tver AND #status = :upcoming AND size(participants) < :max AND NOT contains(participants, :uid)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":user":     &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: userID}}},
						":uid":      &types.AttributeValueMemberS{Value: userID},
						":tver":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tournament.Version)},
						":upcoming": &types.AttributeValueMemberS{Value: string(models.StatusUpcoming)},
						":max":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tournament.MaxParticipants)},
						":one":      &types.AttributeValueMemberN{Value: "1"},
						":now":      &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
			{
				// Operation 2: debit the fee and record the enrollment.
				Update: &types.Update{
					TableName: aws.String(s.UsersTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: userID},
					},
					UpdateExpression:    aws.String("SET balance = balance - :fee, enrolled = list_append(enrolled, :tournament), version = version + :one"),
					ConditionExpression: aws.String("version = :uver AND balance >= :fee AND NOT contains(enrolled, :tid)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":fee":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", fee)},
						":tournament": &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: tournamentID}}},
						":tid":        &types.AttributeValueMemberS{Value: tournamentID},
						":uver":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", user.Version)},
						":one":        &types.AttributeValueMemberN{Value: "1"},
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
		return nil, fmt.Errorf("failed to execute registration transaction: %w", err)
	}

	// 4. Build post-commit snapshots from the state the conditions proved.
	tournament.Participants = append(tournament.Participants, userID)
	tournament.Version++
	tournament.UpdatedAt = now
	user.Balance -= fee
	user.Enrolled = append(user.Enrolled, tournamentID)
	user.Version++

	return &models.RegistrationOutcome{Tournament: tournament, User: user}, nil
}
