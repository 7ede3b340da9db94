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

// GetUser retrieves a user from DynamoDB by their ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.UsersTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

// GetOrCreateUser retrieves a user, creating them with the starting balance
// on first access. The conditional put loses gracefully to a concurrent
// creator; whoever wins, the follow-up read returns the stored row.
func (s *Store) GetOrCreateUser(ctx context.Context, userID string, startingBalance int64) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	newUser := &models.User{
		ID:        userID,
		Balance:   startingBalance,
		Enrolled:  []string{},
		Version:   1,
		CreatedAt: time.Now(),
	}
	item, err := attributevalue.MarshalMap(newUser)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.UsersTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if !errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("failed to create user in DynamoDB: %w", err)
		}
		// Lost the race to another creator; fall through to the read.
		return s.GetUser(ctx, userID)
	}

	return newUser, nil
}

// AdjustUserBalance awards or deducts stars. The condition keeps the balance
// from ever going negative at a committed state.
func (s *Store) AdjustUserBalance(ctx context.Context, userID string, delta int64) (*models.User, error) {
	floor := int64(0)
	if delta < 0 {
		floor = -delta
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:    aws.String("SET balance = balance + :delta, version = version + :one"),
		ConditionExpression: aws.String("attribute_exists(id) AND balance >= :floor"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
			":floor": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", floor)},
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// The condition covers both existence and the floor; a follow-up
			// read tells them apart.
			if _, getErr := s.GetUser(ctx, userID); getErr != nil {
				return nil, getErr
			}
			return nil, storage.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to adjust balance for user %s: %w", userID, err)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Attributes, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated user: %w", err)
	}

	return &user, nil
}
