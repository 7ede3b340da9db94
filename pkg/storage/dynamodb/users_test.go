package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/star-tournaments/pkg/models"
	"github.com/chris/star-tournaments/pkg/storage"
	"github.com/chris/star-tournaments/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		userAV, _ := attributevalue.MarshalMap(fundedUser())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		user, err := store.GetUser(context.Background(), "u-1")

		assert.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, int64(500), user.Balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetUser(context.Background(), "u-missing")

		assert.ErrorIs(t, err, storage.ErrUserNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestGetOrCreateUser(t *testing.T) {
	t.Run("Existing User", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		userAV, _ := attributevalue.MarshalMap(fundedUser())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		user, err := store.GetOrCreateUser(context.Background(), "u-1", 1000)

		assert.NoError(t, err)
		assert.Equal(t, int64(500), user.Balance)
		mockClient.AssertNotCalled(t, "PutItem", mock.Anything, mock.Anything)
	})

	t.Run("Creates With Starting Balance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)
		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil)

		user, err := store.GetOrCreateUser(context.Background(), "u-new", 1000)

		assert.NoError(t, err)
		assert.Equal(t, "u-new", user.ID)
		assert.Equal(t, int64(1000), user.Balance)
		assert.Equal(t, int64(1), user.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Loses Creation Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: nil}, nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})
		// The row the concurrent creator wrote.
		existing := &models.User{ID: "u-new", Balance: 1000, Enrolled: []string{}, Version: 1}
		existingAV, _ := attributevalue.MarshalMap(existing)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: existingAV}, nil)

		user, err := store.GetOrCreateUser(context.Background(), "u-new", 1000)

		assert.NoError(t, err)
		assert.Equal(t, int64(1000), user.Balance)
		mockClient.AssertExpectations(t)
	})
}

func TestAdjustUserBalance(t *testing.T) {
	t.Run("Award", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		updated := &models.User{ID: "u-1", Balance: 600, Enrolled: []string{}, Version: 2}
		updatedAV, _ := attributevalue.MarshalMap(updated)
		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil)

		user, err := store.AdjustUserBalance(context.Background(), "u-1", 100)

		assert.NoError(t, err)
		assert.Equal(t, int64(600), user.Balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Deduct Past Zero", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})
		userAV, _ := attributevalue.MarshalMap(fundedUser())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		_, err := store.AdjustUserBalance(context.Background(), "u-1", -10000)

		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)
		mockClient.AssertExpectations(t)
	})

	t.Run("User Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.AdjustUserBalance(context.Background(), "u-missing", -10)

		assert.ErrorIs(t, err, storage.ErrUserNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		_, err := store.AdjustUserBalance(context.Background(), "u-1", 100)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to adjust balance")
		mockClient.AssertExpectations(t)
	})
}
