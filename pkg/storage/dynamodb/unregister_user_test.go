package dynamodb

import (
	"context"
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

func TestUnregisterUser(t *testing.T) {
	registered := func() (*models.Tournament, *models.User) {
		tournament := upcomingTournament()
		tournament.Participants = []string{"u-2", "u-1"}
		user := fundedUser()
		user.Balance = 400
		user.Enrolled = []string{"t-1"}
		return tournament, user
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		tournament, user := registered()
		tournamentAV, _ := attributevalue.MarshalMap(tournament)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: tournamentAV}, nil)
		userAV, _ := attributevalue.MarshalMap(user)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		outcome, err := store.UnregisterUser(context.Background(), "t-1", "u-1")

		assert.NoError(t, err)
		assert.Equal(t, []string{"u-2"}, outcome.Tournament.Participants)
		assert.Equal(t, int64(500), outcome.User.Balance)
		assert.Empty(t, outcome.User.Enrolled)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Registered", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		tournamentAV, _ := attributevalue.MarshalMap(upcomingTournament())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: tournamentAV}, nil)
		userAV, _ := attributevalue.MarshalMap(fundedUser())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		_, err := store.UnregisterUser(context.Background(), "t-1", "u-1")

		assert.ErrorIs(t, err, storage.ErrNotRegistered)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Upcoming", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		tournament, user := registered()
		tournament.Status = models.StatusActive
		tournamentAV, _ := attributevalue.MarshalMap(tournament)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: tournamentAV}, nil)
		userAV, _ := attributevalue.MarshalMap(user)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		_, err := store.UnregisterUser(context.Background(), "t-1", "u-1")

		assert.ErrorIs(t, err, storage.ErrInvalidStatus)
		mockClient.AssertExpectations(t)
	})

	t.Run("User Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		tournament, _ := registered()
		tournamentAV, _ := attributevalue.MarshalMap(tournament)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: tournamentAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.UnregisterUser(context.Background(), "t-1", "u-1")

		assert.ErrorIs(t, err, storage.ErrUserNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Commit Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, nil, "tournaments", "users", "connections")

		tournament, user := registered()
		tournamentAV, _ := attributevalue.MarshalMap(tournament)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: tournamentAV}, nil)
		userAV, _ := attributevalue.MarshalMap(user)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		reason := "ConditionalCheckFailed"
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{{Code: &reason}},
		}).Once()

		_, err := store.UnregisterUser(context.Background(), "t-1", "u-1")

		assert.ErrorIs(t, err, storage.ErrTransactionConflict)
		mockClient.AssertExpectations(t)
	})
}
