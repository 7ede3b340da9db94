package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/star-tournaments/pkg/scheduler"
	"github.com/chris/star-tournaments/pkg/storage"
)

//go:generate go run github.com/vektra/mockery/v2 --name=DynamoDBAPI --output=mocks

// DynamoDBAPI captures the subset of the DynamoDB client used by the Store,
// so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                        DynamoDBAPI
	Scheduler                     scheduler.Scheduler
	TournamentsTableName          string
	UsersTableName                string
	WebsocketConnectionsTableName string
}

// New creates a new Store. The scheduler may be nil for components that never
// create or reschedule tournaments.
func New(client DynamoDBAPI, sched scheduler.Scheduler, tournamentsTable, usersTable, connectionsTable string) *Store {
	return &Store{
		Client:                        client,
		Scheduler:                     sched,
		TournamentsTableName:          tournamentsTable,
		UsersTableName:                usersTable,
		WebsocketConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
