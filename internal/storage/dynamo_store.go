package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/personaforge/internal/clients"
	"github.com/spacesedan/personaforge/internal/models"
)

const dynamoWriteRetries = 3

// DynamoStore persists persona records to a DynamoDB table, one item per
// generation, with a 30-day TTL.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoStore(table string) *DynamoStore {
	return &DynamoStore{client: clients.GetDynamoDBClient(), table: table}
}

func (ds *DynamoStore) SavePersona(ctx context.Context, record models.PersonaRecord) (string, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return "", fmt.Errorf("[DynamoDB] failed to marshal persona record: %w", err)
	}
	item["expires_at"] = &types.AttributeValueMemberN{
		Value: fmt.Sprintf("%d", record.GeneratedAt.Add(30*24*time.Hour).Unix()),
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(ds.table),
		Item:      item,
	}

	var putErr error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt < dynamoWriteRetries; attempt++ {
		if _, putErr = ds.client.PutItem(ctx, input); putErr == nil {
			break
		}
		slog.Warn("[DynamoDB] PutItem failed, retrying...",
			slog.Int("attempt", attempt+1),
			slog.String("error", putErr.Error()))
		time.Sleep(backoff)
		backoff *= 2
	}
	if putErr != nil {
		return "", fmt.Errorf("[DynamoDB] failed to store persona record: %w", putErr)
	}

	ref := fmt.Sprintf("dynamodb://%s/%s", ds.table, record.GenerationID)
	slog.Info("[DynamoDB] Persona record stored", slog.String("artifact", ref))
	return ref, nil
}
