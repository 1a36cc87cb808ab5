package repository

import (
	"context"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultMessagesTableName = "messages"

type messageItem struct {
	OrderID   string `dynamodbav:"order_id"`
	SortKey   string `dynamodbav:"sort_key"`
	ID        string `dynamodbav:"id"`
	SenderID  string `dynamodbav:"sender_id"`
	Content   string `dynamodbav:"content"`
	Type      string `dynamodbav:"message_type"`
	CreatedAt string `dynamodbav:"created_at"`
}

// MessageDynamoRepository persists chat Message entities in DynamoDB.
//
// Table requirements:
//   - PK: order_id (string)
//   - SK: sort_key (string, created_at#id)
type MessageDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMessageRepository = (*MessageDynamoRepository)(nil)

func NewMessageDynamoRepository(ddb *dynamodb.Client) *MessageDynamoRepository {
	return &MessageDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MESSAGES_TABLE", defaultMessagesTableName),
	}
}

func (r *MessageDynamoRepository) Append(ctx context.Context, m entities.Message) (entities.Message, error) {
	av, err := attributevalue.MarshalMap(toMessageItem(m))
	if err != nil {
		return entities.Message{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{
			"#sk": "sort_key",
		},
	})
	if err != nil {
		return entities.Message{}, err
	}
	return m, nil
}

// ListByOrderID returns the conversation oldest first.
func (r *MessageDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Message, error) {
	items := make([]entities.Message, 0)
	err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": stringValue(orderID),
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	}, func(it messageItem) error {
		items = append(items, fromMessageItem(it))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func toMessageItem(m entities.Message) messageItem {
	return messageItem{
		OrderID:   m.OrderID,
		SortKey:   m.SortKey(),
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Type:      string(m.Type),
		CreatedAt: formatTime(m.CreatedAt),
	}
}

func fromMessageItem(it messageItem) entities.Message {
	return entities.Message{
		ID:        it.ID,
		OrderID:   it.OrderID,
		SenderID:  it.SenderID,
		Content:   it.Content,
		Type:      entities.MessageType(it.Type),
		CreatedAt: parseTime(it.CreatedAt),
	}
}
