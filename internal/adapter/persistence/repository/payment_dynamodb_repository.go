package repository

import (
	"context"
	"encoding/json"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsOrderIDIndex     = "order_id-index"
)

type paymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	OrderID            string                 `dynamodbav:"order_id"`
	PayerID            string                 `dynamodbav:"payer_id"`
	Method             string                 `dynamodbav:"method"`
	TotalAmount        money                  `dynamodbav:"total_amount"`
	PlatformFee        money                  `dynamodbav:"platform_fee"`
	ChefNetAmount      money                  `dynamodbav:"chef_net_amount"`
	Status             string                 `dynamodbav:"status"`
	ProviderStatus     string                 `dynamodbav:"provider_status"`
	Date               string                 `dynamodbav:"date"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	items := make([]entities.Payment, 0)
	err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": stringValue(orderID),
		},
	}, func(it paymentItem) error {
		items = append(items, fromPaymentItem(it))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	var payload map[string]interface{}
	if len(p.ProviderPayloadRaw) > 0 {
		_ = json.Unmarshal(p.ProviderPayloadRaw, &payload)
	}
	return paymentItem{
		ID:                 p.ID,
		OrderID:            p.OrderID,
		PayerID:            p.PayerID,
		Method:             string(p.Method),
		TotalAmount:        money(p.TotalAmount),
		PlatformFee:        money(p.PlatformFee),
		ChefNetAmount:      money(p.ChefNetAmount),
		Status:             string(p.Status),
		ProviderStatus:     p.ProviderStatus,
		Date:               formatTime(p.Date),
		ProviderPayload:    payload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:                 it.ID,
		OrderID:            it.OrderID,
		PayerID:            it.PayerID,
		Method:             entities.PaymentMethod(it.Method),
		TotalAmount:        it.TotalAmount.decimal(),
		PlatformFee:        it.PlatformFee.decimal(),
		ChefNetAmount:      it.ChefNetAmount.decimal(),
		Status:             entities.PaymentStatus(it.Status),
		ProviderStatus:     it.ProviderStatus,
		Date:               parseTime(it.Date),
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
