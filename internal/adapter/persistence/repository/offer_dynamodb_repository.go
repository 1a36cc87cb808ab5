package repository

import (
	"context"
	"log"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOffersTableName = "offers"
	offersOrderIDIndex     = "order_id-index"
)

type offerItem struct {
	ID        string `dynamodbav:"id"`
	OrderID   string `dynamodbav:"order_id"`
	CookID    string `dynamodbav:"cook_id"`
	Price     money  `dynamodbav:"price"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// OfferDynamoRepository persists Offer entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
type OfferDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	ordersTable string
}

var _ interfaces.IOfferRepository = (*OfferDynamoRepository)(nil)

func NewOfferDynamoRepository(ddb *dynamodb.Client) *OfferDynamoRepository {
	return &OfferDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("OFFERS_TABLE", defaultOffersTableName),
		ordersTable: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

// CreateForPendingOrder puts the offer in the same transaction as a condition
// check on the order, so no offer lands after the order was taken.
func (r *OfferDynamoRepository) CreateForPendingOrder(ctx context.Context, offer entities.Offer) (bool, error) {
	av, err := attributevalue.MarshalMap(toOfferItem(offer))
	if err != nil {
		return false, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{ConditionCheck: &types.ConditionCheck{
				TableName:           aws.String(r.ordersTable),
				Key:                 idKey(offer.OrderID),
				ConditionExpression: aws.String("#status = :pending AND attribute_not_exists(#cook_id)"),
				ExpressionAttributeNames: map[string]string{
					"#status":  "status",
					"#cook_id": "cook_id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pending": stringValue(string(entities.OrderStatusPending)),
				},
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			}},
		},
	})
	if err != nil {
		if isConditionFailure(err) {
			log.Printf("[offer][repository] order no longer pending order_id=%s offer_id=%s", offer.OrderID, offer.ID)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *OfferDynamoRepository) GetByID(ctx context.Context, id string) (entities.Offer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Offer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Offer{}, nil
	}

	var it offerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Offer{}, err
	}
	return fromOfferItem(it), nil
}

func (r *OfferDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Offer, error) {
	items := make([]entities.Offer, 0)
	err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(offersOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": stringValue(orderID),
		},
	}, func(it offerItem) error {
		items = append(items, fromOfferItem(it))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RejectPending marks every still-sent offer of orderID except keepID as
// rejected. Offers that changed concurrently are skipped.
func (r *OfferDynamoRepository) RejectPending(ctx context.Context, orderID, keepID string) (int, error) {
	offers, err := r.ListByOrderID(ctx, orderID)
	if err != nil {
		return 0, err
	}

	now := formatTime(time.Now())
	rejected := 0
	for _, of := range offers {
		if of.ID == keepID || of.Status != entities.OfferStatusSent {
			continue
		}
		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:           aws.String(r.tableName),
			Key:                 idKey(of.ID),
			ConditionExpression: aws.String("#status = :sent"),
			UpdateExpression:    aws.String("SET #status = :rejected, #updated_at = :now"),
			ExpressionAttributeNames: map[string]string{
				"#status":     "status",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sent":     stringValue(string(entities.OfferStatusSent)),
				":rejected": stringValue(string(entities.OfferStatusRejected)),
				":now":      stringValue(now),
			},
		})
		if err != nil {
			if isConditionFailure(err) {
				log.Printf("[offer][repository] offer changed concurrently offer_id=%s", of.ID)
				continue
			}
			return rejected, err
		}
		rejected++
	}
	return rejected, nil
}

func toOfferItem(o entities.Offer) offerItem {
	return offerItem{
		ID:        o.ID,
		OrderID:   o.OrderID,
		CookID:    o.CookID,
		Price:     money(o.Price),
		Status:    string(o.Status),
		CreatedAt: formatTime(o.CreatedAt),
		UpdatedAt: formatTime(o.UpdatedAt),
	}
}

func fromOfferItem(it offerItem) entities.Offer {
	return entities.Offer{
		ID:        it.ID,
		OrderID:   it.OrderID,
		CookID:    it.CookID,
		Price:     it.Price.decimal(),
		Status:    entities.OfferStatus(it.Status),
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
