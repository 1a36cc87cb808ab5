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
	"github.com/shopspring/decimal"
)

const (
	defaultOrdersTableName = "orders"
	ordersStatusIndex      = "status-index"
	ordersClientIDIndex    = "client_id-index"
	ordersCookIDIndex      = "cook_id-index"
)

type orderItem struct {
	ID              string  `dynamodbav:"id"`
	ClientID        string  `dynamodbav:"client_id"`
	CookID          string  `dynamodbav:"cook_id,omitempty"`
	DishDescription string  `dynamodbav:"dish_description"`
	PeopleCount     int     `dynamodbav:"people_count"`
	PackageLevel    string  `dynamodbav:"package_level"`
	TotalPrice      money   `dynamodbav:"total_price"`
	PlatformFee     money   `dynamodbav:"platform_fee"`
	CookProfit      money   `dynamodbav:"cook_profit"`
	PaymentMethod   string  `dynamodbav:"payment_method"`
	Latitude        float64 `dynamodbav:"latitude"`
	Longitude       float64 `dynamodbav:"longitude"`
	Status          string  `dynamodbav:"status"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
	AcceptedAt      string  `dynamodbav:"accepted_at,omitempty"`
	CompletedAt     string  `dynamodbav:"completed_at,omitempty"`
	CancelledAt     string  `dynamodbav:"cancelled_at,omitempty"`
	PaymentState    string  `dynamodbav:"payment_state,omitempty"`
	PaymentAttempt  string  `dynamodbav:"payment_attempt,omitempty"`
	PaymentLease    string  `dynamodbav:"payment_lease_until,omitempty"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: created_at)
//   - GSI: client_id-index (PK: client_id)
//   - GSI: cook_id-index (PK: cook_id), sparse while orders are pending
//
// Every status change is a conditional write. A failed condition is reported
// as matched=false and never as an error.
type OrderDynamoRepository struct {
	ddb        *dynamodb.Client
	tableName  string
	usersTable string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:        ddb,
		tableName:  getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		usersTable: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListOpen(ctx context.Context) ([]entities.Order, error) {
	return r.queryIndex(ctx, ordersStatusIndex, "status", string(entities.OrderStatusPending))
}

func (r *OrderDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Order, error) {
	return r.queryIndex(ctx, ordersClientIDIndex, "client_id", clientID)
}

func (r *OrderDynamoRepository) ListByCookID(ctx context.Context, cookID string) ([]entities.Order, error) {
	return r.queryIndex(ctx, ordersCookIDIndex, "cook_id", cookID)
}

func (r *OrderDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.Order, error) {
	items := make([]entities.Order, 0)
	err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": stringValue(value),
		},
	}, func(it orderItem) error {
		items = append(items, fromOrderItem(it))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Accept assigns cookID if the order is still pending and unassigned. A
// non-zero agreedPrice must also equal the stored total_price.
func (r *OrderDynamoRepository) Accept(ctx context.Context, id, cookID string, agreedPrice decimal.Decimal) (entities.Order, bool, error) {
	return r.update(ctx, id, func(now string) conditionalUpdate {
		cond := "#status = :pending AND attribute_not_exists(#cook_id)"
		vals := map[string]types.AttributeValue{
			":pending":  stringValue(string(entities.OrderStatusPending)),
			":accepted": stringValue(string(entities.OrderStatusAccepted)),
			":cook_id":  stringValue(cookID),
			":now":      stringValue(now),
		}
		names := map[string]string{
			"#status":      "status",
			"#cook_id":     "cook_id",
			"#accepted_at": "accepted_at",
			"#updated_at":  "updated_at",
		}
		if !agreedPrice.IsZero() {
			cond += " AND #total_price = :agreed"
			vals[":agreed"] = numberValue(agreedPrice)
			names["#total_price"] = "total_price"
		}
		return conditionalUpdate{
			update:    "SET #status = :accepted, #cook_id = :cook_id, #accepted_at = :now, #updated_at = :now",
			condition: cond,
			values:    vals,
			names:     names,
		}
	})
}

// AcceptOffer assigns the offer's cook and price, and marks the offer
// accepted, in one transaction.
func (r *OrderDynamoRepository) AcceptOffer(ctx context.Context, offer entities.Offer, econ entities.Economics) (entities.Order, bool, error) {
	now := formatTime(time.Now())
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(offer.OrderID),
				ConditionExpression: aws.String("#status = :pending AND attribute_not_exists(#cook_id)"),
				UpdateExpression: aws.String("SET #status = :accepted, #cook_id = :cook_id, #total_price = :price, " +
					"#platform_fee = :fee, #cook_profit = :profit, #accepted_at = :now, #updated_at = :now"),
				ExpressionAttributeNames: map[string]string{
					"#status":       "status",
					"#cook_id":      "cook_id",
					"#total_price":  "total_price",
					"#platform_fee": "platform_fee",
					"#cook_profit":  "cook_profit",
					"#accepted_at":  "accepted_at",
					"#updated_at":   "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pending":  stringValue(string(entities.OrderStatusPending)),
					":accepted": stringValue(string(entities.OrderStatusAccepted)),
					":cook_id":  stringValue(offer.CookID),
					":price":    numberValue(econ.Price),
					":fee":      numberValue(econ.PlatformFee),
					":profit":   numberValue(econ.CookProfit),
					":now":      stringValue(now),
				},
			}},
			{Update: &types.Update{
				TableName:           aws.String(getenvDefault("OFFERS_TABLE", defaultOffersTableName)),
				Key:                 idKey(offer.ID),
				ConditionExpression: aws.String("#status = :sent AND #order_id = :order_id"),
				UpdateExpression:    aws.String("SET #status = :accepted, #updated_at = :now"),
				ExpressionAttributeNames: map[string]string{
					"#status":     "status",
					"#order_id":   "order_id",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":sent":     stringValue(string(entities.OfferStatusSent)),
					":accepted": stringValue(string(entities.OfferStatusAccepted)),
					":order_id": stringValue(offer.OrderID),
					":now":      stringValue(now),
				},
			}},
		},
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	o, err := r.GetByID(ctx, offer.OrderID)
	return o, err == nil, err
}

func (r *OrderDynamoRepository) Advance(ctx context.Context, id, cookID string, from, to entities.OrderStatus) (entities.Order, bool, error) {
	return r.update(ctx, id, func(now string) conditionalUpdate {
		return conditionalUpdate{
			update:    "SET #status = :to, #updated_at = :now",
			condition: "#status = :from AND #cook_id = :cook_id",
			values: map[string]types.AttributeValue{
				":from":    stringValue(string(from)),
				":to":      stringValue(string(to)),
				":cook_id": stringValue(cookID),
				":now":     stringValue(now),
			},
			names: map[string]string{
				"#status":     "status",
				"#cook_id":    "cook_id",
				"#updated_at": "updated_at",
			},
		}
	})
}

// CompleteAndCredit moves a cooking order to completed and adds profit to the
// cook wallet in one transaction, so a completed order is credited exactly once.
func (r *OrderDynamoRepository) CompleteAndCredit(ctx context.Context, id, cookID string, profit decimal.Decimal) (entities.Order, bool, error) {
	now := formatTime(time.Now())
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(id),
				ConditionExpression: aws.String("#status = :cooking AND #cook_id = :cook_id"),
				UpdateExpression:    aws.String("SET #status = :completed, #completed_at = :now, #updated_at = :now"),
				ExpressionAttributeNames: map[string]string{
					"#status":       "status",
					"#cook_id":      "cook_id",
					"#completed_at": "completed_at",
					"#updated_at":   "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":cooking":   stringValue(string(entities.OrderStatusCooking)),
					":completed": stringValue(string(entities.OrderStatusCompleted)),
					":cook_id":   stringValue(cookID),
					":now":       stringValue(now),
				},
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.usersTable),
				Key:                 idKey(cookID),
				ConditionExpression: aws.String("attribute_exists(#id)"),
				UpdateExpression:    aws.String("ADD #wallet_balance :profit SET #updated_at = :now"),
				ExpressionAttributeNames: map[string]string{
					"#id":             "id",
					"#wallet_balance": "wallet_balance",
					"#updated_at":     "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":profit": numberValue(profit),
					":now":    stringValue(now),
				},
			}},
		},
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	o, err := r.GetByID(ctx, id)
	return o, err == nil, err
}

func (r *OrderDynamoRepository) Cancel(ctx context.Context, id string, from entities.OrderStatus) (entities.Order, bool, error) {
	return r.update(ctx, id, func(now string) conditionalUpdate {
		return conditionalUpdate{
			update:    "SET #status = :cancelled, #cancelled_at = :now, #updated_at = :now",
			condition: "#status = :from",
			values: map[string]types.AttributeValue{
				":from":      stringValue(string(from)),
				":cancelled": stringValue(string(entities.OrderStatusCancelled)),
				":now":       stringValue(now),
			},
			names: map[string]string{
				"#status":       "status",
				"#cancelled_at": "cancelled_at",
				"#updated_at":   "updated_at",
			},
		}
	})
}

// ReservePayment takes the order's charge slot. An expired lease from a
// crashed attempt can be taken over.
func (r *OrderDynamoRepository) ReservePayment(ctx context.Context, id, attempt string, now, leaseUntil time.Time) (bool, error) {
	_, matched, err := r.update(ctx, id, func(string) conditionalUpdate {
		return conditionalUpdate{
			update:    "SET #payment_state = :processing, #payment_attempt = :attempt, #payment_lease_until = :lease, #updated_at = :now",
			condition: "(attribute_not_exists(#payment_state) OR (#payment_state = :processing AND #payment_lease_until < :now))",
			values: map[string]types.AttributeValue{
				":processing": stringValue(string(entities.PaymentStateProcessing)),
				":attempt":    stringValue(attempt),
				":lease":      stringValue(formatTime(leaseUntil)),
				":now":        stringValue(formatTime(now)),
			},
			names: map[string]string{
				"#payment_state":       "payment_state",
				"#payment_attempt":     "payment_attempt",
				"#payment_lease_until": "payment_lease_until",
				"#updated_at":          "updated_at",
			},
		}
	})
	return matched, err
}

func (r *OrderDynamoRepository) ReleasePayment(ctx context.Context, id, attempt string, paid bool) error {
	_, matched, err := r.update(ctx, id, func(now string) conditionalUpdate {
		u := conditionalUpdate{
			update:    "SET #updated_at = :now REMOVE #payment_state, #payment_attempt, #payment_lease_until",
			condition: "#payment_attempt = :attempt",
			values: map[string]types.AttributeValue{
				":attempt": stringValue(attempt),
				":now":     stringValue(now),
			},
			names: map[string]string{
				"#payment_state":       "payment_state",
				"#payment_attempt":     "payment_attempt",
				"#payment_lease_until": "payment_lease_until",
				"#updated_at":          "updated_at",
			},
		}
		if paid {
			u.update = "SET #payment_state = :paid, #updated_at = :now REMOVE #payment_attempt, #payment_lease_until"
			u.values[":paid"] = stringValue(string(entities.PaymentStatePaid))
		}
		return u
	})
	if err == nil && !matched {
		log.Printf("[order][repository] payment reservation already released order_id=%s attempt=%s", id, attempt)
	}
	return err
}

type conditionalUpdate struct {
	update    string
	condition string
	values    map[string]types.AttributeValue
	names     map[string]string
}

func (r *OrderDynamoRepository) update(ctx context.Context, id string, build func(now string) conditionalUpdate) (entities.Order, bool, error) {
	u := build(formatTime(time.Now()))

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND " + u.condition),
		UpdateExpression:          aws.String(u.update),
		ExpressionAttributeValues: u.values,
		ExpressionAttributeNames:  mergeNames(u.names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, false, err
	}
	return fromOrderItem(it), true, nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:              o.ID,
		ClientID:        o.ClientID,
		CookID:          o.CookID,
		DishDescription: o.DishDescription,
		PeopleCount:     o.PeopleCount,
		PackageLevel:    string(o.PackageLevel),
		TotalPrice:      money(o.TotalPrice),
		PlatformFee:     money(o.PlatformFee),
		CookProfit:      money(o.CookProfit),
		PaymentMethod:   string(o.PaymentMethod),
		Latitude:        o.Location.Latitude,
		Longitude:       o.Location.Longitude,
		Status:          string(o.Status),
		CreatedAt:       formatTime(o.CreatedAt),
		UpdatedAt:       formatTime(o.UpdatedAt),
		AcceptedAt:      formatTimePtr(o.AcceptedAt),
		CompletedAt:     formatTimePtr(o.CompletedAt),
		CancelledAt:     formatTimePtr(o.CancelledAt),
		PaymentState:    string(o.PaymentState),
		PaymentAttempt:  o.PaymentAttempt,
		PaymentLease:    formatTimePtr(o.PaymentLeaseUntil),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:                it.ID,
		ClientID:          it.ClientID,
		CookID:            it.CookID,
		DishDescription:   it.DishDescription,
		PeopleCount:       it.PeopleCount,
		PackageLevel:      entities.PackageLevel(it.PackageLevel),
		TotalPrice:        it.TotalPrice.decimal(),
		PlatformFee:       it.PlatformFee.decimal(),
		CookProfit:        it.CookProfit.decimal(),
		PaymentMethod:     entities.PaymentMethod(it.PaymentMethod),
		Location:          entities.Location{Latitude: it.Latitude, Longitude: it.Longitude},
		Status:            entities.OrderStatus(it.Status),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		AcceptedAt:        parseTimePtr(it.AcceptedAt),
		CompletedAt:       parseTimePtr(it.CompletedAt),
		CancelledAt:       parseTimePtr(it.CancelledAt),
		PaymentState:      entities.PaymentState(it.PaymentState),
		PaymentAttempt:    it.PaymentAttempt,
		PaymentLeaseUntil: parseTimePtr(it.PaymentLease),
	}
}
