package repository

import (
	"context"
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
	defaultWithdrawalsTableName = "withdrawals"
	withdrawalsUserIDIndex      = "user_id-index"
)

type withdrawalItem struct {
	ID        string `dynamodbav:"id"`
	UserID    string `dynamodbav:"user_id"`
	Amount    money  `dynamodbav:"amount"`
	PixKey    string `dynamodbav:"pix_key"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"created_at"`
	PaidAt    string `dynamodbav:"paid_at,omitempty"`
}

// WithdrawalDynamoRepository persists Withdrawal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
type WithdrawalDynamoRepository struct {
	ddb        *dynamodb.Client
	tableName  string
	usersTable string
}

var _ interfaces.IWithdrawalRepository = (*WithdrawalDynamoRepository)(nil)

func NewWithdrawalDynamoRepository(ddb *dynamodb.Client) *WithdrawalDynamoRepository {
	return &WithdrawalDynamoRepository{
		ddb:        ddb,
		tableName:  getenvDefault("WITHDRAWALS_TABLE", defaultWithdrawalsTableName),
		usersTable: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

// CreateAndDebit zeroes the wallet and records w in one transaction, provided
// the balance is still observedBalance.
func (r *WithdrawalDynamoRepository) CreateAndDebit(ctx context.Context, w entities.Withdrawal, observedBalance decimal.Decimal) (bool, error) {
	av, err := attributevalue.MarshalMap(toWithdrawalItem(w))
	if err != nil {
		return false, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.usersTable),
				Key:                 idKey(w.UserID),
				ConditionExpression: aws.String("#wallet_balance = :observed"),
				UpdateExpression:    aws.String("SET #wallet_balance = :zero, #updated_at = :now"),
				ExpressionAttributeNames: map[string]string{
					"#wallet_balance": "wallet_balance",
					"#updated_at":     "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":observed": numberValue(observedBalance),
					":zero":     numberValue(decimal.Zero),
					":now":      stringValue(formatTime(time.Now())),
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
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *WithdrawalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Withdrawal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Withdrawal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Withdrawal{}, nil
	}

	var it withdrawalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Withdrawal{}, err
	}
	return fromWithdrawalItem(it), nil
}

func (r *WithdrawalDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Withdrawal, error) {
	items := make([]entities.Withdrawal, 0)
	err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(withdrawalsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": stringValue(userID),
		},
	}, func(it withdrawalItem) error {
		items = append(items, fromWithdrawalItem(it))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *WithdrawalDynamoRepository) MarkPaid(ctx context.Context, id string) (entities.Withdrawal, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("#status = :pending"),
		UpdateExpression:    aws.String("SET #status = :paid, #paid_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#status":  "status",
			"#paid_at": "paid_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": stringValue(string(entities.WithdrawalStatusPending)),
			":paid":    stringValue(string(entities.WithdrawalStatusPaid)),
			":now":     stringValue(formatTime(time.Now())),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Withdrawal{}, false, nil
		}
		return entities.Withdrawal{}, false, err
	}
	var it withdrawalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Withdrawal{}, false, err
	}
	return fromWithdrawalItem(it), true, nil
}

func toWithdrawalItem(w entities.Withdrawal) withdrawalItem {
	return withdrawalItem{
		ID:        w.ID,
		UserID:    w.UserID,
		Amount:    money(w.Amount),
		PixKey:    w.PixKey,
		Status:    string(w.Status),
		CreatedAt: formatTime(w.CreatedAt),
		PaidAt:    formatTimePtr(w.PaidAt),
	}
}

func fromWithdrawalItem(it withdrawalItem) entities.Withdrawal {
	return entities.Withdrawal{
		ID:        it.ID,
		UserID:    it.UserID,
		Amount:    it.Amount.decimal(),
		PixKey:    it.PixKey,
		Status:    entities.WithdrawalStatus(it.Status),
		CreatedAt: parseTime(it.CreatedAt),
		PaidAt:    parseTimePtr(it.PaidAt),
	}
}
