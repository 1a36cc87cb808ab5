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

const defaultUsersTableName = "users"

type userItem struct {
	ID            string  `dynamodbav:"id"`
	Type          string  `dynamodbav:"user_type"`
	Name          string  `dynamodbav:"name"`
	Email         string  `dynamodbav:"email"`
	Phone         string  `dynamodbav:"phone"`
	WalletBalance money   `dynamodbav:"wallet_balance"`
	PixKey        string  `dynamodbav:"pix_key"`
	CookLevel     string  `dynamodbav:"cook_level"`
	IsActive      bool    `dynamodbav:"is_active"`
	Rating        float64 `dynamodbav:"rating"`
	CreatedAt     string  `dynamodbav:"created_at"`
	UpdatedAt     string  `dynamodbav:"updated_at"`
}

// UserDynamoRepository persists User entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string), the identity provider subject
//
// wallet_balance is only written by the order completion and withdrawal
// transactions.
type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

// SaveProfile creates the user or updates its contact fields. matched is false
// when the stored user_type differs from u.Type.
func (r *UserDynamoRepository) SaveProfile(ctx context.Context, u entities.User) (entities.User, bool, error) {
	now := formatTime(time.Now())
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(u.ID),
		ConditionExpression: aws.String("attribute_not_exists(#id) OR #user_type = :user_type"),
		UpdateExpression: aws.String("SET #user_type = :user_type, #name = :name, #email = :email, #phone = :phone, " +
			"#pix_key = :pix_key, #cook_level = :cook_level, #updated_at = :now, " +
			"#created_at = if_not_exists(#created_at, :now), " +
			"#wallet_balance = if_not_exists(#wallet_balance, :zero), " +
			"#is_active = if_not_exists(#is_active, :active), " +
			"#rating = if_not_exists(#rating, :zero)"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#user_type":      "user_type",
			"#name":           "name",
			"#email":          "email",
			"#phone":          "phone",
			"#pix_key":        "pix_key",
			"#cook_level":     "cook_level",
			"#updated_at":     "updated_at",
			"#created_at":     "created_at",
			"#wallet_balance": "wallet_balance",
			"#is_active":      "is_active",
			"#rating":         "rating",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_type":  stringValue(string(u.Type)),
			":name":       stringValue(u.Name),
			":email":      stringValue(u.Email),
			":phone":      stringValue(u.Phone),
			":pix_key":    stringValue(u.PixKey),
			":cook_level": stringValue(string(u.CookLevel)),
			":now":        stringValue(now),
			":zero":       numberValue(decimal.Zero),
			":active":     &types.AttributeValueMemberBOOL{Value: true},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, false, err
	}
	return fromUserItem(it), true, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) SetActive(ctx context.Context, id string, active bool) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #is_active = :active, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#is_active":  "is_active",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: active},
			":now":    stringValue(formatTime(time.Now())),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:            it.ID,
		Type:          entities.UserType(it.Type),
		Name:          it.Name,
		Email:         it.Email,
		Phone:         it.Phone,
		WalletBalance: it.WalletBalance.decimal(),
		PixKey:        it.PixKey,
		CookLevel:     entities.PackageLevel(it.CookLevel),
		IsActive:      it.IsActive,
		Rating:        it.Rating,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
