package database

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type tableSpec struct {
	envKey  string
	name    string
	hashKey string
	sortKey string
	indexes []indexSpec
}

type indexSpec struct {
	name    string
	hashKey string
	sortKey string
}

// Tables lists the schema the repositories expect. Names follow the same
// *_TABLE variables the repositories read.
var Tables = []tableSpec{
	{envKey: "ORDERS_TABLE", name: "orders", hashKey: "id", indexes: []indexSpec{
		{name: "status-index", hashKey: "status", sortKey: "created_at"},
		{name: "client_id-index", hashKey: "client_id", sortKey: "created_at"},
		{name: "cook_id-index", hashKey: "cook_id", sortKey: "created_at"},
	}},
	{envKey: "OFFERS_TABLE", name: "offers", hashKey: "id", indexes: []indexSpec{
		{name: "order_id-index", hashKey: "order_id", sortKey: "created_at"},
	}},
	{envKey: "USERS_TABLE", name: "users", hashKey: "id"},
	{envKey: "WITHDRAWALS_TABLE", name: "withdrawals", hashKey: "id", indexes: []indexSpec{
		{name: "user_id-index", hashKey: "user_id", sortKey: "created_at"},
	}},
	{envKey: "MESSAGES_TABLE", name: "messages", hashKey: "order_id", sortKey: "sort_key"},
	{envKey: "PAYMENTS_TABLE", name: "payments", hashKey: "id", indexes: []indexSpec{
		{name: "order_id-index", hashKey: "order_id"},
	}},
}

func (t tableSpec) tableName() string {
	if v := os.Getenv(t.envKey); v != "" {
		return v
	}
	return t.name
}

// EnsureTables creates the missing tables with on-demand billing. It is meant
// for DynamoDB Local; deployed tables are provisioned outside the service.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client) error {
	for _, t := range Tables {
		in := t.createInput()
		_, err := ddb.CreateTable(ctx, in)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			log.Printf("[database][dynamodb] create table failed table=%s err=%v", aws.ToString(in.TableName), err)
			return err
		}
		log.Printf("[database][dynamodb] table created table=%s", aws.ToString(in.TableName))
	}
	return nil
}

func (t tableSpec) createInput() *dynamodb.CreateTableInput {
	attrs := map[string]struct{}{}
	keySchema := func(hash, sort string) []types.KeySchemaElement {
		attrs[hash] = struct{}{}
		ks := []types.KeySchemaElement{{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash}}
		if sort != "" {
			attrs[sort] = struct{}{}
			ks = append(ks, types.KeySchemaElement{AttributeName: aws.String(sort), KeyType: types.KeyTypeRange})
		}
		return ks
	}

	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(t.tableName()),
		KeySchema:   keySchema(t.hashKey, t.sortKey),
		BillingMode: types.BillingModePayPerRequest,
	}
	for _, idx := range t.indexes {
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  keySchema(idx.hashKey, idx.sortKey),
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	for name := range attrs {
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}
	return in
}
