package database

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
)

func TestTableSpec_CreateInput(t *testing.T) {
	t.Setenv("ORDERS_TABLE", "orders-test")

	in := Tables[0].createInput()
	if aws.ToString(in.TableName) != "orders-test" {
		t.Fatalf("expected orders-test, got %s", aws.ToString(in.TableName))
	}
	if len(in.GlobalSecondaryIndexes) != 3 {
		t.Fatalf("expected 3 indexes, got %d", len(in.GlobalSecondaryIndexes))
	}
	// id, status, client_id, cook_id, created_at
	if len(in.AttributeDefinitions) != 5 {
		t.Fatalf("expected 5 attribute definitions, got %d", len(in.AttributeDefinitions))
	}
}

func TestTableSpec_CompositeKey(t *testing.T) {
	for _, tbl := range Tables {
		if tbl.name != "messages" {
			continue
		}
		in := tbl.createInput()
		if len(in.KeySchema) != 2 || aws.ToString(in.KeySchema[1].AttributeName) != "sort_key" {
			t.Fatalf("unexpected key schema %+v", in.KeySchema)
		}
		return
	}
	t.Fatal("messages table not declared")
}
