package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/example/toyshub/internal/domain/notification"
)

// DynamoNotifications implements notification.Store on a single DynamoDB
// table. The partition key groups one user's feed (or the shared admin
// feed); the sort key orders by creation time. GSI "by_id" resolves the
// id-addressed operations.
type DynamoNotifications struct {
	client    *dynamodb.Client
	tableName string
}

const (
	dynamoAdminScope = "ADMIN"
	dynamoIDIndex    = "by_id"
)

// dynamoNotification is the DynamoDB item shape. The full document rides
// along as a JSON string so the wire form stays identical across backends.
type dynamoNotification struct {
	Scope     string `dynamodbav:"scope"`
	SK        string `dynamodbav:"sk"`
	ID        string `dynamodbav:"id"`
	IsRead    bool   `dynamodbav:"is_read"`
	CreatedAt string `dynamodbav:"created_at"`
	Doc       string `dynamodbav:"doc"`
}

func NewDynamoNotifications(client *dynamodb.Client, tableName string) *DynamoNotifications {
	return &DynamoNotifications{client: client, tableName: tableName}
}

func scopeFor(n *notification.Notification) string {
	if n.IsAdmin {
		return dynamoAdminScope
	}
	return "USER#" + n.UserID
}

func (s *DynamoNotifications) Insert(ctx context.Context, n *notification.Notification) error {
	doc, err := json.Marshal(n)
	if err != nil {
		return err
	}

	item := dynamoNotification{
		Scope:     scopeFor(n),
		SK:        n.CreatedAt.UTC().Format(time.RFC3339Nano) + "#" + n.ID,
		ID:        n.ID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339Nano),
		Doc:       string(doc),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	return err
}

func (s *DynamoNotifications) ListByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	return s.listScope(ctx, "USER#"+userID)
}

func (s *DynamoNotifications) ListAdmin(ctx context.Context) ([]*notification.Notification, error) {
	return s.listScope(ctx, dynamoAdminScope)
}

func (s *DynamoNotifications) listScope(ctx context.Context, scope string) ([]*notification.Notification, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("scope = :scope"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":scope": &types.AttributeValueMemberS{Value: scope},
		},
		ScanIndexForward: aws.Bool(false), // newest first
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(out.Items))
	for _, raw := range out.Items {
		var item dynamoNotification
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, err
		}
		var n notification.Notification
		if err := json.Unmarshal([]byte(item.Doc), &n); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

func (s *DynamoNotifications) MarkRead(ctx context.Context, id string) error {
	item, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	var n notification.Notification
	if err := json.Unmarshal([]byte(item.Doc), &n); err != nil {
		return err
	}
	n.IsRead = true
	doc, err := json.Marshal(&n)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"scope": &types.AttributeValueMemberS{Value: item.Scope},
			"sk":    &types.AttributeValueMemberS{Value: item.SK},
		},
		UpdateExpression: aws.String("SET is_read = :read, doc = :doc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberBOOL{Value: true},
			":doc":  &types.AttributeValueMemberS{Value: string(doc)},
		},
	})
	return err
}

func (s *DynamoNotifications) Delete(ctx context.Context, id string) error {
	item, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"scope": &types.AttributeValueMemberS{Value: item.Scope},
			"sk":    &types.AttributeValueMemberS{Value: item.SK},
		},
	})
	return err
}

func (s *DynamoNotifications) findByID(ctx context.Context, id string) (*dynamoNotification, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(dynamoIDIndex),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, notification.ErrNotFound
	}
	var item dynamoNotification
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, err
	}
	return &item, nil
}

var _ notification.Store = (*DynamoNotifications)(nil)
