package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ositopolar/fleet-console/internal/domain"
)

type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// NotificationLog mirrors fleet notifications into a DynamoDB table keyed
// by notificationId, with an equipmentId-timestamp index.
type NotificationLog struct {
	svc   dynamoAPI
	table string
}

func NewNotificationLog(ctx context.Context, region, table string) (*NotificationLog, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &NotificationLog{svc: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// notificationItem is the DynamoDB shape of a notification.
type notificationItem struct {
	NotificationID string `dynamodbav:"notificationId"`
	EquipmentID    string `dynamodbav:"equipmentId"`
	UserID         string `dynamodbav:"userId"`
	Timestamp      int64  `dynamodbav:"timestamp"`
	Type           string `dynamodbav:"type"`
	Title          string `dynamodbav:"title"`
	Description    string `dynamodbav:"description"`
	Status         string `dynamodbav:"status"`
}

func (l *NotificationLog) Record(ctx context.Context, n domain.Notification) error {
	ts := time.Now().Unix()
	if t, ok := domain.ParseTimestamp(n.Timestamp); ok {
		ts = t.Unix()
	}
	item, err := attributevalue.MarshalMap(notificationItem{
		NotificationID: n.ID,
		EquipmentID:    n.EquipmentID,
		UserID:         n.UserID,
		Timestamp:      ts,
		Type:           n.Type,
		Title:          n.Title,
		Description:    n.Description,
		Status:         n.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	_, err = l.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put notification in DynamoDB: %w", err)
	}
	return nil
}

func (l *NotificationLog) MarkRead(ctx context.Context, id string) error {
	_, err := l.svc.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(l.table),
		Key: map[string]types.AttributeValue{
			"notificationId": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: aws.String("SET #st = :read, readAt = :time"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberS{Value: domain.NotificationRead},
			":time": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// ForEquipment returns the logged notifications of one equipment, newest
// first.
func (l *NotificationLog) ForEquipment(ctx context.Context, equipmentID string) ([]domain.Notification, error) {
	result, err := l.svc.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		IndexName:              aws.String("equipmentId-timestamp-index"),
		KeyConditionExpression: aws.String("equipmentId = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: equipmentID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	var items []notificationItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}
	out := make([]domain.Notification, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Notification{
			ID:          it.NotificationID,
			Title:       it.Title,
			Description: it.Description,
			Status:      it.Status,
			Timestamp:   time.Unix(it.Timestamp, 0).UTC().Format(time.RFC3339),
			UserID:      it.UserID,
			EquipmentID: it.EquipmentID,
			Type:        it.Type,
		})
	}
	return out, nil
}
