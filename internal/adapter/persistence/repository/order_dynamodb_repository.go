package repository

import (
	"context"
	"errors"
	"time"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	ordersVendorIndexName  = "vendor_id-created_at-index"
)

type customerInfoItem struct {
	Name    string `dynamodbav:"name"`
	Phone   string `dynamodbav:"phone"`
	Email   string `dynamodbav:"email,omitempty"`
	Address string `dynamodbav:"address"`
}

type orderLineItem struct {
	ProductID  string  `dynamodbav:"product_id"`
	Name       string  `dynamodbav:"name"`
	Unit       string  `dynamodbav:"unit"`
	Quantity   int     `dynamodbav:"quantity"`
	UnitPrice  float64 `dynamodbav:"unit_price"`
	TotalPrice float64 `dynamodbav:"total_price"`
}

type statusChangeItem struct {
	Status    string `dynamodbav:"status"`
	ChangedAt string `dynamodbav:"changed_at"`
	Note      string `dynamodbav:"note,omitempty"`
}

type orderItem struct {
	ID            string             `dynamodbav:"id"`
	OrderNumber   string             `dynamodbav:"order_number"`
	VendorID      string             `dynamodbav:"vendor_id"`
	CustomerInfo  customerInfoItem   `dynamodbav:"customer_info"`
	Items         []orderLineItem    `dynamodbav:"items"`
	Subtotal      float64            `dynamodbav:"subtotal"`
	DeliveryFee   float64            `dynamodbav:"delivery_fee"`
	Total         float64            `dynamodbav:"total"`
	PaymentStatus string             `dynamodbav:"payment_status"`
	Status        string             `dynamodbav:"status"`
	StatusHistory []statusChangeItem `dynamodbav:"status_history"`
	Notes         string             `dynamodbav:"notes,omitempty"`
	Version       int64              `dynamodbav:"version"`
	CreatedAt     string             `dynamodbav:"created_at"`
	UpdatedAt     string             `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI vendor_id-created_at-index: vendor_id (HASH), created_at (RANGE)
//
// created_at is stored as RFC3339Nano in UTC, so lexicographic range
// conditions on the sort key match chronological order.

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
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
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
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

func (r *OrderDynamoRepository) ListByVendor(ctx context.Context, vendorID string, f interfaces.OrderFilter) ([]entities.Order, error) {
	keyExpr := "#vendor_id = :vendor_id"
	names := map[string]string{"#vendor_id": "vendor_id"}
	values := map[string]types.AttributeValue{
		":vendor_id": &types.AttributeValueMemberS{Value: vendorID},
	}

	switch {
	case f.From != nil && f.To != nil:
		keyExpr += " AND #created_at BETWEEN :from AND :to"
		names["#created_at"] = "created_at"
		values[":from"] = &types.AttributeValueMemberS{Value: formatTime(*f.From)}
		values[":to"] = &types.AttributeValueMemberS{Value: formatTime(*f.To)}
	case f.From != nil:
		keyExpr += " AND #created_at >= :from"
		names["#created_at"] = "created_at"
		values[":from"] = &types.AttributeValueMemberS{Value: formatTime(*f.From)}
	case f.To != nil:
		keyExpr += " AND #created_at <= :to"
		names["#created_at"] = "created_at"
		values[":to"] = &types.AttributeValueMemberS{Value: formatTime(*f.To)}
	}

	var filterParts []string
	if f.Status != nil {
		filterParts = append(filterParts, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(*f.Status)}
	}
	if f.PaymentStatus != nil {
		filterParts = append(filterParts, "#payment_status = :payment_status")
		names["#payment_status"] = "payment_status"
		values[":payment_status"] = &types.AttributeValueMemberS{Value: string(*f.PaymentStatus)}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(ordersVendorIndexName),
		KeyConditionExpression:    aws.String(keyExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(false),
	}
	if len(filterParts) > 0 {
		input.FilterExpression = aws.String(joinAnd(filterParts))
	}

	var orders []entities.Order
	for {
		out, err := r.ddb.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return orders, nil
}

func (r *OrderDynamoRepository) ListRecent(ctx context.Context, vendorID string, limit int32) ([]entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(ordersVendorIndexName),
		KeyConditionExpression:   aws.String("#vendor_id = :vendor_id"),
		ExpressionAttributeNames: map[string]string{"#vendor_id": "vendor_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vendor_id": &types.AttributeValueMemberS{Value: vendorID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}

	orders := make([]entities.Order, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		orders = append(orders, fromOrderItem(it))
	}
	return orders, nil
}

func (r *OrderDynamoRepository) CountByStatus(ctx context.Context, vendorID string, status entities.OrderStatus) (int64, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersVendorIndexName),
		KeyConditionExpression: aws.String("#vendor_id = :vendor_id"),
		FilterExpression:       aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#vendor_id": "vendor_id",
			"#status":    "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vendor_id": &types.AttributeValueMemberS{Value: vendorID},
			":status":    &types.AttributeValueMemberS{Value: string(status)},
		},
		Select: types.SelectCount,
	}

	var total int64
	for {
		out, err := r.ddb.Query(ctx, input)
		if err != nil {
			return 0, err
		}
		total += int64(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return total, nil
}

// UpdateStatus appends one history entry and bumps the version, conditioned
// on the version the caller read. A condition miss (item gone or modified
// concurrently) returns a zero-value Order with a nil error.
func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, change entities.StatusChange, expectedVersion int64) (entities.Order, error) {
	changeList, err := attributevalue.MarshalList([]statusChangeItem{toStatusChangeItem(change)})
	if err != nil {
		return entities.Order{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		UpdateExpression:    aws.String("SET #status = :status, #status_history = list_append(#status_history, :change), #version = :next, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#status":         "status",
			"#status_history": "status_history",
			"#version":        "version",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected":   numberValue(expectedVersion),
			":next":       numberValue(expectedVersion + 1),
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":change":     &types.AttributeValueMemberL{Value: changeList},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	items := make([]orderLineItem, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, orderLineItem{
			ProductID:  li.ProductID,
			Name:       li.Name,
			Unit:       li.Unit,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			TotalPrice: li.TotalPrice,
		})
	}
	history := make([]statusChangeItem, 0, len(o.StatusHistory))
	for _, sc := range o.StatusHistory {
		history = append(history, toStatusChangeItem(sc))
	}
	return orderItem{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		VendorID:    o.VendorID,
		CustomerInfo: customerInfoItem{
			Name:    o.CustomerInfo.Name,
			Phone:   o.CustomerInfo.Phone,
			Email:   o.CustomerInfo.Email,
			Address: o.CustomerInfo.Address,
		},
		Items:         items,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		PaymentStatus: string(o.PaymentStatus),
		Status:        string(o.Status),
		StatusHistory: history,
		Notes:         o.Notes,
		Version:       o.Version,
		CreatedAt:     formatTime(o.CreatedAt),
		UpdatedAt:     formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	items := make([]entities.OrderItem, 0, len(it.Items))
	for _, li := range it.Items {
		items = append(items, entities.OrderItem{
			ProductID:  li.ProductID,
			Name:       li.Name,
			Unit:       li.Unit,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			TotalPrice: li.TotalPrice,
		})
	}
	history := make([]entities.StatusChange, 0, len(it.StatusHistory))
	for _, sc := range it.StatusHistory {
		changedAt, _ := time.Parse(time.RFC3339Nano, sc.ChangedAt)
		history = append(history, entities.StatusChange{
			Status:    entities.OrderStatus(sc.Status),
			ChangedAt: changedAt,
			Note:      sc.Note,
		})
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Order{
		ID:          it.ID,
		OrderNumber: it.OrderNumber,
		VendorID:    it.VendorID,
		CustomerInfo: entities.CustomerInfo{
			Name:    it.CustomerInfo.Name,
			Phone:   it.CustomerInfo.Phone,
			Email:   it.CustomerInfo.Email,
			Address: it.CustomerInfo.Address,
		},
		Items:         items,
		Subtotal:      it.Subtotal,
		DeliveryFee:   it.DeliveryFee,
		Total:         it.Total,
		PaymentStatus: entities.PaymentStatus(it.PaymentStatus),
		Status:        entities.OrderStatus(it.Status),
		StatusHistory: history,
		Notes:         it.Notes,
		Version:       it.Version,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

func toStatusChangeItem(sc entities.StatusChange) statusChangeItem {
	return statusChangeItem{
		Status:    string(sc.Status),
		ChangedAt: formatTime(sc.ChangedAt),
		Note:      sc.Note,
	}
}
