package repository

import (
	"context"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProductsTableName = "products"
	productsVendorIndexName  = "vendor_id-index"
)

// ProductStatsDynamoRepository exposes the three catalog counts the dashboard
// needs. Catalog CRUD itself is owned by the product service; this repository
// only counts.
//
// Table requirements:
//   - GSI vendor_id-index: vendor_id (HASH)
//   - Items carry status (string), stock and min_stock_threshold (numbers).

type ProductStatsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductStatsRepository = (*ProductStatsDynamoRepository)(nil)

func NewProductStatsDynamoRepository(ddb *dynamodb.Client) *ProductStatsDynamoRepository {
	return &ProductStatsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

func (r *ProductStatsDynamoRepository) GetStats(ctx context.Context, vendorID string) (entities.ProductStats, error) {
	total, err := r.count(ctx, vendorID, "", nil, nil)
	if err != nil {
		return entities.ProductStats{}, err
	}

	active, err := r.count(ctx, vendorID,
		"#status = :active",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{":active": &types.AttributeValueMemberS{Value: "active"}},
	)
	if err != nil {
		return entities.ProductStats{}, err
	}

	lowStock, err := r.count(ctx, vendorID,
		"#stock <= #min_stock_threshold",
		map[string]string{"#stock": "stock", "#min_stock_threshold": "min_stock_threshold"},
		nil,
	)
	if err != nil {
		return entities.ProductStats{}, err
	}

	return entities.ProductStats{Total: total, Active: active, LowStock: lowStock}, nil
}

func (r *ProductStatsDynamoRepository) count(
	ctx context.Context,
	vendorID string,
	filter string,
	filterNames map[string]string,
	filterValues map[string]types.AttributeValue,
) (int64, error) {
	names := mergeNames(filterNames, map[string]string{"#vendor_id": "vendor_id"})
	values := map[string]types.AttributeValue{
		":vendor_id": &types.AttributeValueMemberS{Value: vendorID},
	}
	for k, v := range filterValues {
		values[k] = v
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(productsVendorIndexName),
		KeyConditionExpression:    aws.String("#vendor_id = :vendor_id"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		Select:                    types.SelectCount,
	}
	if filter != "" {
		input.FilterExpression = aws.String(filter)
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
