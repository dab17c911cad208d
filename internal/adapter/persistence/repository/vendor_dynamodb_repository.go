package repository

import (
	"context"
	"time"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultVendorsTableName = "vendors"

type vendorItem struct {
	ID              string `dynamodbav:"id"`
	BusinessName    string `dynamodbav:"business_name"`
	Email           string `dynamodbav:"email"`
	Status          string `dynamodbav:"status"`
	RejectionReason string `dynamodbav:"rejection_reason,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
}

// VendorDynamoRepository reads vendor records for identity resolution.
// Writes go through the registration service, never through this panel core.
//
// Table requirements:
//   - PK: id (string)

type VendorDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IVendorRepository = (*VendorDynamoRepository)(nil)

func NewVendorDynamoRepository(ddb *dynamodb.Client) *VendorDynamoRepository {
	return &VendorDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("VENDORS_TABLE", defaultVendorsTableName),
	}
}

func (r *VendorDynamoRepository) GetByID(ctx context.Context, id string) (entities.Vendor, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Vendor{}, err
	}
	if len(out.Item) == 0 {
		return entities.Vendor{}, nil
	}

	var it vendorItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Vendor{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Vendor{
		ID:              it.ID,
		BusinessName:    it.BusinessName,
		Email:           it.Email,
		Status:          entities.VendorStatus(it.Status),
		RejectionReason: it.RejectionReason,
		CreatedAt:       createdAt,
	}, nil
}
