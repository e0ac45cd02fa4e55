package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

// DynamoAPI is the subset of the DynamoDB client used by the adapter.
type DynamoAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// emailGuardKeyPrefix namespaces uniqueness-guard items in the users table.
// A guard item's partition key is "EMAIL#<email>"; it carries no email
// attribute, so the email index never surfaces it.
const emailGuardKeyPrefix = "EMAIL#"

// Dynamo is the DynamoDB-backed Directory. Lookups go through a secondary
// index keyed by email. The table's partition key is userId, so a condition
// on the user item alone cannot see other users' emails; inserts instead
// write the user item and an EMAIL#<email> guard item in one transaction,
// each conditional on its key being absent. A lost registration race cancels
// the transaction and surfaces as a conflict.
type Dynamo struct {
	client     DynamoAPI
	table      string
	emailIndex string
}

func NewDynamo(client DynamoAPI, table, emailIndex string) *Dynamo {
	return &Dynamo{client: client, table: table, emailIndex: emailIndex}
}

// dynamoUser is the item shape stored in the users table. createdAt is
// kept as an RFC3339 string, matching how existing records are stored.
type dynamoUser struct {
	UserID    string `dynamodbav:"userId"`
	Email     string `dynamodbav:"email"`
	Password  string `dynamodbav:"password"`
	Role      string `dynamodbav:"role"`
	FullName  string `dynamodbav:"fullName"`
	CreatedAt string `dynamodbav:"createdAt"`
}

func (d *Dynamo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(d.table),
		IndexName:              aws.String(d.emailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb query error: %w", mapDynamoError(err))
	}

	if len(out.Items) == 0 {
		return nil, common.ErrorNotFound
	}

	var item dynamoUser
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, fmt.Errorf("unmarshaling user item: %w", err)
	}

	return item.toModel()
}

func (d *Dynamo) Insert(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(dynamoUser{
		UserID:    user.ID,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Role:      string(user.Role),
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshaling user item: %w", err)
	}

	guard := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: emailGuardKeyPrefix + user.Email},
	}

	_, err = d.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(d.table),
					Item:                item,
					ConditionExpression: aws.String("attribute_not_exists(userId)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(d.table),
					Item:                guard,
					ConditionExpression: aws.String("attribute_not_exists(userId)"),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb transact write error: %w", mapDynamoError(err))
	}

	return nil
}

func (u dynamoUser) toModel() (*models.User, error) {
	createdAt, err := time.Parse(time.RFC3339, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing createdAt %q: %w", u.CreatedAt, err)
	}

	return &models.User{
		ID:           u.UserID,
		Email:        u.Email,
		PasswordHash: u.Password,
		Role:         models.Role(u.Role),
		FullName:     u.FullName,
		CreatedAt:    createdAt,
	}, nil
}

// mapDynamoError translates store-specific failures into the shared
// taxonomy while keeping the original error in the chain.
func mapDynamoError(err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, err.Error())
	}

	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, err.Error())
			}
		}
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDeniedException" {
		return fmt.Errorf("%w: %s", common.ErrorAccessDenied, err.Error())
	}

	return err
}
