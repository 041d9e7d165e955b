package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"employeemanagement/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// counterItemID is the reserved key of the item holding the id sequence.
const counterItemID = 0

// DynamoEmployeeRepo keeps employees in a table keyed by a numeric "id".
// The id sequence lives in the same table under counterItemID.
type DynamoEmployeeRepo struct {
	Client *dynamodb.Client
	Table  string
}

func NewDynamoEmployeeRepo(client *dynamodb.Client, table string) *DynamoEmployeeRepo {
	return &DynamoEmployeeRepo{Client: client, Table: table}
}

func idKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

func (r *DynamoEmployeeRepo) nextID(ctx context.Context) (int64, error) {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Add(expression.Name("seq"), expression.Value(1))).
		Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build counter expression: %w", err)
	}

	out, err := r.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.Table),
		Key:                       idKey(counterItemID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance id counter: %w", err)
	}

	var seq int64
	if err := attributevalue.Unmarshal(out.Attributes["seq"], &seq); err != nil {
		return 0, fmt.Errorf("failed to read id counter: %w", err)
	}
	return seq, nil
}

func (r *DynamoEmployeeRepo) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("id").GreaterThan(expression.Value(counterItemID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan filter: %w", err)
	}

	out := []*models.Employee{}
	pages := dynamodb.NewScanPaginator(r.Client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.Table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan DynamoDB table: %w", err)
		}
		var batch []*models.Employee
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal employee items: %w", err)
		}
		out = append(out, batch...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DynamoEmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	e.ID = id

	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("failed to marshal employee item: %w", err)
	}
	_, err = r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}

func (r *DynamoEmployeeRepo) GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	if id == counterItemID {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := r.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.Table),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	e := &models.Employee{}
	if err := attributevalue.UnmarshalMap(out.Item, e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee item: %w", err)
	}
	return e, nil
}

// UpdateEmployee replaces the item only if it still exists.
func (r *DynamoEmployeeRepo) UpdateEmployee(ctx context.Context, e *models.Employee) (bool, error) {
	if e.ID == counterItemID {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return false, fmt.Errorf("failed to marshal employee item: %w", err)
	}
	_, err = r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var failed *types.ConditionalCheckFailedException
		if errors.As(err, &failed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update item in DynamoDB: %w", err)
	}
	return true, nil
}

func (r *DynamoEmployeeRepo) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	if id == counterItemID {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := r.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.Table),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete item from DynamoDB: %w", err)
	}
	return len(out.Attributes) > 0, nil
}

var _ EmployeeRepository = (*DynamoEmployeeRepo)(nil)
