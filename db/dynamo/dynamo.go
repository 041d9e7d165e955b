package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB connects to a real AWS endpoint, or to DynamoDB Local when
// Endpoint is set. Connect creates the table when it does not exist yet.
type DynamoDB struct {
	Client   *dynamodb.Client
	Ctx      context.Context
	Cancel   context.CancelFunc
	Table    string
	Region   string
	Endpoint string
}

func NewDynamoDB(table, region, endpoint string) *DynamoDB {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	return &DynamoDB{
		Ctx:      ctx,
		Cancel:   cancel,
		Table:    table,
		Region:   region,
		Endpoint: endpoint,
	}
}

func (d *DynamoDB) Connect() error {
	opts := []func(*config.LoadOptions) error{config.WithRegion(d.Region)}
	if d.Endpoint != "" {
		// DynamoDB Local accepts any static credentials.
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(d.Ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	d.Client = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if d.Endpoint != "" {
			o.BaseEndpoint = aws.String(d.Endpoint)
		}
	})
	return d.ensureTable()
}

func (d *DynamoDB) ensureTable() error {
	_, err := d.Client.DescribeTable(d.Ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.Table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table %s: %w", d.Table, err)
	}

	_, err = d.Client.CreateTable(d.Ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(d.Table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeN},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", d.Table, err)
	}
	waiter := dynamodb.NewTableExistsWaiter(d.Client)
	return waiter.Wait(d.Ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.Table)}, 20*time.Second)
}

// Disconnect releases the connect deadline; the SDK client holds no connection to close.
func (d *DynamoDB) Disconnect() error {
	d.Cancel()
	return nil
}

func (d *DynamoDB) GetContext() context.Context {
	return d.Ctx
}
