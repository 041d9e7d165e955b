package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	SQLite   DBType = "sqlite"
	Mongo    DBType = "mongo"
	DynamoDB DBType = "dynamodb"
)

// DB is implemented by every store connector under db/.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
