package repository

import (
	"context"
	"errors"
	"time"

	"employeemanagement/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	employeeCollection = "employee_details"
	counterCollection  = "counters"
)

// MongoEmployeeRepo stores employees as documents keyed by an integer _id.
// Ids come from a counter document so they are monotonic and never reused.
type MongoEmployeeRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoEmployeeRepo(db *mongo.Client, database string) *MongoEmployeeRepo {
	return &MongoEmployeeRepo{DB: db, Database: database}
}

func (r *MongoEmployeeRepo) collection(name string) *mongo.Collection {
	return r.DB.Database(r.Database).Collection(name)
}

func (r *MongoEmployeeRepo) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.collection(counterCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": employeeCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (r *MongoEmployeeRepo) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := r.collection(employeeCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Employee{}
	for cur.Next(ctx) {
		e := &models.Employee{}
		if err := cur.Decode(e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

func (r *MongoEmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	e.ID = id
	_, err = r.collection(employeeCollection).InsertOne(ctx, e)
	return err
}

func (r *MongoEmployeeRepo) GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	e := &models.Employee{}
	err := r.collection(employeeCollection).FindOne(ctx, bson.M{"_id": id}).Decode(e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// UpdateEmployee replaces the whole document atomically.
func (r *MongoEmployeeRepo) UpdateEmployee(ctx context.Context, e *models.Employee) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.collection(employeeCollection).ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoEmployeeRepo) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.collection(employeeCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

var _ EmployeeRepository = (*MongoEmployeeRepo)(nil)
