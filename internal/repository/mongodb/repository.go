package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

const (
	submissionsCollection = "submissions"
	summariesCollection   = "quality_summaries"
)

// Repository defines the journal storage used by the submission and reporting services.
type Repository interface {
	SaveSubmission(ctx context.Context, record models.SubmissionRecord) error
	SaveQualitySummary(ctx context.Context, summary models.QualitySummary) error
	Close(ctx context.Context) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveSubmission journals one submit attempt.
func (r *MongoDBRepository) SaveSubmission(ctx context.Context, record models.SubmissionRecord) error {
	doc, err := submissionDocument(record)
	if err != nil {
		return err
	}
	collection := r.client.Database(r.dbName).Collection(submissionsCollection)
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert submission record: %w", err)
	}
	return nil
}

// SaveQualitySummary stores a computed quality summary.
func (r *MongoDBRepository) SaveQualitySummary(ctx context.Context, summary models.QualitySummary) error {
	doc, err := summaryDocument(summary)
	if err != nil {
		return err
	}
	collection := r.client.Database(r.dbName).Collection(summariesCollection)
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert quality summary: %w", err)
	}
	return nil
}

// submissionDocument encodes a journal entry into the stored document layout.
func submissionDocument(record models.SubmissionRecord) (bson.Raw, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode submission record: %w", err)
	}
	return raw, nil
}

func summaryDocument(summary models.QualitySummary) (bson.Raw, error) {
	raw, err := bson.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode quality summary: %w", err)
	}
	return raw, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// NopRepository discards everything. It stands in when no MongoDB URI is configured.
type NopRepository struct{}

func (NopRepository) SaveSubmission(context.Context, models.SubmissionRecord) error { return nil }

func (NopRepository) SaveQualitySummary(context.Context, models.QualitySummary) error { return nil }

func (NopRepository) Close(context.Context) error { return nil }
