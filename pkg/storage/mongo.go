package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStorage keeps blobs as documents in a MongoDB collection. URLs point
// at the application's image-serving endpoint since the database cannot
// serve HTTP itself.
type MongoStorage struct {
	collection *mongo.Collection
	baseURL    string
}

type blobDocument struct {
	Key         string    `bson:"key"`
	Data        []byte    `bson:"data"`
	ContentType string    `bson:"content_type"`
	Size        int64     `bson:"size"`
	CreatedAt   time.Time `bson:"created_at"`
}

func NewMongoStorage(db *mongo.Database, collection, baseURL string) (*MongoStorage, error) {
	coll := db.Collection(collection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob index: %w", err)
	}

	return &MongoStorage{
		collection: coll,
		baseURL:    baseURL,
	}, nil
}

func (m *MongoStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	data, err := io.ReadAll(request.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	doc := blobDocument{
		Key:         request.Key,
		Data:        data,
		ContentType: request.ContentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  fmt.Sprintf("%s/api/v1/images/%s", m.baseURL, request.Key),
		Size: doc.Size,
	}, nil
}

func (m *MongoStorage) Download(ctx context.Context, key string) (*DownloadResponse, error) {
	var doc blobDocument
	err := m.collection.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to load blob: %w", err)
	}

	return &DownloadResponse{
		Reader:      io.NopCloser(bytes.NewReader(doc.Data)),
		Size:        doc.Size,
		ContentType: doc.ContentType,
	}, nil
}

func (m *MongoStorage) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
