package vaultRepo

import (
	"context"
	"fmt"
	"time"

	"lendvault/database"
	"lendvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequirementRepo implements RequirementRepository using MongoDB.
type MongoRequirementRepo struct {
	coll *mongo.Collection
}

// NewMongoRequirementRepo creates a new RequirementRepository backed by MongoDB.
func NewMongoRequirementRepo() RequirementRepository {
	coll := database.Collection("required_documents")
	repo := &MongoRequirementRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequirementRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tag", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByCode retrieves a definition by its code.
func (r *MongoRequirementRepo) GetByCode(code string) (*models.RequiredDocument, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.RequiredDocument
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch requirement %s: %w", code, err)
	}
	return &doc, nil
}

// ListCore retrieves the fixed core definitions.
func (r *MongoRequirementRepo) ListCore() ([]models.RequiredDocument, error) {
	return r.list(bson.M{"core": true})
}

// ListAll retrieves every definition.
func (r *MongoRequirementRepo) ListAll() ([]models.RequiredDocument, error) {
	return r.list(bson.M{})
}

func (r *MongoRequirementRepo) list(filter bson.M) ([]models.RequiredDocument, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve requirements: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.RequiredDocument
	for cursor.Next(ctx) {
		var d models.RequiredDocument
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode requirement: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Create inserts a new definition.
func (r *MongoRequirementRepo) Create(doc *models.RequiredDocument) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create requirement %s: %w", doc.Code, err)
	}
	return nil
}

// UpdateLabel changes the display label of a definition.
func (r *MongoRequirementRepo) UpdateLabel(code, label string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"label": label, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		return fmt.Errorf("failed to update requirement %s: %w", code, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("requirement %s not found", code)
	}
	return nil
}

// Count returns the number of stored definitions.
func (r *MongoRequirementRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count requirements: %w", err)
	}
	return n, nil
}
