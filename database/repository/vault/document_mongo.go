package vaultRepo

import (
	"fmt"
	"time"

	"lendvault/database"
	"lendvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClientDocumentRepo implements ClientDocumentRepository using MongoDB.
type MongoClientDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoClientDocumentRepo creates a new ClientDocumentRepository backed by MongoDB.
func NewMongoClientDocumentRepo() ClientDocumentRepository {
	coll := database.Collection("client_documents")
	repo := &MongoClientDocumentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoClientDocumentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUserAndCode retrieves the row joining a user to a requirement.
func (r *MongoClientDocumentRepo) GetByUserAndCode(userID, code string) (*models.ClientDocument, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.ClientDocument
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "code": code}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client document %s/%s: %w", userID, code, err)
	}
	return &doc, nil
}

// ListByUser retrieves every row for a user.
func (r *MongoClientDocumentRepo) ListByUser(userID string) ([]models.ClientDocument, error) {
	return r.list(bson.M{"user_id": userID})
}

// ListActiveDynamicByUser retrieves the user's active dynamic rows.
func (r *MongoClientDocumentRepo) ListActiveDynamicByUser(userID string) ([]models.ClientDocument, error) {
	return r.list(bson.M{"user_id": userID, "dynamic": true, "active": true})
}

func (r *MongoClientDocumentRepo) list(filter bson.M) ([]models.ClientDocument, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve client documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.ClientDocument
	for cursor.Next(ctx) {
		var d models.ClientDocument
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode client document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Create inserts a new row.
func (r *MongoClientDocumentRepo) Create(doc *models.ClientDocument) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create client document: %w", err)
	}
	return nil
}

// SetActive flips the activation flag, stamping DeactivatedAt on deactivation.
func (r *MongoClientDocumentRepo) SetActive(id string, active bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{"active": active, "updated_at": now}
	update := bson.M{"$set": set}
	if active {
		update["$unset"] = bson.M{"deactivated_at": ""}
	} else {
		set["deactivated_at"] = now
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update client document %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client document %s not found", id)
	}
	return nil
}

// MarkUploaded records a completed upload on the row.
func (r *MongoClientDocumentRepo) MarkUploaded(id, storagePublicID, fileName string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":            models.DocumentStatusUploaded,
		"storage_public_id": storagePublicID,
		"file_name":         fileName,
		"uploaded_at":       now,
		"updated_at":        now,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark client document %s uploaded: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client document %s not found", id)
	}
	return nil
}
