package audit

import (
	"context"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAuditEntries),
	}
}

func (repo *AuditMongoRepository) InsertEntry(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = utils.GenerateSessionID()
	}
	_, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// FindEntriesByLetterID returns the journal of one letter, oldest first.
func (repo *AuditMongoRepository) FindEntriesByLetterID(ctx context.Context, letterID string) ([]models.AuditEntry, error) {
	entries := []models.AuditEntry{}
	findOptions := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"letter_id": letterID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &entries)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, nil
}

func (repo *AuditMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "letter_id", Value: 1}, {Key: "occurred_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "action", Value: 1}},
		},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionAuditEntries)
	}
	return nil
}
