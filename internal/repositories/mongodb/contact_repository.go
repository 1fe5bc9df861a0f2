package mongodb

import (
	"context"
	"time"

	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) interfaces.ContactRepository {
	return &contactRepository{
		collection: db.Collection("contacts"),
	}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, contact); err != nil {
		return classifyError(err, "failed to create contact")
	}

	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classifyError(err, "failed to find contacts")
	}
	defer cursor.Close(ctx)

	var contacts []*models.Contact
	for cursor.Next(ctx) {
		var contact models.Contact
		if err := cursor.Decode(&contact); err != nil {
			return nil, classifyError(err, "failed to decode contact")
		}
		contacts = append(contacts, &contact)
	}

	if err := cursor.Err(); err != nil {
		return nil, classifyError(err, "failed to iterate contacts")
	}

	return contacts, nil
}

func (r *contactRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classifyError(err, "failed to delete contact")
	}

	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}
