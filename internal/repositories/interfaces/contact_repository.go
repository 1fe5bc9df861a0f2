package interfaces

import (
	"context"

	"safecity/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context) ([]*models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
