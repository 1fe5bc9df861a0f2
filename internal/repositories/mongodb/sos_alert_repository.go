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

type sosAlertRepository struct {
	collection *mongo.Collection
}

func NewSOSAlertRepository(db *mongo.Database) interfaces.SOSAlertRepository {
	return &sosAlertRepository{
		collection: db.Collection("sos_alerts"),
	}
}

func (r *sosAlertRepository) Create(ctx context.Context, alert *models.SOSAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, alert); err != nil {
		return classifyError(err, "failed to create sos alert")
	}

	return nil
}

func (r *sosAlertRepository) List(ctx context.Context, limit int64) ([]*models.SOSAlert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classifyError(err, "failed to find sos alerts")
	}
	defer cursor.Close(ctx)

	var alerts []*models.SOSAlert
	for cursor.Next(ctx) {
		var alert models.SOSAlert
		if err := cursor.Decode(&alert); err != nil {
			return nil, classifyError(err, "failed to decode sos alert")
		}
		alerts = append(alerts, &alert)
	}

	if err := cursor.Err(); err != nil {
		return nil, classifyError(err, "failed to iterate sos alerts")
	}

	return alerts, nil
}
