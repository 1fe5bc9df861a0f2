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

type reportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) interfaces.ReportRepository {
	return &reportRepository{
		collection: db.Collection("reports"),
	}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		return classifyError(err, "failed to create report")
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var report models.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		return nil, classifyError(err, "failed to get report")
	}

	return &report, nil
}

func (r *reportRepository) GetByReportID(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	err := r.collection.FindOne(ctx, bson.M{"report_id": reportID}).Decode(&report)
	if err != nil {
		return nil, classifyError(err, "failed to get report by report id")
	}

	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, filter *models.ReportFilter) ([]*models.Report, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.Type != "" {
			query["type"] = filter.Type
		}
	}

	return r.findReports(ctx, query)
}

func (r *reportRepository) ListWithCoordinates(ctx context.Context) ([]*models.Report, error) {
	// both coordinates must be present for map display
	query := bson.M{
		"latitude":  bson.M{"$ne": nil},
		"longitude": bson.M{"$ne": nil},
	}

	return r.findReports(ctx, query)
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReportStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return classifyError(err, "failed to update report status")
	}

	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *reportRepository) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, classifyError(err, "failed to count reports by status")
	}
	defer cursor.Close(ctx)

	counts := make(map[models.ReportStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.ReportStatus `bson:"_id"`
			Count  int64               `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, classifyError(err, "failed to decode status count")
		}
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *reportRepository) findReports(ctx context.Context, query bson.M) ([]*models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, classifyError(err, "failed to find reports")
	}
	defer cursor.Close(ctx)

	var reports []*models.Report
	for cursor.Next(ctx) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			return nil, classifyError(err, "failed to decode report")
		}
		reports = append(reports, &report)
	}

	if err := cursor.Err(); err != nil {
		return nil, classifyError(err, "failed to iterate reports")
	}

	return reports, nil
}
