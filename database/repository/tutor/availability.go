// File: database/repository/tutor/availability.go
package tutorRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tutorhive/models"
)

// GetAvailability reads back the flattened weekly rows for one tutor.
func (r *mongoTutorRepo) GetAvailability(ctx context.Context, tutorID string) ([]models.AvailabilityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Availability []models.AvailabilityEntry `bson:"availability"`
	}
	opts := options.FindOne().SetProjection(bson.M{"availability": 1})
	err := r.coll.FindOne(ctx, bson.M{"id": tutorID}, opts).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc.Availability, nil
}

// SetAvailability replaces the tutor's weekly rows in one write. Rows arrive
// already validated and ordered by the tutor service.
func (r *mongoTutorRepo) SetAvailability(ctx context.Context, tutorID string, entries []models.AvailabilityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"availability": entries,
		"updated_at":   time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": tutorID}, update)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
