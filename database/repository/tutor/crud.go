// File: database/repository/tutor/crud.go
package tutorRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tutorhive/models"
)

func (r *mongoTutorRepo) Create(ctx context.Context, tutor *models.Tutor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if tutor.ID == "" {
		tutor.ID = uuid.New().String()
	}
	if tutor.Status == "" {
		tutor.Status = "pending"
	}
	tutor.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, tutor); err != nil {
		return fmt.Errorf("failed to insert tutor: %w", err)
	}
	return nil
}

func (r *mongoTutorRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Tutor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var tutor models.Tutor
	err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&tutor)
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *mongoTutorRepo) Update(ctx context.Context, tutor *models.Tutor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tutor.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": tutor.ID}, tutor)
	if err != nil {
		return fmt.Errorf("failed to update tutor: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoTutorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoTutorRepo) ListBySubject(ctx context.Context, subject string, limit int64) ([]models.Tutor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": "active"}
	if subject != "" {
		filter["subjects"] = subject
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}
	defer cursor.Close(ctx)

	var tutors []models.Tutor
	if err := cursor.All(ctx, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}
