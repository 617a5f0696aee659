// File: database/repository/tutor/interface.go
package tutorRepo

import (
	"context"

	"tutorhive/database"
	"tutorhive/models"
	"tutorhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TutorRepository is the persistence surface for tutor profiles and their
// weekly availability rows.
type TutorRepository interface {
	Create(ctx context.Context, tutor *models.Tutor) error
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Tutor, error)
	Update(ctx context.Context, tutor *models.Tutor) error
	Delete(ctx context.Context, id string) error
	ListBySubject(ctx context.Context, subject string, limit int64) ([]models.Tutor, error)
	GetAvailability(ctx context.Context, tutorID string) ([]models.AvailabilityEntry, error)
	SetAvailability(ctx context.Context, tutorID string, entries []models.AvailabilityEntry) error
}

type mongoTutorRepo struct {
	coll *mongo.Collection
}

// NewMongoTutorRepo constructs a new MongoDB TutorRepository.
func NewMongoTutorRepo() TutorRepository {
	db := database.MongoClient.Database("tutorhive")
	repo := &mongoTutorRepo{
		coll: db.Collection("tutors"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure tutor indexes", zap.Error(err))
	}
	return repo
}
