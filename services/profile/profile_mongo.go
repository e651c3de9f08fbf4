package profile

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProfileService implements ProfileService over the "patients"
// collection.
type MongoProfileService struct {
	coll *mongo.Collection
}

func NewMongoProfileService() *MongoProfileService {
	coll := database.MongoClient.Database("medibook").Collection("patients")
	return &MongoProfileService{coll: coll}
}

func (s *MongoProfileService) GetCurrentPatientProfile(ctx context.Context, patientID string) (*models.PatientProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var prof models.PatientProfile
	if err := s.coll.FindOne(ctx, bson.M{"id": patientID}).Decode(&prof); err != nil {
		return nil, fmt.Errorf("failed to fetch patient profile %s: %w", patientID, err)
	}
	return &prof, nil
}
