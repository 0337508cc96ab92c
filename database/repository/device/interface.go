package deviceRepo

import (
	"context"
	"errors"
	"time"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when the owner has no registered device.
var ErrNotFound = errors.New("device not found")

// DeviceRepository maps workflow parties to their push tokens.
type DeviceRepository interface {
	GetFCMToken(ctx context.Context, ownerID string) (string, error)
	SaveToken(ctx context.Context, ownerID, token, platform string) error
}

type mongoDeviceRepo struct {
	coll *mongo.Collection
}

// NewMongoDeviceRepo returns a DeviceRepository backed by MongoDB.
func NewMongoDeviceRepo() DeviceRepository {
	return &mongoDeviceRepo{
		coll: database.DB().Collection("devices"),
	}
}

func (r *mongoDeviceRepo) GetFCMToken(ctx context.Context, ownerID string) (string, error) {
	var d models.Device
	err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", err
	}
	if d.FCMToken == "" {
		return "", ErrNotFound
	}
	return d.FCMToken, nil
}

func (r *mongoDeviceRepo) SaveToken(ctx context.Context, ownerID, token, platform string) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"owner_id": ownerID}, bson.M{
		"$set": bson.M{"fcm_token": token, "platform": platform, "updated_at": time.Now()},
	}, opts)
	return err
}
