package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docportal/pkg/config"
	"docportal/pkg/model"
)

const CollectionName = "appointment_options"

type AppointmentOptionRepository interface {
	FindAll(ctx context.Context) ([]*model.AppointmentOption, error)
	FindSpecialties(ctx context.Context) ([]*model.Specialty, error)
}

type mongoAppointmentOptionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAppointmentOptionRepository(cfg *config.Config) AppointmentOptionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentOptionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAppointmentOptionRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAppointmentOptionRepository) FindAll(ctx context.Context) ([]*model.AppointmentOption, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment options: %w", err)
	}
	defer cursor.Close(ctx)

	var opts []*model.AppointmentOption
	if err = cursor.All(ctx, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode appointment options: %w", err)
	}

	return opts, nil
}

// FindSpecialties projects only the name field; the doctor forms need
// nothing else from the catalog.
func (r *mongoAppointmentOptionRepository) FindSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find specialties: %w", err)
	}
	defer cursor.Close(ctx)

	var specialties []*model.Specialty
	if err = cursor.All(ctx, &specialties); err != nil {
		return nil, fmt.Errorf("failed to decode specialties: %w", err)
	}

	return specialties, nil
}
