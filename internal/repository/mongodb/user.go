package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kerhoff/CartoboT/internal/config"
	"github.com/Kerhoff/CartoboT/internal/errs"
	"github.com/Kerhoff/CartoboT/internal/models"
	"github.com/Kerhoff/CartoboT/internal/repository"
)

type userRepository struct {
	db *config.Database
}

// NewUserRepository creates a new user repository backed by MongoDB.
func NewUserRepository(db *config.Database) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return nil, err
	}

	var doc userDocument
	err := r.db.Users().FindOne(ctx, bson.M{"external_id": externalID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &errs.StoreError{Op: "fetch user", Key: externalID, Err: err}
	}

	return doc.toModel(), nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return nil, err
	}

	_, err := r.db.Users().InsertOne(ctx, newUserDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Another caller created the same user concurrently; that record
			// is the desired outcome.
			existing, getErr := r.GetByExternalID(ctx, user.ExternalID)
			if getErr == nil && existing != nil {
				return existing, nil
			}
			return nil, &errs.StoreError{Op: "create user", Key: user.ExternalID, Err: err}
		}
		return nil, &errs.StoreError{Op: "create user", Key: user.ExternalID, Err: err}
	}

	return user, nil
}

func (r *userRepository) GetOrCreate(ctx context.Context, externalID string) (*models.User, error) {
	user, err := r.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = models.NewUser(externalID)
	if err != nil {
		return nil, err
	}
	return r.Create(ctx, user)
}
