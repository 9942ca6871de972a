package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushub/degree-course-api/internal/model"
)

// UserRepo wraps the `users` collection.
type UserRepo struct{ col *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

// UserUpdate describes a partial update of a user document.  Nil fields are
// left untouched.  Password must already be hashed by the caller.
type UserUpdate struct {
	IsAdministrator *bool
	Password        *string
	FirstName       *string
	LastName        *string
}

// GetByID fetches a user by its userID.  Returns ErrNotFound for unknown
// identifiers so that callers never see driver-level sentinel errors.
func (r *UserRepo) GetByID(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"userID": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user.  The unique index on userID turns concurrent
// inserts of the same identifier into ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	_, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrUserExists
	}
	return err
}

// Update applies a partial update and returns the resulting document.
// Returns ErrNotFound when no user with that userID exists.
func (r *UserRepo) Update(ctx context.Context, userID string, upd UserUpdate) (model.User, error) {
	set := bson.M{}
	if upd.IsAdministrator != nil {
		set["isAdministrator"] = *upd.IsAdministrator
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.FirstName != nil {
		set["firstName"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["lastName"] = *upd.LastName
	}

	var u model.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"userID": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Delete removes a user by userID.  Returns ErrNotFound when the user did
// not exist.
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"userID": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
