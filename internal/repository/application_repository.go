package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/degree-course-api/internal/model"
)

// ApplicationRepo wraps the `degreeCourseApplications` collection.
type ApplicationRepo struct{ col *mongo.Collection }

func NewApplicationRepo(db *mongo.Database) *ApplicationRepo {
	return &ApplicationRepo{col: db.Collection("degreeCourseApplications")}
}

// ApplicationUpdate describes a partial update of an application document.
type ApplicationUpdate struct {
	ApplicantUserID       *string
	DegreeCourseID        *string
	TargetPeriodYear      *string
	TargetPeriodShortName *string
}

// GetByID fetches an application by its hex ObjectID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (model.DegreeCourseApplication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.DegreeCourseApplication{}, ErrNotFound
	}
	var a model.DegreeCourseApplication
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.DegreeCourseApplication{}, ErrNotFound
	}
	return a, err
}

// Search returns all applications matching the exact-match filter.
func (r *ApplicationRepo) Search(ctx context.Context, f model.ApplicationFilter) ([]model.DegreeCourseApplication, error) {
	query := bson.M{}
	if f.ApplicantUserID != "" {
		query["applicantUserID"] = bson.M{"$eq": f.ApplicantUserID}
	}
	if f.DegreeCourseID != "" {
		query["degreeCourseID"] = bson.M{"$eq": f.DegreeCourseID}
	}
	if f.TargetPeriodYear != "" {
		query["targetPeriodYear"] = bson.M{"$eq": f.TargetPeriodYear}
	}
	if f.TargetPeriodShortName != "" {
		query["targetPeriodShortName"] = bson.M{"$eq": f.TargetPeriodShortName}
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	apps := []model.DegreeCourseApplication{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Create inserts an application unless an identical one already exists, in
// which case ErrDuplicate is returned.  Uniqueness here means the full
// tuple of applicant, course and target period.
func (r *ApplicationRepo) Create(ctx context.Context, a model.DegreeCourseApplication) (model.DegreeCourseApplication, error) {
	existing := bson.M{
		"applicantUserID":       a.ApplicantUserID,
		"degreeCourseID":        a.DegreeCourseID,
		"targetPeriodYear":      a.TargetPeriodYear,
		"targetPeriodShortName": a.TargetPeriodShortName,
	}
	err := r.col.FindOne(ctx, existing).Err()
	if err == nil {
		return model.DegreeCourseApplication{}, ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return model.DegreeCourseApplication{}, err
	}

	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return model.DegreeCourseApplication{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// Update applies a partial update.  Returns ErrNotFound when the
// application does not exist.
func (r *ApplicationRepo) Update(ctx context.Context, id string, upd ApplicationUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	set := bson.M{}
	if upd.ApplicantUserID != nil {
		set["applicantUserID"] = *upd.ApplicantUserID
	}
	if upd.DegreeCourseID != nil {
		set["degreeCourseID"] = *upd.DegreeCourseID
	}
	if upd.TargetPeriodYear != nil {
		set["targetPeriodYear"] = *upd.TargetPeriodYear
	}
	if upd.TargetPeriodShortName != nil {
		set["targetPeriodShortName"] = *upd.TargetPeriodShortName
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an application by id.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
