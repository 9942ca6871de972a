package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/degree-course-api/internal/model"
)

// DegreeCourseRepo wraps the `degreeCourses` collection.
type DegreeCourseRepo struct{ col *mongo.Collection }

func NewDegreeCourseRepo(db *mongo.Database) *DegreeCourseRepo {
	return &DegreeCourseRepo{col: db.Collection("degreeCourses")}
}

// DegreeCourseUpdate describes a partial update of a course document.  Nil
// fields are left untouched.
type DegreeCourseUpdate struct {
	Name                *string
	ShortName           *string
	UniversityName      *string
	UniversityShortName *string
	DepartmentName      *string
	DepartmentShortName *string
}

// GetByID fetches a course by its hex ObjectID.  A syntactically invalid id
// cannot address any document, so it maps to ErrNotFound as well.
func (r *DegreeCourseRepo) GetByID(ctx context.Context, id string) (model.DegreeCourse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.DegreeCourse{}, ErrNotFound
	}
	var c model.DegreeCourse
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.DegreeCourse{}, ErrNotFound
	}
	return c, err
}

// Search returns all courses matching the exact-match filter.  Empty filter
// fields are ignored; an empty filter returns every course.
func (r *DegreeCourseRepo) Search(ctx context.Context, f model.DegreeCourseFilter) ([]model.DegreeCourse, error) {
	query := bson.M{}
	if f.Name != "" {
		query["name"] = bson.M{"$eq": f.Name}
	}
	if f.ShortName != "" {
		query["shortName"] = bson.M{"$eq": f.ShortName}
	}
	if f.UniversityName != "" {
		query["universityName"] = bson.M{"$eq": f.UniversityName}
	}
	if f.UniversityShortName != "" {
		query["universityShortName"] = bson.M{"$eq": f.UniversityShortName}
	}
	if f.DepartmentName != "" {
		query["departmentName"] = bson.M{"$eq": f.DepartmentName}
	}
	if f.DepartmentShortName != "" {
		query["departmentShortName"] = bson.M{"$eq": f.DepartmentShortName}
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	courses := []model.DegreeCourse{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Create inserts a course and returns it with its generated ObjectID set.
func (r *DegreeCourseRepo) Create(ctx context.Context, c model.DegreeCourse) (model.DegreeCourse, error) {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return model.DegreeCourse{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return c, nil
}

// Update applies a partial update.  Returns ErrNotFound when the course
// does not exist.
func (r *DegreeCourseRepo) Update(ctx context.Context, id string, upd DegreeCourseUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.ShortName != nil {
		set["shortName"] = *upd.ShortName
	}
	if upd.UniversityName != nil {
		set["universityName"] = *upd.UniversityName
	}
	if upd.UniversityShortName != nil {
		set["universityShortName"] = *upd.UniversityShortName
	}
	if upd.DepartmentName != nil {
		set["departmentName"] = *upd.DepartmentName
	}
	if upd.DepartmentShortName != nil {
		set["departmentShortName"] = *upd.DepartmentShortName
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

// Delete removes a course by id.  Returns ErrNotFound when it did not exist.
func (r *DegreeCourseRepo) Delete(ctx context.Context, id string) error {
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
