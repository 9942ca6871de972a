package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// DegreeCourse represents a study programme offered by a university
// department.  The document is addressed by its ObjectID, exposed to
// clients as the hex `id` field.
type DegreeCourse struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                string             `bson:"name" json:"name"`
	ShortName           string             `bson:"shortName" json:"shortName"`
	UniversityName      string             `bson:"universityName" json:"universityName"`
	UniversityShortName string             `bson:"universityShortName" json:"universityShortName"`
	DepartmentName      string             `bson:"departmentName" json:"departmentName"`
	DepartmentShortName string             `bson:"departmentShortName" json:"departmentShortName"`
}

// DegreeCourseFilter carries the optional exact-match search criteria for
// course listings.  Empty fields are ignored when building the query.
type DegreeCourseFilter struct {
	Name                string
	ShortName           string
	UniversityName      string
	UniversityShortName string
	DepartmentName      string
	DepartmentShortName string
}
