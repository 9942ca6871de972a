package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// DegreeCourseApplication records that a user applied for a degree course
// in a specific admission period.  The combination of applicant, course and
// period is treated as unique by the repository (duplicate submissions are
// rejected with a conflict).
type DegreeCourseApplication struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ApplicantUserID       string             `bson:"applicantUserID" json:"applicantUserID"`
	DegreeCourseID        string             `bson:"degreeCourseID" json:"degreeCourseID"`
	TargetPeriodYear      string             `bson:"targetPeriodYear" json:"targetPeriodYear"`
	TargetPeriodShortName string             `bson:"targetPeriodShortName" json:"targetPeriodShortName"`
}

// ApplicationFilter carries the optional exact-match search criteria for
// application listings.
type ApplicationFilter struct {
	ApplicantUserID       string
	DegreeCourseID        string
	TargetPeriodYear      string
	TargetPeriodShortName string
}
