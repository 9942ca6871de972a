// Package queue defines message payloads exchanged over the message broker.
package queue

// ApplicationReceivedEvent is published when a degree course application was
// successfully stored.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ApplicationReceivedEvent struct {
	ApplicationID         string `json:"application_id"`
	ApplicantUserID       string `json:"applicant_user_id"`
	DegreeCourseID        string `json:"degree_course_id"`
	TargetPeriodYear      string `json:"target_period_year"`
	TargetPeriodShortName string `json:"target_period_short_name"`
	ReceivedAt            string `json:"received_at"`
}
