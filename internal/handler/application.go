package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campushub/degree-course-api/internal/middleware"
	"github.com/campushub/degree-course-api/internal/model"
	"github.com/campushub/degree-course-api/internal/queue"
	"github.com/campushub/degree-course-api/internal/repository"
	"github.com/campushub/degree-course-api/internal/utils"
)

// ApplicationStore is the repository surface the application handlers need.
type ApplicationStore interface {
	GetByID(ctx context.Context, id string) (model.DegreeCourseApplication, error)
	Search(ctx context.Context, f model.ApplicationFilter) ([]model.DegreeCourseApplication, error)
	Create(ctx context.Context, a model.DegreeCourseApplication) (model.DegreeCourseApplication, error)
	Update(ctx context.Context, id string, upd repository.ApplicationUpdate) error
	Delete(ctx context.Context, id string) error
}

// CourseGetter checks that the course an application points at exists.
type CourseGetter interface {
	GetByID(ctx context.Context, id string) (model.DegreeCourse, error)
}

// EventPublisher emits an event after an application was stored.  Failures
// are the publisher's problem; the HTTP response does not depend on it.
type EventPublisher func(ctx context.Context, event queue.ApplicationReceivedEvent) error

// ApplicationHandler implements degree course application CRUD.
type ApplicationHandler struct {
	Applications ApplicationStore
	Courses      CourseGetter
	Publish      EventPublisher
}

func NewApplicationHandler(apps ApplicationStore, courses CourseGetter, publish EventPublisher) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, Courses: courses, Publish: publish}
}

type applicationReq struct {
	ApplicantUserID       *string `json:"applicantUserID"`
	DegreeCourseID        *string `json:"degreeCourseID"`
	TargetPeriodYear      *string `json:"targetPeriodYear"`
	TargetPeriodShortName *string `json:"targetPeriodShortName"`
}

// fieldsValid checks the length bounds on every field that is present.
func (r applicationReq) fieldsValid() bool {
	for _, f := range []*string{r.ApplicantUserID, r.DegreeCourseID, r.TargetPeriodYear, r.TargetPeriodShortName} {
		if f != nil && !utils.ValidLength(*f, courseFieldMin, courseFieldMax) {
			return false
		}
	}
	return true
}

// MyApplications lists the calling user's own applications.
func (h *ApplicationHandler) MyApplications(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.Logger().Error("no identity in request context, authentication middleware did not run")
		return serverError(c)
	}

	apps, err := h.Applications.Search(c.Request().Context(), model.ApplicationFilter{ApplicantUserID: id.UserID})
	if err != nil {
		c.Logger().Errorf("searching applications failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, apps)
}

// Get returns one application by id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	applicationID := c.Param("applicationID")
	app, err := h.Applications.GetByID(c.Request().Context(), applicationID)
	if errors.Is(err, repository.ErrNotFound) {
		c.Logger().Infof("could not find application with id %s", applicationID)
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("getting application failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, app)
}

// List returns applications matching the optional exact-match query filters.
func (h *ApplicationHandler) List(c echo.Context) error {
	filter := model.ApplicationFilter{
		ApplicantUserID:       c.QueryParam("applicantUserID"),
		DegreeCourseID:        c.QueryParam("degreeCourseID"),
		TargetPeriodYear:      c.QueryParam("targetPeriodYear"),
		TargetPeriodShortName: c.QueryParam("targetPeriodShortName"),
	}
	apps, err := h.Applications.Search(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("searching applications failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, apps)
}

// Create stores a new application.  The referenced course must exist.  Only
// administrators may apply on behalf of somebody else; for everyone else
// the applicant is pinned to the calling user no matter what the body says.
func (h *ApplicationHandler) Create(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.Logger().Error("no identity in request context, authentication middleware did not run")
		return serverError(c)
	}

	var req applicationReq
	if err := c.Bind(&req); err != nil {
		return malformed(c, "")
	}
	if req.DegreeCourseID == nil || req.TargetPeriodYear == nil || req.TargetPeriodShortName == nil {
		c.Logger().Error("application body missed required fields")
		return malformed(c, "")
	}

	ctx := c.Request().Context()
	if _, err := h.Courses.GetByID(ctx, *req.DegreeCourseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return malformed(c, "DegreeCourse For DegreeCourseApplication does not exist!")
		}
		c.Logger().Errorf("getting course failed: %v", err)
		return serverError(c)
	}

	applicant := id.UserID
	if req.ApplicantUserID != nil && id.IsAdministrator {
		applicant = *req.ApplicantUserID
	}

	app := model.DegreeCourseApplication{
		ApplicantUserID:       applicant,
		DegreeCourseID:        *req.DegreeCourseID,
		TargetPeriodYear:      *req.TargetPeriodYear,
		TargetPeriodShortName: *req.TargetPeriodShortName,
	}
	for _, f := range []string{app.ApplicantUserID, app.DegreeCourseID, app.TargetPeriodYear, app.TargetPeriodShortName} {
		if !utils.ValidLength(f, courseFieldMin, courseFieldMax) {
			return malformed(c, "DegreeCourseApplication does not have the required fields!")
		}
	}

	created, err := h.Applications.Create(ctx, app)
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict(c, "Course Application already exists")
	}
	if err != nil {
		c.Logger().Errorf("creating application failed: %v", err)
		return serverError(c)
	}

	if h.Publish != nil {
		event := queue.ApplicationReceivedEvent{
			ApplicationID:         created.ID.Hex(),
			ApplicantUserID:       created.ApplicantUserID,
			DegreeCourseID:        created.DegreeCourseID,
			TargetPeriodYear:      created.TargetPeriodYear,
			TargetPeriodShortName: created.TargetPeriodShortName,
			ReceivedAt:            time.Now().UTC().Format(time.RFC3339),
		}
		// Best effort; the application is stored either way.
		go func() { _ = h.Publish(context.Background(), event) }()
	}

	return c.JSON(http.StatusCreated, created)
}

// Update applies a partial update and returns the updated application.
func (h *ApplicationHandler) Update(c echo.Context) error {
	applicationID := c.Param("applicationID")
	var req applicationReq
	if err := c.Bind(&req); err != nil {
		return malformed(c, "")
	}
	if !req.fieldsValid() {
		return malformed(c, "DegreeCourseApplication fields are not valid!")
	}

	ctx := c.Request().Context()
	if _, err := h.Applications.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		c.Logger().Errorf("getting application failed: %v", err)
		return serverError(c)
	}

	upd := repository.ApplicationUpdate{
		ApplicantUserID:       req.ApplicantUserID,
		DegreeCourseID:        req.DegreeCourseID,
		TargetPeriodYear:      req.TargetPeriodYear,
		TargetPeriodShortName: req.TargetPeriodShortName,
	}
	if err := h.Applications.Update(ctx, applicationID, upd); err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.Logger().Errorf("updating application failed: %v", err)
		return serverError(c)
	}

	app, err := h.Applications.GetByID(ctx, applicationID)
	if err != nil {
		c.Logger().Errorf("re-reading application after update failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, app)
}

// Delete removes an application.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	err := h.Applications.Delete(c.Request().Context(), c.Param("applicationID"))
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("deleting application failed: %v", err)
		return serverError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
