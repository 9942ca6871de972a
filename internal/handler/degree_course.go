package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/degree-course-api/internal/model"
	"github.com/campushub/degree-course-api/internal/repository"
	"github.com/campushub/degree-course-api/internal/utils"
)

// courseFieldMin/courseFieldMax bound every free-text field of a course.
const (
	courseFieldMin = 5
	courseFieldMax = 255
)

// DegreeCourseStore is the repository surface the course handlers need.
type DegreeCourseStore interface {
	GetByID(ctx context.Context, id string) (model.DegreeCourse, error)
	Search(ctx context.Context, f model.DegreeCourseFilter) ([]model.DegreeCourse, error)
	Create(ctx context.Context, course model.DegreeCourse) (model.DegreeCourse, error)
	Update(ctx context.Context, id string, upd repository.DegreeCourseUpdate) error
	Delete(ctx context.Context, id string) error
}

// ApplicationSearcher is the slice of the application repository the course
// handlers use for the nested applications listing.
type ApplicationSearcher interface {
	Search(ctx context.Context, f model.ApplicationFilter) ([]model.DegreeCourseApplication, error)
}

// DegreeCourseHandler implements degree course CRUD and search.
type DegreeCourseHandler struct {
	Courses      DegreeCourseStore
	Applications ApplicationSearcher
}

func NewDegreeCourseHandler(courses DegreeCourseStore, apps ApplicationSearcher) *DegreeCourseHandler {
	return &DegreeCourseHandler{Courses: courses, Applications: apps}
}

type courseReq struct {
	Name                *string `json:"name"`
	ShortName           *string `json:"shortName"`
	UniversityName      *string `json:"universityName"`
	UniversityShortName *string `json:"universityShortName"`
	DepartmentName      *string `json:"departmentName"`
	DepartmentShortName *string `json:"departmentShortName"`
}

func (r courseReq) complete() bool {
	return r.Name != nil && r.ShortName != nil &&
		r.UniversityName != nil && r.UniversityShortName != nil &&
		r.DepartmentName != nil && r.DepartmentShortName != nil
}

// fieldsValid checks the length bounds on every field that is present.
func (r courseReq) fieldsValid() bool {
	for _, f := range []*string{r.Name, r.ShortName, r.UniversityName, r.UniversityShortName, r.DepartmentName, r.DepartmentShortName} {
		if f != nil && !utils.ValidLength(*f, courseFieldMin, courseFieldMax) {
			return false
		}
	}
	return true
}

// List returns courses matching the optional exact-match query filters.
func (h *DegreeCourseHandler) List(c echo.Context) error {
	filter := model.DegreeCourseFilter{
		Name:                c.QueryParam("name"),
		ShortName:           c.QueryParam("shortName"),
		UniversityName:      c.QueryParam("universityName"),
		UniversityShortName: c.QueryParam("universityShortName"),
		DepartmentName:      c.QueryParam("departmentName"),
		DepartmentShortName: c.QueryParam("departmentShortName"),
	}
	courses, err := h.Courses.Search(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("searching courses failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, courses)
}

// Get returns one course by id.
func (h *DegreeCourseHandler) Get(c echo.Context) error {
	courseID := c.Param("courseID")
	course, err := h.Courses.GetByID(c.Request().Context(), courseID)
	if errors.Is(err, repository.ErrNotFound) {
		c.Logger().Infof("could not find course with id %s", courseID)
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("getting course failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, course)
}

// ListApplications returns all applications submitted for one course.  The
// course must exist; the authorization policy already restricted this to
// administrators.
func (h *DegreeCourseHandler) ListApplications(c echo.Context) error {
	ctx := c.Request().Context()
	courseID := c.Param("courseID")
	if _, err := h.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		c.Logger().Errorf("getting course failed: %v", err)
		return serverError(c)
	}

	apps, err := h.Applications.Search(ctx, model.ApplicationFilter{DegreeCourseID: courseID})
	if err != nil {
		c.Logger().Errorf("searching applications failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, apps)
}

// Create stores a new course.  All six fields are required and an identical
// course must not already exist.
func (h *DegreeCourseHandler) Create(c echo.Context) error {
	var req courseReq
	if err := c.Bind(&req); err != nil {
		return malformed(c, "")
	}
	if !req.complete() || !req.fieldsValid() {
		return malformed(c, "")
	}

	ctx := c.Request().Context()
	course := model.DegreeCourse{
		Name:                *req.Name,
		ShortName:           *req.ShortName,
		UniversityName:      *req.UniversityName,
		UniversityShortName: *req.UniversityShortName,
		DepartmentName:      *req.DepartmentName,
		DepartmentShortName: *req.DepartmentShortName,
	}

	existing, err := h.Courses.Search(ctx, model.DegreeCourseFilter{
		Name:                course.Name,
		ShortName:           course.ShortName,
		UniversityName:      course.UniversityName,
		UniversityShortName: course.UniversityShortName,
		DepartmentName:      course.DepartmentName,
		DepartmentShortName: course.DepartmentShortName,
	})
	if err != nil {
		c.Logger().Errorf("searching courses failed: %v", err)
		return serverError(c)
	}
	if len(existing) > 0 {
		return conflict(c, "Course already exists")
	}

	created, err := h.Courses.Create(ctx, course)
	if err != nil {
		c.Logger().Errorf("creating course failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update applies a partial update and returns the updated course.
func (h *DegreeCourseHandler) Update(c echo.Context) error {
	courseID := c.Param("courseID")
	var req courseReq
	if err := c.Bind(&req); err != nil {
		return malformed(c, "")
	}
	if !req.fieldsValid() {
		return malformed(c, "")
	}

	ctx := c.Request().Context()
	if _, err := h.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		c.Logger().Errorf("getting course failed: %v", err)
		return serverError(c)
	}

	upd := repository.DegreeCourseUpdate{
		Name:                req.Name,
		ShortName:           req.ShortName,
		UniversityName:      req.UniversityName,
		UniversityShortName: req.UniversityShortName,
		DepartmentName:      req.DepartmentName,
		DepartmentShortName: req.DepartmentShortName,
	}
	if err := h.Courses.Update(ctx, courseID, upd); err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.Logger().Errorf("updating course failed: %v", err)
		return serverError(c)
	}

	course, err := h.Courses.GetByID(ctx, courseID)
	if err != nil {
		c.Logger().Errorf("re-reading course after update failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, course)
}

// Delete removes a course.
func (h *DegreeCourseHandler) Delete(c echo.Context) error {
	err := h.Courses.Delete(c.Request().Context(), c.Param("courseID"))
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("deleting course failed: %v", err)
		return serverError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
