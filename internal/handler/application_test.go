package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/degree-course-api/internal/middleware"
	"github.com/campushub/degree-course-api/internal/model"
	"github.com/campushub/degree-course-api/internal/queue"
	"github.com/campushub/degree-course-api/internal/repository"
)

const testCourseID = "66f0aa11bb22cc33dd44ee55"

// memAppStore is an in-memory ApplicationStore for handler tests.
type memAppStore struct{ apps []model.DegreeCourseApplication }

func (s *memAppStore) GetByID(_ context.Context, id string) (model.DegreeCourseApplication, error) {
	for _, a := range s.apps {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return model.DegreeCourseApplication{}, repository.ErrNotFound
}

func (s *memAppStore) Search(_ context.Context, f model.ApplicationFilter) ([]model.DegreeCourseApplication, error) {
	out := []model.DegreeCourseApplication{}
	for _, a := range s.apps {
		if f.ApplicantUserID != "" && a.ApplicantUserID != f.ApplicantUserID {
			continue
		}
		if f.DegreeCourseID != "" && a.DegreeCourseID != f.DegreeCourseID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *memAppStore) Create(_ context.Context, a model.DegreeCourseApplication) (model.DegreeCourseApplication, error) {
	for _, existing := range s.apps {
		if existing.ApplicantUserID == a.ApplicantUserID &&
			existing.DegreeCourseID == a.DegreeCourseID &&
			existing.TargetPeriodYear == a.TargetPeriodYear &&
			existing.TargetPeriodShortName == a.TargetPeriodShortName {
			return model.DegreeCourseApplication{}, repository.ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	s.apps = append(s.apps, a)
	return a, nil
}

func (s *memAppStore) Update(_ context.Context, id string, upd repository.ApplicationUpdate) error {
	for i, a := range s.apps {
		if a.ID.Hex() == id {
			if upd.TargetPeriodYear != nil {
				a.TargetPeriodYear = *upd.TargetPeriodYear
			}
			s.apps[i] = a
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memAppStore) Delete(_ context.Context, id string) error {
	for i, a := range s.apps {
		if a.ID.Hex() == id {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memCourseGetter knows a fixed set of course ids.
type memCourseGetter struct{ ids map[string]bool }

func (g *memCourseGetter) GetByID(_ context.Context, id string) (model.DegreeCourse, error) {
	if !g.ids[id] {
		return model.DegreeCourse{}, repository.ErrNotFound
	}
	return model.DegreeCourse{Name: "Computer Science BSc"}, nil
}

func appFixture(publish EventPublisher) (*ApplicationHandler, *memAppStore) {
	store := &memAppStore{}
	courses := &memCourseGetter{ids: map[string]bool{testCourseID: true}}
	return NewApplicationHandler(store, courses, publish), store
}

func appContext(t *testing.T, e *echo.Echo, method, target, body string, id *middleware.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req, rec := jsonRequest(method, target, body)
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

func TestApplicationCreatePinsApplicantToCaller(t *testing.T) {
	h, store := appFixture(nil)
	e := echo.New()

	body := `{"applicantUserID":"someone-else","degreeCourseID":"` + testCourseID + `","targetPeriodYear":"2026a","targetPeriodShortName":"WiSe2026"}`
	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "alice"})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.apps, 1)
	assert.Equal(t, "alice", store.apps[0].ApplicantUserID, "non-admins cannot apply for someone else")
}

func TestApplicationCreateAdminOverridesApplicant(t *testing.T) {
	h, store := appFixture(nil)
	e := echo.New()

	body := `{"applicantUserID":"bob-the-student","degreeCourseID":"` + testCourseID + `","targetPeriodYear":"2026a","targetPeriodShortName":"WiSe2026"}`
	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "admin", IsAdministrator: true})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.apps, 1)
	assert.Equal(t, "bob-the-student", store.apps[0].ApplicantUserID)
}

func TestApplicationCreateUnknownCourse(t *testing.T) {
	h, _ := appFixture(nil)
	e := echo.New()

	body := `{"degreeCourseID":"66f0aa11bb22cc33dd44ee99","targetPeriodYear":"2026a","targetPeriodShortName":"WiSe2026"}`
	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "alice"})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "DegreeCourse For DegreeCourseApplication does not exist!")
}

func TestApplicationCreateMissingFields(t *testing.T) {
	h, _ := appFixture(nil)
	e := echo.New()

	body := `{"degreeCourseID":"` + testCourseID + `"}`
	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "alice"})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationCreateDuplicate(t *testing.T) {
	h, _ := appFixture(nil)
	e := echo.New()
	body := `{"degreeCourseID":"` + testCourseID + `","targetPeriodYear":"2026a","targetPeriodShortName":"WiSe2026"}`

	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "alice"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "alice"})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Course Application already exists")
}

func TestApplicationCreateMissingIdentity(t *testing.T) {
	h, _ := appFixture(nil)
	e := echo.New()

	body := `{"degreeCourseID":"` + testCourseID + `","targetPeriodYear":"2026a","targetPeriodShortName":"WiSe2026"}`
	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, nil)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestApplicationCreatePublishesEvent(t *testing.T) {
	events := make(chan queue.ApplicationReceivedEvent, 1)
	h, _ := appFixture(func(_ context.Context, ev queue.ApplicationReceivedEvent) error {
		events <- ev
		return nil
	})
	e := echo.New()

	body := `{"degreeCourseID":"` + testCourseID + `","targetPeriodYear":"2026a","targetPeriodShortName":"WiSe2026"}`
	c, rec := appContext(t, e, http.MethodPost, "/api/degreeCourseApplications", body, &middleware.Identity{UserID: "alice"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case ev := <-events:
		assert.Equal(t, "alice", ev.ApplicantUserID)
		assert.Equal(t, testCourseID, ev.DegreeCourseID)
		assert.NotEmpty(t, ev.ApplicationID)
	case <-time.After(time.Second):
		t.Fatal("expected an application.received event")
	}
}

func TestApplicationMyApplications(t *testing.T) {
	h, store := appFixture(nil)
	store.apps = []model.DegreeCourseApplication{
		{ID: primitive.NewObjectID(), ApplicantUserID: "alice", DegreeCourseID: testCourseID},
		{ID: primitive.NewObjectID(), ApplicantUserID: "bob00", DegreeCourseID: testCourseID},
	}
	e := echo.New()

	c, rec := appContext(t, e, http.MethodGet, "/api/degreeCourseApplications/myApplications", "", &middleware.Identity{UserID: "alice"})
	require.NoError(t, h.MyApplications(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applicantUserID":"alice"`)
	assert.NotContains(t, rec.Body.String(), `"applicantUserID":"bob00"`)
}

func TestApplicationGetAndDelete(t *testing.T) {
	h, store := appFixture(nil)
	app := model.DegreeCourseApplication{ID: primitive.NewObjectID(), ApplicantUserID: "alice", DegreeCourseID: testCourseID}
	store.apps = []model.DegreeCourseApplication{app}
	e := echo.New()

	c, rec := appContext(t, e, http.MethodGet, "/api/degreeCourseApplications/"+app.ID.Hex(), "", &middleware.Identity{UserID: "admin", IsAdministrator: true})
	c.SetParamNames("applicationID")
	c.SetParamValues(app.ID.Hex())
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = appContext(t, e, http.MethodDelete, "/api/degreeCourseApplications/"+app.ID.Hex(), "", &middleware.Identity{UserID: "admin", IsAdministrator: true})
	c.SetParamNames("applicationID")
	c.SetParamValues(app.ID.Hex())
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.apps)
}
