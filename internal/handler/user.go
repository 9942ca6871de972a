package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/degree-course-api/internal/config"
	"github.com/campushub/degree-course-api/internal/model"
	"github.com/campushub/degree-course-api/internal/repository"
	"github.com/campushub/degree-course-api/internal/utils"
)

// UserStore is the repository surface the user handlers need.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, userID string, upd repository.UserUpdate) (model.User, error)
	Delete(ctx context.Context, userID string) error
}

// UserHandler implements account CRUD.  The same handler serves the
// protected /api/users routes and the open /api/publicUsers registration
// surface; the difference is purely which middleware the router puts in
// front.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type createUserReq struct {
	UserID          *string `json:"userID"`
	Password        *string `json:"password"`
	IsAdministrator bool    `json:"isAdministrator"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
}

type updateUserReq struct {
	Password        *string `json:"password"`
	IsAdministrator *bool   `json:"isAdministrator"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
}

// List returns every user.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("listing users failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user by its userID.
func (h *UserHandler) Get(c echo.Context) error {
	userID := c.Param("userID")
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.Logger().Infof("could not find user with id %s", userID)
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("getting user failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// Create registers a new user.  userID and password are required; the role
// flag defaults to a standard account.  The plaintext password never leaves
// this function, only its bcrypt hash is stored.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return malformed(c, "")
	}
	if req.UserID == nil || req.Password == nil {
		c.Logger().Error("user creation body missed userID or password")
		return malformed(c, "")
	}

	hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("could not hash password: %v", err)
		return serverError(c)
	}

	user := model.User{
		UserID:          *req.UserID,
		IsAdministrator: req.IsAdministrator,
		Password:        hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	}
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return conflict(c, "user already exists")
		}
		c.Logger().Errorf("creating user failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial update to a user.  A password in the body is
// re-hashed before it is stored.
func (h *UserHandler) Update(c echo.Context) error {
	userID := c.Param("userID")
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return missingBody(c)
	}

	upd := repository.UserUpdate{
		IsAdministrator: req.IsAdministrator,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			c.Logger().Errorf("could not hash password: %v", err)
			return serverError(c)
		}
		upd.Password = &hash
	}

	user, err := h.Users.Update(c.Request().Context(), userID, upd)
	if errors.Is(err, repository.ErrNotFound) {
		c.Logger().Infof("could not update user with id %s", userID)
		return malformed(c, "")
	}
	if err != nil {
		c.Logger().Errorf("updating user failed: %v", err)
		return serverError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user.
func (h *UserHandler) Delete(c echo.Context) error {
	userID := c.Param("userID")
	err := h.Users.Delete(c.Request().Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("deleting user failed: %v", err)
		return serverError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
