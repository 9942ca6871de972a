package database

import (
	"context"
	"errors"
	"log"

	"github.com/campushub/degree-course-api/internal/model"
	"github.com/campushub/degree-course-api/internal/repository"
	"github.com/campushub/degree-course-api/internal/utils"
)

// SeedAdmin creates the default administrator account ("admin"/"123") when
// no user with that identifier exists yet, so a fresh database is usable
// immediately.  An already existing admin is left alone, whatever its
// password or role is by now.
func SeedAdmin(ctx context.Context, users *repository.UserRepo, bcryptCost int) error {
	_, err := users.GetByID(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	log.Println("seeding default admin user")
	hash, err := utils.HashPassword("123", bcryptCost)
	if err != nil {
		return err
	}
	err = users.Create(ctx, model.User{
		UserID:          "admin",
		IsAdministrator: true,
		Password:        hash,
	})
	if errors.Is(err, repository.ErrUserExists) {
		// Somebody else seeded concurrently; fine.
		return nil
	}
	return err
}
