package auth

import (
	"context"

	"github.com/campushub/degree-course-api/internal/model"
	"github.com/campushub/degree-course-api/internal/utils"
)

// UserStore is the slice of the user repository the credential verifier
// needs: a read-only lookup by identifier.  Unknown identifiers must be
// reported via error, not a zero value.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (model.User, error)
}

// VerifyLogin checks a userID/password pair against the store.  It returns
// the matching user and true only when the user exists, has a stored hash,
// and the password matches it.  Every failure mode collapses to false; the
// caller responds with the same generic unauthorized either way.  An empty
// password is not rejected up front, it simply fails the hash comparison.
func VerifyLogin(ctx context.Context, store UserStore, userID, password string) (model.User, bool) {
	user, err := store.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, false
	}
	if user.Password == "" {
		return model.User{}, false
	}
	if !utils.VerifyPassword(user.Password, password) {
		return model.User{}, false
	}
	return user, true
}
