// Package repository implements MongoDB persistence for users, degree
// courses and degree course applications.  This file defines sentinel
// errors shared across the repositories so that handlers can map failure
// modes onto HTTP responses without inspecting driver errors. For example
// ErrNotFound becomes a 404 while ErrUserExists and ErrDuplicate become
// 409 conflicts.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete addresses a
// document that does not exist.  Handlers should translate this into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when creating a user whose userID is already
// taken.  The users collection carries a unique index on userID, so the
// race between check and insert is closed by the database.
var ErrUserExists = errors.New("user already exists")

// ErrDuplicate is returned when an insert would create a second document
// with identical content, such as applying twice for the same course and
// period.  Handlers should translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate entity")
