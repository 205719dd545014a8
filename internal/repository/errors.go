// Package repository is the persistence gateway: typed operations
// over the users, short_urls, bio_profiles, clicks and file_uploads
// tables. Sentinel errors let the service layer distinguish failure
// modes without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// ErrEmailExists and ErrUsernameExists are returned by UserRepo.Create
// when the respective unique key is violated.
var ErrEmailExists = errors.New("email already exists")
var ErrUsernameExists = errors.New("username already exists")
