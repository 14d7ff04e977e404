package service

import "errors"

// Service-level errors. Handlers translate these into status codes; anything
// else coming out of the store surfaces as a generic server error.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotAuthor      = errors.New("only the author may modify this recipe")
	ErrOwnRecipe      = errors.New("authors may not rate or save their own recipe")
	ErrAlreadyRated   = errors.New("recipe already rated by this user")
	ErrAlreadySaved   = errors.New("recipe already saved by this user")
	ErrSaveNotFound   = errors.New("save not found")
)
