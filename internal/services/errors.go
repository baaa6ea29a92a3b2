package services

import "errors"

// Client-visible failure conditions. Handlers map these onto the
// response envelope with errors.Is; anything else is a server fault.
var (
	ErrPasswordMismatch    = errors.New("passwords are not the same")
	ErrDuplicateCredential = errors.New("email or phone number already used")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrExpiredToken        = errors.New("token is expired")
	ErrInvalidToken        = errors.New("token invalid")
	ErrInvalidTokenPayload = errors.New("invalid token payload")

	ErrProductNotFound  = errors.New("product not found")
	ErrNoProductsFound  = errors.New("no products found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrNotProductOwner  = errors.New("product belongs to another user")
)
