package domain

import "errors"

// Resource lookups.
var ErrAuctionNotFound = errors.New("auction not found")
var ErrBidNotFound = errors.New("bid not found")
var ErrDepositNotFound = errors.New("deposit not found")
var ErrUserNotFound = errors.New("user not found")
var ErrCategoryNotFound = errors.New("category not found")

// Authorization.
var ErrForbidden = errors.New("access forbidden")
var ErrAccountInactive = errors.New("user account is inactive")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Lifecycle and bidding rules.
var ErrInvalidState = errors.New("operation not allowed in current auction state")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBidTooLow = errors.New("bid amount too low")
var ErrAuctionWindowClosed = errors.New("auction is not open for bidding at this time")
var ErrBidContention = errors.New("auction is busy, bid could not be serialized")

// Input validation and uniqueness.
var ErrValidation = errors.New("validation failed")
var ErrUserExists = errors.New("user already exists")
var ErrCategoryExists = errors.New("category name already in use")
var ErrUnknownRole = errors.New("unknown user role")
