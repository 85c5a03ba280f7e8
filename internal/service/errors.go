package service

import "errors"

// Common service errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
)

// User service specific errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Match service specific errors
var (
	ErrMatchNotFound = errors.New("match not found")
	// ErrConflict means the match changed under us: another controller
	// completed the same or a conflicting transition first.
	ErrConflict          = errors.New("match state changed, refresh and retry")
	ErrMatchAlreadyLive  = errors.New("another match is already live")
	ErrNotYetStartable   = errors.New("match cannot be started yet")
	ErrExtraTimeNotOpen  = errors.New("extra time is not available")
)

// Evenement service specific errors
var (
	ErrEvenementNotFound = errors.New("evenement not found")
)

// Shift service specific errors
var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftFull       = errors.New("shift is full")
	ErrAlreadySignedUp = errors.New("already signed up for this shift")
)

// Order service specific errors
var (
	ErrUnknownProduct        = errors.New("unknown product")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrRefundWithoutPurchase = errors.New("cup refund requires a cup drink")
)
