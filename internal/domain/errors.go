package domain

import "errors"

var (
	// ErrDetectorUnavailable is returned when the detector backend cannot be reached
	ErrDetectorUnavailable = errors.New("food detector unavailable")

	// ErrMalformedDetection is returned when a detector response fails validation
	ErrMalformedDetection = errors.New("malformed detector response")

	// ErrInvalidImage is returned when an image payload cannot be decoded
	ErrInvalidImage = errors.New("invalid image payload")

	// ErrInvalidMealType is returned when a meal log uses an unsupported meal type
	ErrInvalidMealType = errors.New("invalid meal type")

	// ErrEmptyMeal is returned when a meal log contains no foods
	ErrEmptyMeal = errors.New("meal contains no foods")

	// ErrUnauthorized is returned when no user identity accompanies a request
	ErrUnauthorized = errors.New("missing user identity")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrStorageFailure is returned when the meal store cannot complete an operation
	ErrStorageFailure = errors.New("meal storage failure")
)
