package domain

import "errors"

// Sentinel errors for the subscription domain. Use errors.Is() to check these.
var (
	// ErrSubscriptionNotFound indicates the requested subscription does not exist.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionAlreadyExists indicates the email is already subscribed to the list.
	ErrSubscriptionAlreadyExists = errors.New("subscription already exists")

	// ErrInvalidSubscriberName indicates the subscriber name violates domain constraints.
	ErrInvalidSubscriberName = errors.New("invalid subscriber name")

	// ErrInvalidSubscriberEmail indicates the subscriber email violates domain constraints.
	ErrInvalidSubscriberEmail = errors.New("invalid subscriber email")
)
