package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses: not-found and invalid-owner to 404, duplicates to 409,
// missing fields to 400.
var (
	ErrPostNotFound          = errors.New("post not found")
	ErrLikeNotFound          = errors.New("like not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrInvalidOwner          = errors.New("location owner does not exist")
	ErrDuplicateLike         = errors.New("user already liked this post")
	ErrDuplicateSubscription = errors.New("user is already subscribed to this post")
	ErrMissingStatus         = errors.New("attendance status is required")
	ErrMissingBody           = errors.New("comment body is required")
)
