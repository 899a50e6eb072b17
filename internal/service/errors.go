package service

import "errors"

const (
	EmptyPostMessage          = "Post cannot be empty!"
	AttachmentTooLargeMessage = "Image is too large to attach."
	TooManyAttachmentsMessage = "Too many images attached."
)

var (
	ErrBlankComment       = errors.New("comment is blank")
	ErrMissingIdentity    = errors.New("user and agent are required to comment")
	ErrThreadNotOpen      = errors.New("comment thread has no post")
	ErrThreadClosed       = errors.New("comment thread is closed")
	ErrSuperseded         = errors.New("load superseded by a newer one")
	ErrPartialLoad        = errors.New("some like counts failed to load")
	ErrEmptyPost          = errors.New(EmptyPostMessage)
	ErrAttachmentTooLarge = errors.New("attachment is too large")
	ErrTooManyAttachments = errors.New("too many attachments")
)
