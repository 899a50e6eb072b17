package service

import (
	"context"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
)

const defaultLikeCountWorkers = 4

type CommentAPI interface {
	PostComments(ctx context.Context, creds auth.Credentials, postID model.ID) ([]model.Comment, error)
	CommentLikeCount(ctx context.Context, commentID model.ID) (int64, error)
	CreateComment(ctx context.Context, creds auth.Credentials, postID model.ID, input dto.CreateCommentRequest) (*model.Comment, error)
	LikeComment(ctx context.Context, creds auth.Credentials, commentID model.ID) error
}

type PostAPI interface {
	CreatePost(ctx context.Context, creds auth.Credentials, input dto.CreatePostRequest) error
}

type API interface {
	CommentAPI
	PostAPI
}

// Service builds components. Each component owns its own state; Service
// holds only what they share read-only.
type Service struct {
	api      API
	thread   config.ThreadConfig
	composer config.ComposerConfig
}

func New(api API, thread config.ThreadConfig, composer config.ComposerConfig) *Service {
	if thread.LikeCountWorkers <= 0 {
		thread.LikeCountWorkers = defaultLikeCountWorkers
	}
	return &Service{
		api:      api,
		thread:   thread,
		composer: composer,
	}
}

func (s *Service) NewCommentThread(creds auth.Provider) *CommentThread {
	return newCommentThread(s.api, creds, s.thread.LikeCountWorkers)
}

// NewPostComposer wires onPostCreated, called after each successful submit,
// and alert, called with a user-facing message when a submit is rejected.
// Either may be nil.
func (s *Service) NewPostComposer(creds auth.Provider, onPostCreated func(), alert func(message string)) *PostComposer {
	return newPostComposer(s.api, creds, s.composer, onPostCreated, alert)
}
