package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
)

var errBoom = errors.New("boom")

// fakeAPI records every call. Counts hold the server-side like counts.
type fakeAPI struct {
	mu sync.Mutex

	comments   map[model.ID][]model.Comment
	counts     map[model.ID]int64
	listErr    error
	countErr   map[model.ID]error
	createErr  error
	likeErr    error
	postErr    error
	nextID     int
	listHook   func(postID model.ID)
	listCalls  []model.ID
	countCalls []model.ID
	created    []dto.CreateCommentRequest
	likes      []model.ID
	posts      []dto.CreatePostRequest
	tokens     []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		comments: make(map[model.ID][]model.Comment),
		counts:   make(map[model.ID]int64),
		countErr: make(map[model.ID]error),
		nextID:   100,
	}
}

func (f *fakeAPI) PostComments(ctx context.Context, creds auth.Credentials, postID model.ID) ([]model.Comment, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, postID)
	f.tokens = append(f.tokens, creds.Token)
	hook := f.listHook
	comments := append([]model.Comment(nil), f.comments[postID]...)
	err := f.listErr
	f.mu.Unlock()

	if hook != nil {
		hook(postID)
	}
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (f *fakeAPI) CommentLikeCount(ctx context.Context, commentID model.ID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.countCalls = append(f.countCalls, commentID)
	if err := f.countErr[commentID]; err != nil {
		return 0, err
	}
	return f.counts[commentID], nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, creds auth.Credentials, postID model.ID, input dto.CreateCommentRequest) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	return &model.Comment{
		ID:      model.ID(strconv.Itoa(f.nextID)),
		PostID:  postID,
		Content: input.Content,
		UserID:  input.UserID,
		AgentID: input.AgentID,
	}, nil
}

func (f *fakeAPI) LikeComment(ctx context.Context, creds auth.Credentials, commentID model.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.likes = append(f.likes, commentID)
	if f.likeErr != nil {
		return f.likeErr
	}
	f.counts[commentID]++
	return nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, creds auth.Credentials, input dto.CreatePostRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.posts = append(f.posts, input)
	return f.postErr
}

func (f *fakeAPI) calls() (list, count, create, like, post int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.listCalls), len(f.countCalls), len(f.created), len(f.likes), len(f.posts)
}

func newTestService(api API) *Service {
	return New(api, config.ThreadConfig{LikeCountWorkers: 2}, config.ComposerConfig{MaxAttachmentBytes: 8, MaxAttachments: 3})
}

var testCreds = auth.Static(auth.Credentials{Token: "tok"})
