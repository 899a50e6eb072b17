package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
	"golang.org/x/sync/errgroup"
)

type ThreadStatus int

const (
	StatusIdle ThreadStatus = iota
	StatusLoading
	StatusLoaded
)

func (s ThreadStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// CommentThread holds the comments and like counts of one post.
//
// Loads are keyed by post ID: Open only fetches when the post changes, and a
// newer load cancels the older one. Responses belonging to a superseded load
// are dropped, so they never overwrite newer state.
type CommentThread struct {
	api     CommentAPI
	creds   auth.Provider
	workers int

	mu         sync.Mutex
	postID     model.ID
	status     ThreadStatus
	comments   []model.Comment
	likeCounts map[model.ID]int64
	draft      string
	submitted  []model.Comment
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func newCommentThread(api CommentAPI, creds auth.Provider, workers int) *CommentThread {
	return &CommentThread{
		api:        api,
		creds:      creds,
		workers:    workers,
		likeCounts: make(map[model.ID]int64),
	}
}

// Open points the thread at postID and loads it, unless the thread already
// shows that post.
func (t *CommentThread) Open(ctx context.Context, postID model.ID) error {
	t.mu.Lock()
	current := t.status != StatusIdle && t.postID == postID
	t.mu.Unlock()

	if current {
		return nil
	}
	return t.load(ctx, postID)
}

// Reload re-fetches the current post's comments.
func (t *CommentThread) Reload(ctx context.Context) error {
	t.mu.Lock()
	postID, status := t.postID, t.status
	t.mu.Unlock()

	if status == StatusIdle {
		return ErrThreadNotOpen
	}
	return t.load(ctx, postID)
}

// Close cancels any in-flight load. The thread rejects loads afterwards.
func (t *CommentThread) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *CommentThread) load(ctx context.Context, postID model.ID) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrThreadClosed
	}
	if t.cancel != nil {
		t.cancel()
	}
	if t.postID != postID {
		t.comments = nil
		t.likeCounts = make(map[model.ID]int64)
	}

	t.generation++
	gen := t.generation
	t.submitted = nil
	loadCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.postID = postID
	t.status = StatusLoading
	t.mu.Unlock()

	defer cancel()

	creds, err := t.creds.Credentials(loadCtx)
	if err != nil {
		t.settle(gen)
		return err
	}

	comments, err := t.api.PostComments(loadCtx, creds, postID)
	if err != nil {
		if !t.settle(gen) {
			return ErrSuperseded
		}
		return err
	}

	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return ErrSuperseded
	}
	t.comments = t.keepSubmitted(comments)
	t.submitted = nil
	t.status = StatusLoaded
	t.mu.Unlock()

	if err := t.fetchLikeCounts(loadCtx, gen, comments); err != nil {
		t.mu.Lock()
		superseded := gen != t.generation
		t.mu.Unlock()

		if superseded {
			return ErrSuperseded
		}
		return err
	}
	return nil
}

// keepSubmitted appends comments accepted by the server while the list was
// being fetched but missing from the fetched list.
func (t *CommentThread) keepSubmitted(fetched []model.Comment) []model.Comment {
	for _, c := range t.submitted {
		if !containsID(fetched, c.ID) {
			fetched = append(fetched, c)
		}
	}
	return fetched
}

// settle marks a failed load as done. It reports false when the load was
// already superseded.
func (t *CommentThread) settle(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return false
	}
	t.status = StatusLoaded
	return true
}

func (t *CommentThread) fetchLikeCounts(ctx context.Context, gen uint64, comments []model.Comment) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(t.workers)

	for _, c := range comments {
		if c.ID.IsZero() {
			continue
		}

		commentID := c.ID
		g.Go(func() error {
			if err := t.refreshLikeCount(ctx, gen, commentID); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("comment(%s): %w", commentID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrPartialLoad, errors.Join(errs...))
	}
	return nil
}

// refreshLikeCount stores the server's count for commentID. On failure any
// prior count is left as is.
func (t *CommentThread) refreshLikeCount(ctx context.Context, gen uint64, commentID model.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	count, err := t.api.CommentLikeCount(ctx, commentID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return nil
	}
	t.likeCounts[commentID] = count
	return nil
}

func (t *CommentThread) SetDraft(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.draft = text
}

func (t *CommentThread) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.draft
}

// Submit posts the current draft as a comment by user under agent. The new
// comment is appended to the list with a like count of zero and the draft
// is cleared. On any failure the draft is kept.
func (t *CommentThread) Submit(ctx context.Context, user *model.User, agent *model.Agent) (*model.Comment, error) {
	t.mu.Lock()
	draft, postID, status := t.draft, t.postID, t.status
	t.mu.Unlock()

	if strings.TrimSpace(draft) == "" {
		return nil, ErrBlankComment
	}
	if user == nil || agent == nil {
		return nil, ErrMissingIdentity
	}
	if status == StatusIdle {
		return nil, ErrThreadNotOpen
	}

	creds, err := t.creds.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	created, err := t.api.CreateComment(ctx, creds, postID, dto.CreateCommentRequest{
		Content: draft,
		UserID:  user.ID,
		AgentID: agent.ID,
	})
	if err != nil {
		return nil, err
	}

	comment := *created
	comment.User = user.Author()
	comment.Agent = agent.Author()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.draft = ""
	if t.postID != postID || containsID(t.comments, comment.ID) {
		return &comment, nil
	}
	t.comments = append(t.comments, comment)
	if t.status == StatusLoading {
		t.submitted = append(t.submitted, comment)
	}
	if !comment.ID.IsZero() {
		t.likeCounts[comment.ID] = 0
	}
	return &comment, nil
}

func containsID(comments []model.Comment, id model.ID) bool {
	if id.IsZero() {
		return false
	}
	for _, c := range comments {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Like records a like and then re-reads the comment's count from the server.
// The displayed count only changes once that read succeeds.
func (t *CommentThread) Like(ctx context.Context, commentID model.ID) error {
	creds, err := t.creds.Credentials(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()

	if err := t.api.LikeComment(ctx, creds, commentID); err != nil {
		return err
	}
	return t.refreshLikeCount(ctx, gen, commentID)
}

func (t *CommentThread) LikeCount(commentID model.ID) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.likeCounts[commentID]
	return n, ok
}

type ThreadSnapshot struct {
	PostID     model.ID
	Status     ThreadStatus
	Comments   []model.Comment
	LikeCounts map[model.ID]int64
	Draft      string
}

// LikeLabel is empty until the comment's count has been fetched.
func (s ThreadSnapshot) LikeLabel(commentID model.ID) string {
	n, ok := s.LikeCounts[commentID]
	if !ok {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func (t *CommentThread) Snapshot() ThreadSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[model.ID]int64, len(t.likeCounts))
	for id, n := range t.likeCounts {
		counts[id] = n
	}

	return ThreadSnapshot{
		PostID:     t.postID,
		Status:     t.status,
		Comments:   append([]model.Comment(nil), t.comments...),
		LikeCounts: counts,
		Draft:      t.draft,
	}
}
