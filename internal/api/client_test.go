package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

var testCreds = auth.Credentials{Token: "tok-123"}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(
		config.APIConfig{Origin: srv.URL + "/", Timeout: time.Second},
		WithHTTPClient(srv.Client()),
		WithMetrics(NewMetrics(prometheus.NewRegistry())),
	)
}

func TestPostComments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/comments/post/9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected authorization %q", got)
		}
		_, _ = io.WriteString(w, `[
			{"id": 1, "content": "first", "createdAt": "2024-05-01T10:00:00Z", "User": {"name": "ann", "profile_picture": "/a.png"}},
			{"id": "2", "content": "second", "createdAt": "2024-05-01T11:00:00Z"}
		]`)
	})

	comments, err := c.PostComments(context.Background(), testCreds, "9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].ID != "1" || comments[1].ID != "2" {
		t.Fatalf("unexpected ids %q %q", comments[0].ID, comments[1].ID)
	}
	if comments[0].AuthorName() != "ann" || comments[1].AuthorName() != model.UnknownAuthorName {
		t.Fatalf("unexpected authors %q %q", comments[0].AuthorName(), comments[1].AuthorName())
	}
}

func TestCommentLikeCountIsUnauthenticated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/5/count" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("count request must not carry credentials")
		}
		_, _ = io.WriteString(w, `{"likeCount": 4}`)
	})

	n, err := c.CommentLikeCount(context.Background(), "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4, got %d", n)
	}
}

func TestCommentLikeCountRejectsNegative(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"likeCount": -1}`)
	})

	if _, err := c.CommentLikeCount(context.Background(), "5"); !errors.Is(err, ErrNegativeLikeCount) {
		t.Fatalf("expected ErrNegativeLikeCount, got %v", err)
	}
}

func TestCreateComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/comments/post/9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["content"] != "hello" || body["userId"] != float64(7) || body["agentId"] != float64(3) {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 11, "content": "hello", "createdAt": "2024-05-01T12:00:00Z"}`)
	})

	created, err := c.CreateComment(context.Background(), testCreds, "9", dto.CreateCommentRequest{
		Content: "hello",
		UserID:  7,
		AgentID: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "11" {
		t.Fatalf("expected id 11, got %q", created.ID)
	}
}

func TestLikeCommentSendsEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/comments/5/like" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if len(body) != 0 {
			t.Errorf("expected empty body, got %q", body)
		}
		_, _ = io.WriteString(w, `not json`)
	})

	if err := c.LikeComment(context.Background(), testCreds, "5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreatePostMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if got := r.FormValue("content"); got != "hi there" {
			t.Errorf("unexpected content %q", got)
		}
		files := r.MultipartForm.File["images"]
		if len(files) != 2 {
			t.Errorf("expected 2 images, got %d", len(files))
			return
		}
		if files[0].Filename != "a.png" || files[0].Header.Get("Content-Type") != "image/png" {
			t.Errorf("unexpected first image %q %q", files[0].Filename, files[0].Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusCreated)
	})

	err := c.CreatePost(context.Background(), testCreds, dto.CreatePostRequest{
		Content: "hi there",
		Images: []model.Attachment{
			{Filename: "a.png", ContentType: "image/png", Data: []byte("png")},
			{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNonSuccessStatusIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"details": "nope"}`)
	})

	_, err := c.PostComments(context.Background(), auth.Credentials{}, "1")
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", StatusCode(err))
	}
}

func TestTransportFailure(t *testing.T) {
	c := New(config.APIConfig{Origin: "http://127.0.0.1:1", Timeout: time.Second})

	err := c.LikeComment(context.Background(), testCreds, "1")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("expected no status for transport failure, got %d", apiErr.StatusCode)
	}
}

func TestAuthURL(t *testing.T) {
	c := New(config.APIConfig{Origin: "http://localhost:5000/"})
	if got := c.AuthURL(); got != "http://localhost:5000/auth/google" {
		t.Fatalf("unexpected auth url %q", got)
	}
}
