package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
)

func commentsForPostEndpoint(postID model.ID) string {
	return "/comments/post/" + url.PathEscape(postID.String())
}

func commentEndpoint(commentID model.ID, action string) string {
	return "/comments/" + url.PathEscape(commentID.String()) + "/" + action
}

func (c *Client) PostComments(ctx context.Context, creds auth.Credentials, postID model.ID) ([]model.Comment, error) {
	const op = "comments.list"

	req, err := c.newRequest(ctx, http.MethodGet, commentsForPostEndpoint(postID), nil, &creds)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var comments []model.Comment
	if err := c.do(op, req, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentLikeCount is unauthenticated.
func (c *Client) CommentLikeCount(ctx context.Context, commentID model.ID) (int64, error) {
	const op = "comments.count"

	req, err := c.newRequest(ctx, http.MethodGet, commentEndpoint(commentID, "count"), nil, nil)
	if err != nil {
		return 0, &Error{Op: op, Err: err}
	}

	var body dto.LikeCountResponse
	if err := c.do(op, req, &body); err != nil {
		return 0, err
	}
	if body.LikeCount < 0 {
		return 0, &Error{Op: op, StatusCode: http.StatusOK, Err: ErrNegativeLikeCount}
	}
	return body.LikeCount, nil
}

func (c *Client) CreateComment(ctx context.Context, creds auth.Credentials, postID model.ID, input dto.CreateCommentRequest) (*model.Comment, error) {
	const op = "comments.create"

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, commentsForPostEndpoint(postID), bytes.NewReader(payload), &creds)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var created model.Comment
	if err := c.do(op, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// LikeComment sends an empty body; the acknowledgement is not parsed.
func (c *Client) LikeComment(ctx context.Context, creds auth.Credentials, commentID model.ID) error {
	const op = "comments.like"

	req, err := c.newRequest(ctx, http.MethodPost, commentEndpoint(commentID, "like"), nil, &creds)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req, nil)
}
