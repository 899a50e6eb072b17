package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
)

const (
	postContentField = "content"
	postImagesField  = "images"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// CreatePost uploads a new post. The created record is not decoded; callers
// refresh their feed instead.
func (c *Client) CreatePost(ctx context.Context, creds auth.Credentials, input dto.CreatePostRequest) error {
	const op = "posts.create"

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	if err := writer.WriteField(postContentField, input.Content); err != nil {
		return &Error{Op: op, Err: err}
	}

	for _, image := range input.Images {
		if err := writeImagePart(writer, image); err != nil {
			return &Error{Op: op, Err: err}
		}
	}

	if err := writer.Close(); err != nil {
		return &Error{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/posts", &requestBody, &creds)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(op, req, nil)
}

func writeImagePart(writer *multipart.Writer, image model.Attachment) error {
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		postImagesField, quoteEscaper.Replace(image.Filename)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(image.Data)
	return err
}
