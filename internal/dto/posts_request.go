package dto

import "github.com/BloggingApp/web-client/internal/model"

type CreatePostRequest struct {
	Content string
	Images  []model.Attachment
}
