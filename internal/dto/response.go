package dto

import (
	"time"

	"github.com/BloggingApp/web-client/internal/model"
)

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// ThreadResponse is the JSON shape of a comment thread snapshot.
// LikeCounts only holds comments whose count has been fetched.
type ThreadResponse struct {
	PostID     model.ID           `json:"postId"`
	Status     string             `json:"status"`
	Comments   []model.Comment    `json:"comments"`
	LikeCounts map[model.ID]int64 `json:"likeCounts"`
}
