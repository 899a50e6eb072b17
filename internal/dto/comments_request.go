package dto

type CreateCommentRequest struct {
	Content string `json:"content"`
	UserID  int64  `json:"userId"`
	AgentID int64  `json:"agentId"`
}

type LikeCountResponse struct {
	LikeCount int64 `json:"likeCount"`
}
