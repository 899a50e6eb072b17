package model

import "time"

const (
	DefaultCommentAvatar = "/default-avatar.png"
	UnknownAuthorName    = "Unknown"
)

type Author struct {
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

type Comment struct {
	ID        ID        `json:"id"`
	PostID    ID        `json:"postId"`
	UserID    int64     `json:"userId,omitempty"`
	AgentID   int64     `json:"agentId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	User      *Author   `json:"User,omitempty"`
	Agent     *Author   `json:"Agent,omitempty"`
}

func (c Comment) AuthorName() string {
	if c.User == nil || c.User.Name == "" {
		return UnknownAuthorName
	}
	return c.User.Name
}

func (c Comment) AvatarURL() string {
	if c.User == nil || c.User.ProfilePicture == "" {
		return DefaultCommentAvatar
	}
	return c.User.ProfilePicture
}
