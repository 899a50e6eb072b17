package model

const DefaultNavbarAvatar = "https://via.placeholder.com/40"

// User is the signed-in account. Components treat it as read-only.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

func (u User) Author() *Author {
	return &Author{Name: u.Name, ProfilePicture: u.ProfilePicture}
}

func (u User) AvatarURL() string {
	if u.ProfilePicture == "" {
		return DefaultNavbarAvatar
	}
	return u.ProfilePicture
}

// Agent is the secondary identity a comment is filed under.
type Agent struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

func (a Agent) Author() *Author {
	return &Author{Name: a.Name, ProfilePicture: a.ProfilePicture}
}
