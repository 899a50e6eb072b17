package view

import (
	"io"

	"github.com/BloggingApp/web-client/internal/model"
)

// NavigationBar shows the signed-in user with a logout control, or a link
// that navigates the whole page to the identity provider.
type NavigationBar struct {
	User       *model.User
	AuthURL    string
	LogoutPath string
	OnLogout   func()
}

func (n NavigationBar) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "navbar", n)
}

func (n NavigationBar) Logout() {
	if n.OnLogout != nil {
		n.OnLogout()
	}
}
