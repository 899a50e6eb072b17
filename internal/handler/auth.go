package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/BloggingApp/web-client/internal/view"
	"github.com/gin-gonic/gin"
)

// authLogin sends the browser to the identity provider with a state value
// bound to this session.
func (h *Handler) authLogin(c *gin.Context) {
	sess := getSession(c)

	target, err := url.Parse(h.opts.AuthURL)
	if err != nil {
		h.logger.Sugar().Errorf("failed to parse auth url: %s", err.Error())
		c.String(http.StatusInternalServerError, errAuthUnavailable.Error())
		return
	}

	query := target.Query()
	query.Set("state", sess.NewLoginState())
	target.RawQuery = query.Encode()

	c.Redirect(http.StatusSeeOther, target.String())
}

// authCallback is where the identity provider sends the browser back with a
// freshly issued token and the state handed out by authLogin.
func (h *Handler) authCallback(c *gin.Context) {
	sess := getSession(c)

	if !sess.ConsumeLoginState(c.Query("state")) {
		c.String(http.StatusBadRequest, errInvalidState.Error())
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		c.String(http.StatusBadRequest, errMissingToken.Error())
		return
	}

	if err := h.identities.Refresh(c.Request.Context(), sess.ID, token); err != nil {
		h.logger.Sugar().Errorf("failed to store token for session(%s): %s", sess.ID, err.Error())
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) authLogout(c *gin.Context) {
	sess := getSession(c)
	ctx := c.Request.Context()

	user, _ := h.identity(c, sess)
	nav := view.NavigationBar{
		User: user,
		OnLogout: func() {
			if err := h.identities.Revoke(ctx, sess.ID); err != nil {
				h.logger.Sugar().Errorf("failed to log out session(%s): %s", sess.ID, err.Error())
			}
		},
	}
	nav.Logout()

	c.Redirect(http.StatusSeeOther, "/")
}
