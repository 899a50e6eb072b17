package handler

import (
	"time"

	"github.com/BloggingApp/web-client/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

func (h *Handler) sessionMiddleware(c *gin.Context) {
	id, _ := c.Cookie(h.opts.CookieName)

	sess, created := h.sessions.Get(id)
	if created {
		c.SetCookie(h.opts.CookieName, sess.ID, int(h.opts.CookieTTL.Seconds()), "/", "", h.opts.CookieSecure, true)
	}

	c.Set(sessionKey, sess)

	c.Next()
}

func getSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func (h *Handler) loggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	h.logger.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("duration", time.Since(start)),
		zap.String("remote", c.ClientIP()),
	)
}
