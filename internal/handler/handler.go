package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/BloggingApp/web-client/internal/model"
	"github.com/BloggingApp/web-client/internal/service"
	"github.com/BloggingApp/web-client/internal/session"
	"github.com/BloggingApp/web-client/internal/view"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Identities resolves and updates the signed-in identity of a session.
type Identities interface {
	Identity(ctx context.Context, sessionID string) (*model.User, *model.Agent, error)
	Refresh(ctx context.Context, sessionID string, token string) error
	Revoke(ctx context.Context, sessionID string) error
}

const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
)

type Options struct {
	AuthURL            string
	ClientOrigin       string
	DefaultPostID      string
	CookieName         string
	CookieTTL          time.Duration
	CookieSecure       bool
	MaxAttachmentBytes int64
	Metrics            http.Handler
}

type Handler struct {
	logger     *zap.Logger
	sessions   *session.Store
	identities Identities
	opts       Options
}

func New(logger *zap.Logger, sessions *session.Store, identities Identities, opts Options) *Handler {
	return &Handler{
		logger:     logger,
		sessions:   sessions,
		identities: identities,
		opts:       opts,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.loggerMiddleware)
	r.SetHTMLTemplate(view.Templates())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if h.opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.opts.Metrics))
	}

	web := r.Group("", h.sessionMiddleware)
	{
		web.GET("/", h.home)

		posts := web.Group("/posts/:postID")
		{
			posts.GET("", h.postPage)
			posts.POST("/reload", h.threadReload)
			posts.POST("/comments", h.commentsSubmit)
			posts.POST("/comments/:commentID/like", h.commentsLike)
		}

		composer := web.Group("/composer")
		{
			composer.POST("", h.composerSubmit)
			composer.POST("/images", h.composerSelectImages)
		}

		auth := web.Group("/auth")
		{
			auth.GET("/login", h.authLogin)
			auth.GET("/callback", h.authCallback)
			auth.POST("/logout", h.authLogout)
		}
	}

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.opts.ClientOrigin},
		AllowMethods:     []string{"GET"},
		AllowCredentials: true,
	}))
	api.Use(h.sessionMiddleware)
	{
		api.GET("/posts/:postID/comments", h.commentsGet)
	}

	return r
}

func (h *Handler) home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, postPath(model.ID(h.opts.DefaultPostID)))
}

func (h *Handler) identity(c *gin.Context, sess *session.Session) (*model.User, *model.Agent) {
	user, agent, err := h.identities.Identity(c.Request.Context(), sess.ID)
	if err != nil {
		h.logger.Sugar().Warnf("failed to resolve identity of session(%s): %s", sess.ID, err.Error())
		return nil, nil
	}
	return user, agent
}

// report logs a failed component operation. Outcomes the page already
// reflects, such as a blank draft, are not logged.
func (h *Handler) report(err error, format string, args ...any) {
	switch {
	case err == nil:
		return
	case errors.Is(err, service.ErrSuperseded),
		errors.Is(err, service.ErrBlankComment),
		errors.Is(err, service.ErrMissingIdentity),
		errors.Is(err, service.ErrEmptyPost),
		errors.Is(err, service.ErrAttachmentTooLarge),
		errors.Is(err, service.ErrTooManyAttachments):
		h.logger.Sugar().Debugf("skipped "+format+": %s", append(args, err.Error())...)
	case errors.Is(err, service.ErrPartialLoad):
		h.logger.Sugar().Warnf("partially failed to "+format+": %s", append(args, err.Error())...)
	default:
		h.logger.Sugar().Errorf("failed to "+format+": %s", append(args, err.Error())...)
	}
}

func postIDParam(c *gin.Context) (model.ID, bool) {
	postID := model.ID(strings.TrimSpace(c.Param("postID")))
	return postID, !postID.IsZero()
}

func postPath(postID model.ID) string {
	return "/posts/" + postID.String()
}

// returnPath keeps redirects on this site.
func returnPath(c *gin.Context) string {
	next := c.Query("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
