package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
	"github.com/BloggingApp/web-client/internal/service"
	"github.com/BloggingApp/web-client/internal/view"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postPage(c *gin.Context) {
	sess := getSession(c)

	postID, ok := postIDParam(c)
	if !ok {
		c.String(http.StatusBadRequest, errInvalidPostID.Error())
		return
	}

	h.report(sess.Thread.Open(c.Request.Context(), postID), "load comments of post(%s)", postID)

	user, _ := h.identity(c, sess)
	alert, flash := sess.TakeMessages()

	c.HTML(http.StatusOK, "page", view.Page{
		Nav: view.NavigationBar{
			User:       user,
			AuthURL:    loginPath,
			LogoutPath: logoutPath,
		},
		Composer: view.ComposerView{
			Text:       sess.Composer.Text(),
			Images:     sess.Composer.Images(),
			Alert:      alert,
			ReturnPath: postPath(postID),
		},
		Thread: sess.Thread.Snapshot(),
		Flash:  flash,
	})
}

func (h *Handler) threadReload(c *gin.Context) {
	sess := getSession(c)

	postID, ok := postIDParam(c)
	if !ok {
		c.String(http.StatusBadRequest, errInvalidPostID.Error())
		return
	}

	ctx := c.Request.Context()
	if sess.Thread.Snapshot().PostID == postID {
		h.report(sess.Thread.Reload(ctx), "reload comments of post(%s)", postID)
	} else {
		h.report(sess.Thread.Open(ctx, postID), "load comments of post(%s)", postID)
	}

	c.Redirect(http.StatusSeeOther, postPath(postID))
}

func (h *Handler) commentsSubmit(c *gin.Context) {
	sess := getSession(c)

	postID, ok := postIDParam(c)
	if !ok {
		c.String(http.StatusBadRequest, errInvalidPostID.Error())
		return
	}

	ctx := c.Request.Context()
	h.report(sess.Thread.Open(ctx, postID), "load comments of post(%s)", postID)

	sess.Thread.SetDraft(c.PostForm("content"))

	user, agent := h.identity(c, sess)
	_, err := sess.Thread.Submit(ctx, user, agent)
	h.report(err, "submit comment to post(%s)", postID)

	c.Redirect(http.StatusSeeOther, postPath(postID))
}

func (h *Handler) commentsLike(c *gin.Context) {
	sess := getSession(c)

	postID, ok := postIDParam(c)
	commentID := model.ID(strings.TrimSpace(c.Param("commentID")))
	if !ok || commentID.IsZero() {
		c.String(http.StatusBadRequest, errInvalidID.Error())
		return
	}

	ctx := c.Request.Context()
	h.report(sess.Thread.Open(ctx, postID), "load comments of post(%s)", postID)
	h.report(sess.Thread.Like(ctx, commentID), "like comment(%s)", commentID)

	c.Redirect(http.StatusSeeOther, postPath(postID)+"#comment-"+commentID.String())
}

func (h *Handler) commentsGet(c *gin.Context) {
	sess := getSession(c)

	postID, ok := postIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	err := sess.Thread.Open(c.Request.Context(), postID)
	h.report(err, "load comments of post(%s)", postID)
	if err != nil && !errors.Is(err, service.ErrPartialLoad) {
		c.JSON(http.StatusBadGateway, dto.NewBasicResponse(false, errFetchComments.Error()))
		return
	}

	snap := sess.Thread.Snapshot()
	c.JSON(http.StatusOK, dto.ThreadResponse{
		PostID:     snap.PostID,
		Status:     snap.Status.String(),
		Comments:   snap.Comments,
		LikeCounts: snap.LikeCounts,
	})
}
