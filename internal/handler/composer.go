package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/BloggingApp/web-client/internal/model"
	"github.com/BloggingApp/web-client/internal/session"
	"github.com/gin-gonic/gin"
)

const imagesField = "images"

func (h *Handler) composerSelectImages(c *gin.Context) {
	sess := getSession(c)

	h.report(h.collectDraft(c, sess), "select images for session(%s)", sess.ID)

	c.Redirect(http.StatusSeeOther, returnPath(c))
}

// composerSubmit does not post when the picked files were rejected, so a
// post never goes out without the images the user attached.
func (h *Handler) composerSubmit(c *gin.Context) {
	sess := getSession(c)

	if err := h.collectDraft(c, sess); err != nil {
		h.report(err, "select images for session(%s)", sess.ID)
	} else {
		h.report(sess.Composer.Submit(c.Request.Context()), "create post for session(%s)", sess.ID)
	}

	c.Redirect(http.StatusSeeOther, returnPath(c))
}

// collectDraft copies the submitted text and any newly picked files into the
// session's composer.
func (h *Handler) collectDraft(c *gin.Context, sess *session.Session) error {
	sess.Composer.SetText(c.PostForm("content"))

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil
		}
		return err
	}

	attachments, err := readAttachments(form.File[imagesField], h.opts.MaxAttachmentBytes)
	if err != nil {
		return err
	}
	if len(attachments) == 0 {
		return nil
	}
	return sess.Composer.SelectImages(attachments...)
}

// readAttachments reads at most limit+1 bytes per file so oversized files
// are still detectable without buffering them whole.
func readAttachments(headers []*multipart.FileHeader, limit int64) ([]model.Attachment, error) {
	var attachments []model.Attachment
	for _, fh := range headers {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}

		file, err := fh.Open()
		if err != nil {
			return nil, err
		}

		var r io.Reader = file
		if limit > 0 {
			r = io.LimitReader(file, limit+1)
		}
		data, err := io.ReadAll(r)
		file.Close()
		if err != nil {
			return nil, err
		}

		attachments = append(attachments, model.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return attachments, nil
}
