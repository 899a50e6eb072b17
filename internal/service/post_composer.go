package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"github.com/BloggingApp/web-client/internal/dto"
	"github.com/BloggingApp/web-client/internal/model"
)

// PostComposer collects the text and images of a new post.
type PostComposer struct {
	api           PostAPI
	creds         auth.Provider
	maxBytes      int64
	maxImages     int
	onPostCreated func()
	alert         func(message string)

	mu     sync.Mutex
	text   string
	images []model.Attachment
}

func newPostComposer(api PostAPI, creds auth.Provider, cfg config.ComposerConfig, onPostCreated func(), alert func(string)) *PostComposer {
	return &PostComposer{
		api:           api,
		creds:         creds,
		maxBytes:      cfg.MaxAttachmentBytes,
		maxImages:     cfg.MaxAttachments,
		onPostCreated: onPostCreated,
		alert:         alert,
	}
}

func (p *PostComposer) SetText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.text = text
}

func (p *PostComposer) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.text
}

// SelectImages appends files to the pending attachments. Nothing is added
// if any file exceeds the size limit or the draft would hold more images
// than allowed; the alert callback is told why.
func (p *PostComposer) SelectImages(files ...model.Attachment) error {
	if p.maxBytes > 0 {
		for _, f := range files {
			if f.Size() > p.maxBytes {
				p.notify(AttachmentTooLargeMessage)
				return fmt.Errorf("%w: %s", ErrAttachmentTooLarge, f.Filename)
			}
		}
	}

	p.mu.Lock()
	if p.maxImages > 0 && len(p.images)+len(files) > p.maxImages {
		p.mu.Unlock()
		p.notify(TooManyAttachmentsMessage)
		return fmt.Errorf("%w: limit is %d", ErrTooManyAttachments, p.maxImages)
	}
	p.images = append(p.images, files...)
	p.mu.Unlock()

	return nil
}

func (p *PostComposer) notify(message string) {
	if p.alert != nil {
		p.alert(message)
	}
}

func (p *PostComposer) Images() []model.Attachment {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]model.Attachment(nil), p.images...)
}

// Submit uploads the draft. A draft with blank text and no images is
// rejected with ErrEmptyPost before any request is made. On success the
// draft is cleared and onPostCreated is called once; on failure the draft
// is left as it was.
func (p *PostComposer) Submit(ctx context.Context) error {
	p.mu.Lock()
	text := p.text
	images := append([]model.Attachment(nil), p.images...)
	p.mu.Unlock()

	if strings.TrimSpace(text) == "" && len(images) == 0 {
		p.notify(EmptyPostMessage)
		return ErrEmptyPost
	}

	creds, err := p.creds.Credentials(ctx)
	if err != nil {
		return err
	}

	if err := p.api.CreatePost(ctx, creds, dto.CreatePostRequest{
		Content: text,
		Images:  images,
	}); err != nil {
		return err
	}

	p.mu.Lock()
	p.text = ""
	p.images = nil
	p.mu.Unlock()

	if p.onPostCreated != nil {
		p.onPostCreated()
	}
	return nil
}
