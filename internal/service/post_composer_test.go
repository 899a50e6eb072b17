package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BloggingApp/web-client/internal/model"
)

type composerEvents struct {
	created int
	alerts  []string
}

func newRecordedComposer(api *fakeAPI) (*PostComposer, *composerEvents) {
	events := &composerEvents{}
	composer := newTestService(api).NewPostComposer(
		testCreds,
		func() { events.created++ },
		func(message string) { events.alerts = append(events.alerts, message) },
	)
	return composer, events
}

func TestSubmitEmptyPostAlerts(t *testing.T) {
	api := newFakeAPI()
	composer, events := newRecordedComposer(api)

	composer.SetText("   ")
	if err := composer.Submit(context.Background()); !errors.Is(err, ErrEmptyPost) {
		t.Fatalf("expected ErrEmptyPost, got %v", err)
	}
	if len(events.alerts) != 1 || events.alerts[0] != EmptyPostMessage {
		t.Fatalf("expected one alert, got %v", events.alerts)
	}
	if _, _, _, _, posts := api.calls(); posts != 0 {
		t.Fatalf("expected no network call, got %d", posts)
	}
	if events.created != 0 {
		t.Fatalf("callback must not run")
	}
}

func TestSubmitImagesOnly(t *testing.T) {
	api := newFakeAPI()
	composer, events := newRecordedComposer(api)

	if err := composer.SelectImages(model.Attachment{Filename: "a.png", Data: []byte("a")}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := composer.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(api.posts) != 1 || len(api.posts[0].Images) != 1 {
		t.Fatalf("unexpected posts %+v", api.posts)
	}
	if events.created != 1 || len(events.alerts) != 0 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestSubmitPostSuccessClearsDraft(t *testing.T) {
	api := newFakeAPI()
	composer, events := newRecordedComposer(api)

	composer.SetText("hello world")
	_ = composer.SelectImages(model.Attachment{Filename: "a.png", Data: []byte("a")})
	if err := composer.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if api.posts[0].Content != "hello world" {
		t.Fatalf("unexpected content %q", api.posts[0].Content)
	}
	if composer.Text() != "" || len(composer.Images()) != 0 {
		t.Fatalf("draft must be cleared")
	}
	if events.created != 1 {
		t.Fatalf("expected callback once, got %d", events.created)
	}
}

func TestSubmitPostFailureKeepsDraft(t *testing.T) {
	api := newFakeAPI()
	api.postErr = errBoom
	composer, events := newRecordedComposer(api)

	composer.SetText("hello world")
	_ = composer.SelectImages(model.Attachment{Filename: "a.png", Data: []byte("a")})
	if err := composer.Submit(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("expected post error, got %v", err)
	}
	if composer.Text() != "hello world" || len(composer.Images()) != 1 {
		t.Fatalf("draft must be kept on failure")
	}
	if events.created != 0 || len(events.alerts) != 0 {
		t.Fatalf("failure must not call back or alert: %+v", events)
	}
}

func TestSelectImagesIsCumulative(t *testing.T) {
	composer, _ := newRecordedComposer(newFakeAPI())

	_ = composer.SelectImages(model.Attachment{Filename: "a.png"}, model.Attachment{Filename: "b.png"})
	_ = composer.SelectImages(model.Attachment{Filename: "c.png"})

	images := composer.Images()
	if len(images) != 3 || images[0].Filename != "a.png" || images[2].Filename != "c.png" {
		t.Fatalf("unexpected images %+v", images)
	}
}

func TestSelectImagesRejectsOversized(t *testing.T) {
	composer, events := newRecordedComposer(newFakeAPI())

	err := composer.SelectImages(
		model.Attachment{Filename: "ok.png", Data: []byte("ok")},
		model.Attachment{Filename: "big.png", Data: []byte("123456789")},
	)
	if !errors.Is(err, ErrAttachmentTooLarge) {
		t.Fatalf("expected ErrAttachmentTooLarge, got %v", err)
	}
	if len(composer.Images()) != 0 {
		t.Fatalf("no file may be added when one is rejected")
	}
	if len(events.alerts) != 1 || events.alerts[0] != AttachmentTooLargeMessage {
		t.Fatalf("expected a size alert, got %v", events.alerts)
	}
}

func TestSelectImagesRejectsTooMany(t *testing.T) {
	composer, events := newRecordedComposer(newFakeAPI())

	if err := composer.SelectImages(model.Attachment{Filename: "a.png"}, model.Attachment{Filename: "b.png"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	err := composer.SelectImages(model.Attachment{Filename: "c.png"}, model.Attachment{Filename: "d.png"})
	if !errors.Is(err, ErrTooManyAttachments) {
		t.Fatalf("expected ErrTooManyAttachments, got %v", err)
	}
	if n := len(composer.Images()); n != 2 {
		t.Fatalf("expected the first selection only, got %d images", n)
	}
	if len(events.alerts) != 1 || events.alerts[0] != TooManyAttachmentsMessage {
		t.Fatalf("expected a count alert, got %v", events.alerts)
	}
}
