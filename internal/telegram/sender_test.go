package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sent      []tgbotapi.Chattable
	failPhoto bool
	failText  bool
	// failTextContaining fails any text send whose body contains the marker.
	failTextContaining string
	// onSend runs before each send attempt is evaluated.
	onSend func()
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.onSend != nil {
		f.onSend()
	}

	switch msg := c.(type) {
	case tgbotapi.PhotoConfig:
		if f.failPhoto {
			return tgbotapi.Message{}, errors.New("photo rejected")
		}
	case tgbotapi.MessageConfig:
		if f.failText {
			return tgbotapi.Message{}, errors.New("text rejected")
		}

		if f.failTextContaining != "" && strings.Contains(msg.Text, f.failTextContaining) {
			return tgbotapi.Message{}, errors.New("text rejected")
		}
	}

	f.sent = append(f.sent, c)

	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func newTestDriver(api API) *Driver {
	logger := zerolog.Nop()
	driver := NewDriver(api, 42, &logger)
	driver.retryBase = time.Millisecond

	return driver
}

func TestDeliverConfirmsFingerprints(t *testing.T) {
	api := &fakeAPI{}
	driver := newTestDriver(api)

	delivered, complete := driver.Deliver(context.Background(), []Block{
		{Text: "uno", Fingerprints: []string{"f1"}},
		{Text: "dos", Fingerprints: []string{"f2"}},
	})

	assert.Equal(t, []string{"f1", "f2"}, delivered)
	assert.True(t, complete)
	assert.Len(t, api.sent, 2)
}

func TestDeliverPhotoFallsBackToText(t *testing.T) {
	api := &fakeAPI{failPhoto: true}
	driver := newTestDriver(api)

	delivered, complete := driver.Deliver(context.Background(), []Block{
		{Text: "con foto", ImageURL: "http://img/a.jpg", Fingerprints: []string{"f1"}},
	})

	// The item still goes out, as plain text.
	assert.Equal(t, []string{"f1"}, delivered)
	assert.True(t, complete)
	require.Len(t, api.sent, 1)

	_, isText := api.sent[0].(tgbotapi.MessageConfig)
	assert.True(t, isText)
}

func TestDeliverFailedItemIsSkippedNotConfirmed(t *testing.T) {
	api := &fakeAPI{failPhoto: true, failText: true}
	driver := newTestDriver(api)

	delivered, complete := driver.Deliver(context.Background(), []Block{
		{Text: "roto", ImageURL: "http://img/a.jpg", Fingerprints: []string{"f1"}},
	})

	assert.Empty(t, delivered)
	assert.False(t, complete)
}

func TestDeliverFailureDoesNotAbortSubsequentItems(t *testing.T) {
	api := &fakeAPI{failTextContaining: "roto"}
	driver := newTestDriver(api)

	delivered, complete := driver.Deliver(context.Background(), []Block{
		{Text: "roto", Fingerprints: []string{"f1"}},
		{Text: "sano", Fingerprints: []string{"f2"}},
	})

	assert.Equal(t, []string{"f2"}, delivered)
	assert.False(t, complete)
}

func TestDeliverMidSequenceFailureIsIncomplete(t *testing.T) {
	api := &fakeAPI{failTextContaining: "parte dos"}
	driver := newTestDriver(api)

	// A multi-part bulletin where everything hangs off the last part.
	delivered, complete := driver.Deliver(context.Background(), []Block{
		{Text: "parte uno"},
		{Text: "parte dos"},
		{Text: "parte tres", Fingerprints: []string{"f1", "f2", "f3"}},
	})

	// The final block went out, so its fingerprints are reported, but the
	// sequence must be flagged incomplete so callers don't commit them.
	assert.Equal(t, []string{"f1", "f2", "f3"}, delivered)
	assert.False(t, complete)
	assert.Len(t, api.sent, 2)
}

func TestDeliverStopsOnCancelledContext(t *testing.T) {
	api := &fakeAPI{}
	driver := newTestDriver(api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	delivered, complete := driver.Deliver(ctx, []Block{
		{Text: "uno", Fingerprints: []string{"f1"}},
	})

	assert.Empty(t, delivered)
	assert.False(t, complete)
	assert.Empty(t, api.sent)
}

func TestDeliverCancellationSkipsInterBlockPause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeAPI{onSend: cancel}
	driver := newTestDriver(api)

	start := time.Now()
	delivered, complete := driver.Deliver(ctx, []Block{
		{Text: "uno", Fingerprints: []string{"f1"}},
		{Text: "dos", Fingerprints: []string{"f2"}},
	})

	assert.Equal(t, []string{"f1"}, delivered)
	assert.False(t, complete)
	assert.Len(t, api.sent, 1)
	assert.Less(t, time.Since(start), sleepBetweenBlocks)
}

func TestSendPhotoUsesMarkdownCaption(t *testing.T) {
	api := &fakeAPI{}
	driver := newTestDriver(api)

	delivered, complete := driver.Deliver(context.Background(), []Block{
		{Text: "pie de foto", ImageURL: "http://img/a.jpg", Fingerprints: []string{"f1"}},
	})

	require.Equal(t, []string{"f1"}, delivered)
	assert.True(t, complete)
	require.Len(t, api.sent, 1)

	photo, ok := api.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "pie de foto", photo.Caption)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, photo.ParseMode)
}
