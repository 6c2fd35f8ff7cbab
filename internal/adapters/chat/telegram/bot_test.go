package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.MessageConfig
	fileURL string
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetFileDirectURL(string) (string, error) {
	if f.fileURL == "" {
		return "", errors.New("no file")
	}
	return f.fileURL, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return f.updates }
func (f *fakeAPI) StopReceivingUpdates()                                        { f.stopped = true }

func (f *fakeAPI) sentMessages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

type recordingTurns struct {
	mu    sync.Mutex
	turns []conversation.Turn
	reply conversation.Reply
}

func (r *recordingTurns) Handle(_ context.Context, t conversation.Turn) conversation.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, t)
	return r.reply
}

func textMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{From: &tgbotapi.User{ID: userID}, Chat: &tgbotapi.Chat{ID: userID}, Text: text}
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := New(Config{Token: "  "}, &recordingTurns{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTurnFromMessage(t *testing.T) {
	ctx := context.Background()
	noFetch := func(context.Context, string) ([]byte, error) { return nil, errors.New("unexpected") }

	turn, ok, err := turnFromMessage(ctx, textMessage(42, "Add pet"), noFetch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tg:42", turn.OwnerID)
	assert.Equal(t, conversation.TurnText, turn.Kind)
	assert.Equal(t, "Add pet", turn.Text)

	loc := textMessage(42, "")
	loc.Location = &tgbotapi.Location{Latitude: 25.03, Longitude: 121.56}
	turn, ok, err = turnFromMessage(ctx, loc, noFetch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, conversation.ChoiceCurrentLocation, turn.Text)
	assert.Equal(t, &conversation.Location{Lat: 25.03, Lon: 121.56}, turn.Location)

	photo := textMessage(42, "")
	photo.Photo = []tgbotapi.PhotoSize{
		{FileID: "small", Width: 90, Height: 90},
		{FileID: "large", Width: 1280, Height: 960},
		{FileID: "medium", Width: 320, Height: 240},
	}
	var gotID string
	turn, ok, err = turnFromMessage(ctx, photo, func(_ context.Context, id string) ([]byte, error) {
		gotID = id
		return []byte("jpeg"), nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "large", gotID)
	assert.Equal(t, conversation.TurnImage, turn.Kind)
	assert.Equal(t, []byte("jpeg"), turn.Image)

	_, ok, err = turnFromMessage(ctx, &tgbotapi.Message{Text: "no user"}, noFetch)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = turnFromMessage(ctx, textMessage(1, "   "), noFetch)
	assert.False(t, ok)
}

func TestReplyMessage_Keyboard(t *testing.T) {
	msg := replyMessage(7, conversation.Reply{
		Text: "Choose",
		QuickReplies: []conversation.QuickReply{
			{Label: conversation.ChoiceCurrentLocation, Action: conversation.ActionLocation},
			{Label: conversation.ChoiceLandmarkName, Action: conversation.ActionMessage},
		},
	})
	assert.Equal(t, int64(7), msg.ChatID)
	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.OneTimeKeyboard)
	require.Len(t, kb.Keyboard, 1)
	require.Len(t, kb.Keyboard[0], 2)
	assert.True(t, kb.Keyboard[0][0].RequestLocation)
	assert.Equal(t, conversation.ChoiceLandmarkName, kb.Keyboard[0][1].Text)

	msg = replyMessage(7, conversation.Reply{
		Text:         "Upload",
		QuickReplies: []conversation.QuickReply{{Label: "Camera", Action: conversation.ActionCamera}},
	})
	_, ok = msg.ReplyMarkup.(tgbotapi.ReplyKeyboardRemove)
	assert.True(t, ok)
}

func TestHandleMessage_DownloadsPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	api := &fakeAPI{fileURL: srv.URL + "/file.jpg"}
	turns := &recordingTurns{reply: conversation.Reply{Text: "How many grams?"}}
	b := newWithAPI(api, Config{}, turns, nil)

	msg := textMessage(9, "")
	msg.Photo = []tgbotapi.PhotoSize{{FileID: "f1", Width: 10, Height: 10}}
	b.handleMessage(context.Background(), msg)

	require.Len(t, turns.turns, 1)
	assert.Equal(t, []byte("jpeg-bytes"), turns.turns[0].Image)
	sent := api.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "How many grams?", sent[0].Text)
}

func TestHandleMessage_PhotoFailureReplies(t *testing.T) {
	api := &fakeAPI{}
	turns := &recordingTurns{}
	b := newWithAPI(api, Config{}, turns, nil)

	msg := textMessage(9, "")
	msg.Photo = []tgbotapi.PhotoSize{{FileID: "f1"}}
	b.handleMessage(context.Background(), msg)

	assert.Empty(t, turns.turns)
	sent := api.sentMessages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "Error processing the image")
}

func TestRun_StopsWhenUpdatesClose(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1)}
	turns := &recordingTurns{reply: conversation.Reply{Text: "hi"}}
	b := newWithAPI(api, Config{}, turns, nil)

	api.updates <- tgbotapi.Update{Message: textMessage(1, "hello")}
	close(api.updates)

	require.NoError(t, b.Run(context.Background()))
	assert.True(t, api.stopped)
	assert.Len(t, api.sentMessages(), 1)
}

// slowTurns tarda en el primer mensaje para que el segundo llegue antes si
// no hubiera orden por usuario.
type slowTurns struct {
	mu    sync.Mutex
	texts []string
}

func (s *slowTurns) Handle(_ context.Context, t conversation.Turn) conversation.Reply {
	if t.Text == "Add pet" {
		time.Sleep(30 * time.Millisecond)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, t.OwnerID+" "+t.Text)
	return conversation.Reply{Text: "ok"}
}

func TestRun_KeepsArrivalOrderPerUser(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 3)}
	turns := &slowTurns{}
	b := newWithAPI(api, Config{Workers: 4}, turns, nil)

	api.updates <- tgbotapi.Update{Message: textMessage(1, "Add pet")}
	api.updates <- tgbotapi.Update{Message: textMessage(1, "name: Rex")}
	api.updates <- tgbotapi.Update{Message: textMessage(2, "hello")}
	close(api.updates)

	require.NoError(t, b.Run(context.Background()))

	var own []string
	for _, s := range turns.texts {
		if s[:4] == "tg:1" {
			own = append(own, s)
		}
	}
	assert.Equal(t, []string{"tg:1 Add pet", "tg:1 name: Rex"}, own)
	assert.Len(t, turns.texts, 3)
}

type blockingTurns struct {
	started  chan struct{}
	release  chan struct{}
	finished atomic.Bool
}

func (b *blockingTurns) Handle(context.Context, conversation.Turn) conversation.Reply {
	close(b.started)
	<-b.release
	b.finished.Store(true)
	return conversation.Reply{Text: "ok"}
}

func TestRun_WaitsForInFlightTurns(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1)}
	turns := &blockingTurns{started: make(chan struct{}), release: make(chan struct{})}
	b := newWithAPI(api, Config{}, turns, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	api.updates <- tgbotapi.Update{Message: textMessage(1, "hello")}
	<-turns.started
	cancel()

	select {
	case <-done:
		t.Fatal("Run returned while a turn was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(turns.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the turn finished")
	}
	assert.True(t, turns.finished.Load())
	assert.Len(t, api.sentMessages(), 1)
}

func TestQueueIndex_SameUserSameQueue(t *testing.T) {
	assert.Equal(t, queueIndex(textMessage(42, "a"), 8), queueIndex(textMessage(42, "b"), 8))
	assert.Equal(t, 1, queueIndex(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -9}}, 8))
	assert.Equal(t, 0, queueIndex(&tgbotapi.Message{}, 8))
}
