// Package telegram conecta la máquina de conversación con la Bot API por long polling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
	"github.com/weijenchou/dogdietlinebot/internal/platform/httpclient"
	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
)

var (
	ErrNotConfigured = errors.New("telegram: bot token not configured")
	ErrUpstream      = errors.New("telegram: upstream error")
)

const (
	defaultPollTimeout   = 60 // segundos
	defaultMaxImageBytes = 10 << 20
	defaultWorkers       = 8
	queueSize            = 32
	ownerPrefix          = "tg:"
)

// TurnHandler es lo que el bot necesita de la máquina.
type TurnHandler interface {
	Handle(ctx context.Context, t conversation.Turn) conversation.Reply
}

// botAPI es el subconjunto de *tgbotapi.BotAPI que usamos.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Config struct {
	Token         string
	PollTimeout   int // segundos
	MaxImageBytes int64
	Debug         bool

	// Workers es la cantidad de colas; un usuario siempre cae en la misma.
	Workers int
}

type Bot struct {
	api      botAPI
	turns    TurnHandler
	http     *httpclient.Client
	log      logger.Logger
	poll     int
	maxImage int64
	workers  int
}

func New(cfg Config, turns TurnHandler, log logger.Logger) (*Bot, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, ErrNotConfigured
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	api.Debug = cfg.Debug
	return newWithAPI(api, cfg, turns, log), nil
}

func newWithAPI(api botAPI, cfg Config, turns TurnHandler, log logger.Logger) *Bot {
	if log == nil {
		log = logger.Nop()
	}
	b := &Bot{
		api:      api,
		turns:    turns,
		http:     httpclient.New(20 * time.Second),
		log:      log,
		poll:     cfg.PollTimeout,
		maxImage: cfg.MaxImageBytes,
		workers:  cfg.Workers,
	}
	b.http.Retries = 1
	if b.poll <= 0 {
		b.poll = defaultPollTimeout
	}
	if b.maxImage <= 0 {
		b.maxImage = defaultMaxImageBytes
	}
	if b.workers <= 0 {
		b.workers = defaultWorkers
	}
	return b
}

// Run procesa updates hasta que ctx se cancele. Los mensajes de un mismo
// usuario pasan por una sola cola FIFO, así se atienden en orden de llegada.
// Antes de volver espera a los turnos en curso; lo encolado tras la
// cancelación se descarta.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.poll
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	queues := make([]chan *tgbotapi.Message, b.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan *tgbotapi.Message, queueSize)
		wg.Add(1)
		go func(q <-chan *tgbotapi.Message) {
			defer wg.Done()
			for msg := range q {
				if ctx.Err() != nil {
					continue
				}
				b.handleMessage(ctx, msg)
			}
		}(queues[i])
	}
	defer func() {
		for _, q := range queues {
			close(q)
		}
		wg.Wait()
	}()

	b.log.Info("telegram polling started", map[string]any{"timeout_s": b.poll, "workers": b.workers})
	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil {
				continue
			}
			select {
			case queues[queueIndex(upd.Message, len(queues))] <- upd.Message:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// queueIndex reparte por usuario (o chat si no hay usuario).
func queueIndex(msg *tgbotapi.Message, n int) int {
	var id int64
	switch {
	case msg.From != nil:
		id = msg.From.ID
	case msg.Chat != nil:
		id = msg.Chat.ID
	}
	if id < 0 {
		id = -id
	}
	return int(id % int64(n))
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	t, ok, err := turnFromMessage(ctx, msg, b.fetchPhoto)
	if err != nil {
		b.log.Error("telegram photo download failed", map[string]any{"chat_id": msg.Chat.ID, "error": err})
		b.send(msg.Chat.ID, conversation.Reply{Text: "Error processing the image, please try again."})
		return
	}
	if !ok {
		return
	}
	b.send(msg.Chat.ID, b.turns.Handle(ctx, t))
}

func (b *Bot) send(chatID int64, r conversation.Reply) {
	if _, err := b.api.Send(replyMessage(chatID, r)); err != nil {
		b.log.Error("telegram send failed", map[string]any{"chat_id": chatID, "error": err})
	}
}

func (b *Bot) fetchPhoto(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	img, err := b.http.GetBytes(ctx, url, b.maxImage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return img, nil
}

// OwnerID es el owner de un usuario de Telegram.
func OwnerID(userID int64) string {
	return ownerPrefix + strconv.FormatInt(userID, 10)
}

type photoFetcher func(ctx context.Context, fileID string) ([]byte, error)

// turnFromMessage traduce un mensaje. ok=false si no hay nada que procesar
// (sticker, mensaje sin usuario, etc.).
func turnFromMessage(ctx context.Context, msg *tgbotapi.Message, fetch photoFetcher) (conversation.Turn, bool, error) {
	if msg == nil || msg.From == nil {
		return conversation.Turn{}, false, nil
	}
	owner := OwnerID(msg.From.ID)

	switch {
	case len(msg.Photo) > 0:
		img, err := fetch(ctx, largestPhoto(msg.Photo).FileID)
		if err != nil {
			return conversation.Turn{}, false, err
		}
		return conversation.ImageTurn(owner, img), true, nil
	case msg.Location != nil:
		t := conversation.TextTurn(owner, conversation.ChoiceCurrentLocation)
		t.Location = &conversation.Location{Lat: msg.Location.Latitude, Lon: msg.Location.Longitude}
		return t, true, nil
	case strings.TrimSpace(msg.Text) != "":
		return conversation.TextTurn(owner, msg.Text), true, nil
	default:
		return conversation.Turn{}, false, nil
	}
}

func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

// replyMessage arma el mensaje con teclado de un solo uso para las quick replies.
// Cámara/galería no tienen botón: el usuario adjunta la foto directamente.
func replyMessage(chatID int64, r conversation.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, r.Text)

	var row []tgbotapi.KeyboardButton
	for _, q := range r.QuickReplies {
		switch q.Action {
		case conversation.ActionLocation:
			row = append(row, tgbotapi.NewKeyboardButtonLocation(q.Label))
		case conversation.ActionMessage:
			row = append(row, tgbotapi.NewKeyboardButton(q.Label))
		}
	}
	if len(row) == 0 {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		return msg
	}
	msg.ReplyMarkup = tgbotapi.NewOneTimeReplyKeyboard(row)
	return msg
}
