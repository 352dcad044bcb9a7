package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
	"github.com/mtakahash/recipedog/internal/persona"
)

// Bot produces a reply for one inbound message. Implemented by the
// dispatcher; narrowed here so the channel does not depend on bot internals.
type Bot interface {
	Dispatch(ctx context.Context, userID, text string) string
}

// Event is one entry of a webhook delivery.
type Event struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

// webhookBody is the envelope the platform POSTs to the callback URL.
type webhookBody struct {
	Events []Event `json:"events"`
}

// Webhook verifies and parses inbound deliveries and fans each text event
// out to its own goroutine, so the webhook acknowledgment never waits on a
// generator call.
type Webhook struct {
	secret  string
	bot     Bot
	replier domain.Replier
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewWebhook creates the webhook handler. secret is the channel secret used
// for signature verification.
func NewWebhook(secret string, bot Bot, replier domain.Replier, log *logger.Logger) *Webhook {
	return &Webhook{secret: secret, bot: bot, replier: replier, log: log}
}

// Callback handles POST /callback. Deliveries that fail the signature check
// are rejected with 400 and never reach classification. Valid deliveries
// are acknowledged immediately; event handling continues in the background.
func (w *Webhook) Callback(rw http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(rw, "read error", http.StatusBadRequest)
		return
	}

	if !ValidateSignature(w.secret, req.Header.Get("X-Line-Signature"), body) {
		w.log.Warn("rejected delivery with bad signature")
		http.Error(rw, "invalid signature", http.StatusBadRequest)
		return
	}

	var delivery webhookBody
	if err := json.Unmarshal(body, &delivery); err != nil {
		w.log.Warn("rejected malformed delivery: %v", err)
		http.Error(rw, "malformed body", http.StatusBadRequest)
		return
	}

	for _, ev := range delivery.Events {
		// Detach from the request context: handling outlives the ack.
		ctx := context.WithoutCancel(req.Context())
		w.wg.Add(1)
		go func(ev Event) {
			defer w.wg.Done()
			w.handleEvent(ctx, ev)
		}(ev)
	}

	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte("OK"))
}

// handleEvent processes a single event and delivers the reply. Delivery
// failures are logged and dropped.
func (w *Webhook) handleEvent(ctx context.Context, ev Event) {
	var reply string

	switch ev.Type {
	case "follow":
		reply = persona.LineWelcome()
	case "message":
		if ev.Message.Type != "text" || ev.Source.UserID == "" {
			w.log.Debug("ignoring %s event with message type %q", ev.Type, ev.Message.Type)
			return
		}
		reply = w.bot.Dispatch(ctx, ev.Source.UserID, ev.Message.Text)
	default:
		w.log.Debug("ignoring event type %q", ev.Type)
		return
	}

	if ev.ReplyToken == "" || reply == "" {
		return
	}
	if err := w.replier.Reply(ctx, ev.ReplyToken, reply); err != nil {
		w.log.Error("reply delivery failed: %v", err)
	}
}

// Wait blocks until all in-flight event handlers finish. Called during
// shutdown and by tests.
func (w *Webhook) Wait() {
	w.wg.Wait()
}

// ValidateSignature checks the X-Line-Signature header: the base64 of the
// HMAC-SHA256 of the raw request body under the channel secret.
func ValidateSignature(secret, signature string, body []byte) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
