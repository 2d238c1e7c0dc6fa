// Package sms sends alerts to the salon owner's phone through Twilio.
package sms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	twiliogo "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/MrJamesThe3rd/salon/internal/notify"
)

type Config struct {
	AccountSID string
	AuthToken  string
	// From is the sending number. For WhatsApp, the bare number of the
	// WhatsApp sender.
	From string
	// To is the owner's number. Numbers in E.164 form (leading '+') are sent
	// over WhatsApp when WhatsApp is set.
	To       string
	WhatsApp bool
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type Sender struct {
	api  messageCreator
	from string
	to   string
}

func New(cfg Config) *Sender {
	client := twiliogo.NewRestClientWithParams(twiliogo.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return newSender(client.Api, cfg)
}

func newSender(api messageCreator, cfg Config) *Sender {
	from, to := cfg.From, cfg.To
	if cfg.WhatsApp && strings.HasPrefix(to, "+") {
		from = "whatsapp:" + from
		to = "whatsapp:" + to
	}

	return &Sender{api: api, from: from, to: to}
}

func (s *Sender) Name() string { return "sms" }

// Send delivers the alert. The Twilio client has no context support, so ctx
// is only checked before sending.
func (s *Sender) Send(ctx context.Context, a notify.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(a.Title + "\n" + a.Body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		slog.Debug("alert message sent", "key", a.Key, "sid", *resp.Sid)
	}

	return nil
}
