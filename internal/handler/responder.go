package handler

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"socialdl/internal/domain"
)

// responder sends conversation replies through a telebot context
type responder struct {
	c      tele.Context
	logger *zap.Logger
}

func newResponder(c tele.Context, logger *zap.Logger) *responder {
	return &responder{c: c, logger: logger}
}

// Respond sends the reply. Edits fall back to a new message when editing fails.
func (r *responder) Respond(_ context.Context, reply domain.Reply) error {
	var opts []interface{}
	if markup := replyMarkup(reply.Keyboard); markup != nil {
		opts = append(opts, markup)
	}

	switch reply.Kind {
	case domain.ReplyVideo:
		return r.c.Send(&tele.Video{File: mediaFile(reply.Media), Caption: reply.Text}, opts...)
	case domain.ReplyAudio:
		return r.c.Send(&tele.Audio{File: mediaFile(reply.Media), Caption: reply.Text}, opts...)
	case domain.ReplyPhoto:
		return r.c.Send(&tele.Photo{File: mediaFile(reply.Media), Caption: reply.Text}, opts...)
	}

	if reply.Edit && r.c.Callback() != nil {
		err := r.c.Edit(reply.Text, opts...)
		if err == nil || r.handleEditError(err) == nil {
			return nil
		}
	}

	return r.c.Send(reply.Text, opts...)
}

// handleEditError returns nil if the message already shows the requested content,
// otherwise it returns err so the caller sends a new message
func (r *responder) handleEditError(err error) error {
	userID := int64(0)
	if sender := r.c.Sender(); sender != nil {
		userID = sender.ID
	}

	// Already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		r.logger.Debug("Message already modified by another callback",
			zap.Int64("user_id", userID),
			zap.String("callback_id", r.c.Callback().ID),
		)
		return nil
	}

	r.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", r.c.Callback().ID),
	)
	return err
}

// replyMarkup converts a keyboard to inline markup, nil for an empty keyboard
func replyMarkup(kb domain.Keyboard) *tele.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}

	rows := make([][]tele.InlineButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, btn := range row {
			b := tele.InlineButton{Text: btn.Label}
			if btn.Kind == domain.ButtonURL {
				b.URL = btn.Payload
			} else {
				b.Data = btn.Payload
			}
			buttons = append(buttons, b)
		}
		rows = append(rows, buttons)
	}

	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// mediaFile resolves a media source: an http(s) URL, a local file or a Telegram file ID
func mediaFile(src string) tele.File {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return tele.FromURL(src)
	}
	if info, err := os.Stat(src); err == nil && !info.IsDir() {
		return tele.FromDisk(src)
	}
	return tele.File{FileID: src}
}
