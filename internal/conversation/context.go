package conversation

import (
	"context"

	"socialdl/internal/domain"
)

// Responder delivers replies back to the user
type Responder interface {
	Respond(ctx context.Context, reply domain.Reply) error
}

// HandlerFunc handles one event
type HandlerFunc func(c *Context) error

// MiddlewareFunc wraps a handler with a pre-handler check
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// Context carries one event through the middleware chain and its handler.
// Handlers change Session in place; the machine saves it afterwards.
type Context struct {
	ctx     context.Context
	Event   domain.Event
	Session *domain.Session
	out     Responder
}

// NewContext creates a context for ev
func NewContext(ctx context.Context, ev domain.Event, session *domain.Session, out Responder) *Context {
	return &Context{ctx: ctx, Event: ev, Session: session, out: out}
}

// Context returns the request context
func (c *Context) Context() context.Context {
	return c.ctx
}

// Lang returns the user's interface language
func (c *Context) Lang() string {
	return c.Session.Language
}

// Reply sends r as is
func (c *Context) Reply(r domain.Reply) error {
	return c.out.Respond(c.ctx, r)
}

// Send sends a new text message
func (c *Context) Send(text string, kb domain.Keyboard) error {
	return c.Reply(domain.Reply{Kind: domain.ReplyText, Text: text, Keyboard: kb})
}

// Show replaces the message a pressed button belongs to, or sends a new one otherwise
func (c *Context) Show(text string, kb domain.Keyboard) error {
	return c.Reply(domain.Reply{
		Kind:     domain.ReplyText,
		Text:     text,
		Keyboard: kb,
		Edit:     c.Event.Kind == domain.EventCallback,
	})
}
