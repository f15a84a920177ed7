// Package telegram adapts the Bot API client to the interfaces the services need.
package telegram

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// ChatMemberLookup is the part of *tele.Bot used to query memberships
type ChatMemberLookup interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// channel is a public chat addressed by its @username
type channel string

func (c channel) Recipient() string {
	return string(c)
}

// ChatMembers reports channel membership statuses
type ChatMembers struct {
	api ChatMemberLookup
}

// NewChatMembers creates a membership adapter over the bot
func NewChatMembers(api ChatMemberLookup) *ChatMembers {
	return &ChatMembers{api: api}
}

// MemberStatus returns the user's status in the channel, such as "member" or "left"
func (m *ChatMembers) MemberStatus(ctx context.Context, ch string, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	member, err := m.api.ChatMemberOf(channel(ch), &tele.User{ID: userID})
	if err != nil {
		return "", fmt.Errorf("get chat member %s: %w", ch, err)
	}
	if member == nil {
		return "", fmt.Errorf("get chat member %s: empty result", ch)
	}

	return string(member.Role), nil
}
