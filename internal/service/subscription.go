package service

import (
	"context"

	"go.uber.org/zap"
)

// Chat member statuses that count as subscribed
const (
	StatusMember        = "member"
	StatusAdministrator = "administrator"
	StatusCreator       = "creator"
)

// ChatMemberFetcher reports a user's membership status in a channel
type ChatMemberFetcher interface {
	MemberStatus(ctx context.Context, channel string, userID int64) (string, error)
}

// SubscriptionService checks that users joined every required channel
type SubscriptionService struct {
	members  ChatMemberFetcher
	channels []string
	logger   *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(members ChatMemberFetcher, channels []string, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		members:  members,
		channels: channels,
		logger:   logger,
	}
}

// Channels returns the required channels in check order
func (s *SubscriptionService) Channels() []string {
	return s.channels
}

// IsSubscribed checks channels in order and stops at the first one the user is not a member of.
// Lookup errors count as not subscribed.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID int64) bool {
	for _, channel := range s.channels {
		status, err := s.members.MemberStatus(ctx, channel, userID)
		if err != nil {
			s.logger.Error("Error checking subscription",
				zap.String("channel", channel),
				zap.Int64("user_id", userID),
				zap.Error(err))
			return false
		}

		if !isMemberStatus(status) {
			s.logger.Debug("User not subscribed",
				zap.String("channel", channel),
				zap.Int64("user_id", userID),
				zap.String("status", status))
			return false
		}
	}
	return true
}

func isMemberStatus(status string) bool {
	switch status {
	case StatusMember, StatusAdministrator, StatusCreator:
		return true
	}
	return false
}
