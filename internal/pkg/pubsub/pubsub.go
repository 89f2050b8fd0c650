package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelCreditEvents = "credit_events"
)

// 事件类型常量
const (
	EventPersonalGrant = "personal_grant"
	EventPotAdjustment = "pot_adjustment"
	EventPotWarning    = "pot_warning"
)

// CreditEvent 积分变动事件，推送给在线的管理后台
type CreditEvent struct {
	Type           string  `json:"type"`
	UserID         *int64  `json:"user_id,omitempty"`
	EuroAmount     float64 `json:"euro_amount,omitempty"`
	CreditsGranted int     `json:"credits_granted,omitempty"`
	NewBalance     int     `json:"new_balance"`
	Message        string  `json:"message,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishCreditEvent 发布积分变动事件
func (p *Publisher) PublishCreditEvent(ctx context.Context, event *CreditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal credit event: %w", err)
	}

	return p.client.Publish(ctx, ChannelCreditEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅积分变动事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*CreditEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelCreditEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event CreditEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
