package api

import (
	"context"
	"net/url"
)

type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	SubscribedAt Timestamp `json:"subscribedAt"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (c *Client) Subscribe(ctx context.Context, email string) error {
	if err := c.post(ctx, "/subscribers/subscribe", subscribeRequest{Email: email}, nil); err != nil {
		return withFallback(err, "failed to subscribe")
	}
	return nil
}

func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	if err := c.post(ctx, "/subscribers/unsubscribe", subscribeRequest{Email: email}, nil); err != nil {
		return withFallback(err, "failed to unsubscribe")
	}
	return nil
}

func (c *Client) SubscriberCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.get(ctx, "/subscribers/count", &count); err != nil {
		return 0, withFallback(err, "failed to load subscriber count")
	}
	return count, nil
}

func (c *Client) CheckSubscription(ctx context.Context, email string) (bool, error) {
	var subscribed bool
	if err := c.get(ctx, "/subscribers/check/"+url.PathEscape(email), &subscribed); err != nil {
		return false, withFallback(err, "failed to check subscription")
	}
	return subscribed, nil
}

func (c *Client) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	var subscribers []Subscriber
	if err := c.get(ctx, "/subscribers", &subscribers); err != nil {
		return nil, withFallback(err, "failed to load subscribers")
	}
	return subscribers, nil
}
