package feed

import (
	"encoding/json"
	"fmt"

	"finpulse/observability"
)

// dispatch routes one inbound frame to the handler registered for its type.
// Unknown discriminators are logged and ignored; a returned error means the
// frame could not be parsed (the channel stays open either way).
func (c *Client) dispatch(channel Channel, data []byte) error {
	switch channel {
	case ChannelStockPrices:
		return c.dispatchStock(data)
	case ChannelDiscussions:
		return c.dispatchDiscussion(data)
	case ChannelPortfolio:
		return c.dispatchPortfolio(data)
	default:
		return fmt.Errorf("unknown channel %q", channel)
	}
}

func (c *Client) dispatchStock(data []byte) error {
	var frame stockFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("failed to parse stock frame: %w", err)
	}
	observability.GetMetrics().RecordFeedMessage(string(ChannelStockPrices), frame.Type)

	cb := c.getCallbacks()
	switch frame.Type {
	case frameTypeInitialPrices, frameTypeStockPrices:
		if cb.OnStockPriceUpdate != nil {
			for _, tick := range frame.Prices {
				cb.OnStockPriceUpdate(tick)
			}
		}
	case frameTypePriceUpdate:
		if cb.OnStockPriceUpdate != nil && frame.Price != nil {
			cb.OnStockPriceUpdate(*frame.Price)
		}
	case frameTypePriceAlert:
		if cb.OnPriceAlert != nil && frame.Alert != nil {
			cb.OnPriceAlert(*frame.Alert)
		}
	case frameTypePong:
		// keepalive acknowledged, nothing to deliver
	default:
		observability.WithChannel(string(ChannelStockPrices)).Debug("ignoring unknown frame type", "type", frame.Type)
	}
	return nil
}

func (c *Client) dispatchDiscussion(data []byte) error {
	var frame discussionFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("failed to parse discussion frame: %w", err)
	}
	observability.GetMetrics().RecordFeedMessage(string(ChannelDiscussions), frame.Type)

	cb := c.getCallbacks()
	switch frame.Type {
	case frameTypeNewDiscussion:
		if cb.OnNewDiscussion != nil && frame.Discussion != nil {
			cb.OnNewDiscussion(*frame.Discussion)
		}
	case frameTypeNewComment:
		if cb.OnNewComment != nil && frame.Comment != nil {
			cb.OnNewComment(*frame.Comment)
		}
	case frameTypeDiscussionUpdate:
		if cb.OnDiscussionUpdate != nil && frame.Discussion != nil {
			cb.OnDiscussionUpdate(*frame.Discussion)
		}
	case frameTypePong:
	default:
		observability.WithChannel(string(ChannelDiscussions)).Debug("ignoring unknown frame type", "type", frame.Type)
	}
	return nil
}

func (c *Client) dispatchPortfolio(data []byte) error {
	var frame portfolioFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("failed to parse portfolio frame: %w", err)
	}
	observability.GetMetrics().RecordFeedMessage(string(ChannelPortfolio), frame.Type)

	cb := c.getCallbacks()
	switch frame.Type {
	case frameTypePortfolioUpdate:
		if cb.OnPortfolioUpdate != nil && frame.Portfolio != nil {
			cb.OnPortfolioUpdate(*frame.Portfolio)
		}
	case frameTypePong:
	default:
		observability.WithChannel(string(ChannelPortfolio)).Debug("ignoring unknown frame type", "type", frame.Type)
	}
	return nil
}
