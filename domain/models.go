package domain

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies a configured feed by its URL.
type Source string

// RegisteredSource is a source URL kept in the source registry.
type RegisteredSource struct {
	ID        string
	CreatedAt time.Time
	URL       string
}

// Item is a single RSS item. Absent fields are nil.
type Item struct {
	Title       *string
	Description *string
	Author      *string
	Link        *string
	PubDate     *time.Time
	Guid        *string

	// ChannelID names the Channel that owns the item. It is a lookup key only.
	ChannelID string
}

// Empty reports whether every optional field is absent.
func (i Item) Empty() bool {
	return i.Title == nil && i.Description == nil && i.Author == nil &&
		i.Link == nil && i.PubDate == nil && i.Guid == nil
}

// Channel is a parsed RSS channel. It owns its Items in document order.
type Channel struct {
	ID          string
	Title       *string
	Link        *string
	Description *string
	Items       []Item
}

// NewChannel returns a channel with a fresh ID that owns items.
// Items are copied and re-stamped with the new ID.
func NewChannel(title, link, description *string, items []Item) Channel {
	ch := Channel{
		ID:          uuid.NewString(),
		Title:       title,
		Link:        link,
		Description: description,
		Items:       make([]Item, 0, len(items)),
	}
	for _, it := range items {
		it.ChannelID = ch.ID
		ch.Items = append(ch.Items, it)
	}
	return ch
}

// Feed is the outcome of one fetch: either Success or Failure.
type Feed interface {
	isFeed()
}

// Success carries a parsed channel.
type Success struct {
	Channel Channel
}

// Failure carries a diagnostic for a transport, status or parse failure.
type Failure struct {
	Reason string
}

func (Success) isFeed() {}
func (Failure) isFeed() {}

func (f Failure) Error() string { return f.Reason }

// Response is the raw result of one HTTP fetch.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
