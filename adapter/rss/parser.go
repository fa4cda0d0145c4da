package rss

import (
	"fmt"
	"strings"

	"rssmerge/domain"
)

// Parser reads RSS 2.0 documents. Each text field is taken from a single
// matching child element; a missing or repeated element leaves the field
// absent.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

func (p *Parser) Parse(body []byte) domain.Feed {
	doc, err := parseTree(body)
	if err != nil {
		return domain.Failure{Reason: fmt.Sprintf("parse feed: %v", err)}
	}
	channel := doc.single("rss").single("channel")

	var items []domain.Item
	for i, el := range channel.all("item") {
		it, err := parseItem(el)
		if err != nil {
			return domain.Failure{Reason: fmt.Sprintf("parse feed: item %d: %v", i+1, err)}
		}
		if it.Empty() {
			continue
		}
		items = append(items, it)
	}

	return domain.Success{Channel: domain.NewChannel(
		childText(channel, "title"),
		childText(channel, "link"),
		childText(channel, "description"),
		items,
	)}
}

func parseItem(el *element) (domain.Item, error) {
	it := domain.Item{
		Title:       childText(el, "title"),
		Description: childText(el, "description"),
		Author:      childText(el, "author"),
		Link:        childText(el, "link"),
		Guid:        childText(el, "guid"),
	}
	if raw := childText(el, "pubDate"); raw != nil {
		t, err := parseDate(*raw)
		if err != nil {
			return domain.Item{}, fmt.Errorf("invalid pubDate %q: %w", *raw, err)
		}
		it.PubDate = &t
	}
	return it, nil
}

func childText(parent *element, name string) *string {
	el := parent.single(name)
	if el == nil {
		return nil
	}
	s := strings.TrimSpace(el.Text())
	return &s
}
