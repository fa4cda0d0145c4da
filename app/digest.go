package app

import (
	"sort"

	"github.com/samber/lo"

	"rssmerge/domain"
)

// Entry is one displayable item together with the channel it came from.
type Entry struct {
	Item    domain.Item
	Channel domain.Channel
	Source  domain.Source
}

// SourceStatus summarizes the latest feed of a source.
type SourceStatus struct {
	Source domain.Source
	OK     bool
	Items  int
	Reason string
}

// Digest flattens every successful feed of the snapshot into one list,
// keeping only items with a title and a link, newest first. Undated items
// sort last and keep their relative order.
func Digest(snapshot map[domain.Source]domain.Feed) []Entry {
	sources := lo.Keys(snapshot)
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	entries := lo.FlatMap(sources, func(src domain.Source, _ int) []Entry {
		s, ok := snapshot[src].(domain.Success)
		if !ok {
			return nil
		}
		return lo.FilterMap(s.Channel.Items, func(it domain.Item, _ int) (Entry, bool) {
			if it.Title == nil || it.Link == nil {
				return Entry{}, false
			}
			return Entry{Item: it, Channel: s.Channel, Source: src}, true
		})
	})

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Item.PubDate, entries[j].Item.PubDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return entries
}

// Statuses reports every source of the snapshot in source order.
func Statuses(snapshot map[domain.Source]domain.Feed) []SourceStatus {
	out := make([]SourceStatus, 0, len(snapshot))
	for src, feed := range snapshot {
		st := SourceStatus{Source: src}
		switch f := feed.(type) {
		case domain.Success:
			st.OK = true
			st.Items = len(f.Channel.Items)
		case domain.Failure:
			st.Reason = f.Reason
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// AnySuccess reports whether at least one source has a successful feed.
func AnySuccess(snapshot map[domain.Source]domain.Feed) bool {
	return lo.SomeBy(lo.Values(snapshot), func(f domain.Feed) bool {
		return !isFailure(f)
	})
}
