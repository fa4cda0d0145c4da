package domain

// Compose merges b into a. A failed operand is dropped in favor of the
// other one. When both succeed the result is a new channel carrying a's
// metadata and a's items followed by b's.
func Compose(a, b Feed) Feed {
	if _, failed := b.(Failure); failed {
		return a
	}
	if _, failed := a.(Failure); failed {
		return b
	}
	left := a.(Success).Channel
	right := b.(Success).Channel

	items := make([]Item, 0, len(left.Items)+len(right.Items))
	items = append(items, left.Items...)
	items = append(items, right.Items...)
	return Success{Channel: NewChannel(left.Title, left.Link, left.Description, items)}
}

// ComposeAll folds feeds left to right with Compose.
func ComposeAll(feeds ...Feed) Feed {
	if len(feeds) == 0 {
		return Failure{Reason: "no feeds to compose"}
	}
	acc := feeds[0]
	for _, f := range feeds[1:] {
		acc = Compose(acc, f)
	}
	return acc
}
