// Package filter narrows a merged conversation down to the messages a user
// asked for and puts them in chronological order.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/avivsinai/inboxview/internal/format"
)

// Criteria defines filter criteria for a conversation.
type Criteria struct {
	// Before and After are exclusive bounds; the zero time means unset.
	Before time.Time
	After  time.Time

	// Contains matches message content, case-insensitively.
	Contains string

	// Sender matches sender names, case-insensitively. With Highlight set it
	// only marks messages for display and removes nothing.
	Sender    string
	Highlight bool

	// RepairFirst repairs text before the Contains check. When false the
	// check runs on the raw export text, so a non-ASCII query never matches
	// mis-encoded content.
	RepairFirst bool
}

func (c Criteria) normalized() Criteria {
	c.Contains = strings.ToLower(c.Contains)
	c.Sender = strings.ToLower(c.Sender)
	return c
}

// Apply returns the messages that match c, repaired and sorted by
// timestamp. Messages without content are always dropped. The input slice
// is not modified.
func Apply(messages []format.Message, c Criteria) []format.Message {
	c = c.normalized()
	out := make([]format.Message, 0, len(messages))
	for _, m := range messages {
		if c.RepairFirst {
			m = format.RepairMessage(m)
		}
		if !matches(m, c) {
			continue
		}
		if !c.RepairFirst {
			m = format.RepairMessage(m)
		}
		if c.Sender != "" && !c.Highlight && !strings.Contains(strings.ToLower(m.SenderName), c.Sender) {
			continue
		}
		out = append(out, m)
	}
	SortChronological(out)
	return out
}

// Matches reports whether m has content and passes the date and content
// checks of c. Sender filtering is not part of it.
func Matches(m format.Message, c Criteria) bool {
	return matches(m, c.normalized())
}

func matches(m format.Message, c Criteria) bool {
	if m.Content == "" {
		return false
	}
	if !c.Before.IsZero() && m.TimestampMS >= c.Before.UnixMilli() {
		return false
	}
	if !c.After.IsZero() && m.TimestampMS <= c.After.UnixMilli() {
		return false
	}
	if c.Contains != "" && !strings.Contains(strings.ToLower(m.Content), c.Contains) {
		return false
	}
	return true
}

// SortChronological sorts messages by timestamp, keeping merge order on ties.
func SortChronological(messages []format.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].TimestampMS < messages[j].TimestampMS
	})
}

// HighlightTarget reports whether sender should be emphasized on display.
func HighlightTarget(sender string, c Criteria) bool {
	target := strings.ToLower(c.Sender)
	if !c.Highlight || target == "" {
		return false
	}
	return strings.Contains(strings.ToLower(sender), target)
}
