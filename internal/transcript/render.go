// Package transcript renders a filtered conversation to the console or to a
// plain text file.
package transcript

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/avivsinai/inboxview/internal/format"
	"github.com/avivsinai/inboxview/internal/stats"
)

// Default layouts match en-US toLocaleDateString/toLocaleTimeString.
const (
	DefaultDateLayout = "1/2/2006"
	DefaultTimeLayout = "3:04:05 PM"
)

// Layout controls how message timestamps are printed.
type Layout struct {
	Date     string
	Time     string
	Location *time.Location
}

// DefaultLayout prints en-US dates and times in local time.
func DefaultLayout() Layout {
	return Layout{Date: DefaultDateLayout, Time: DefaultTimeLayout, Location: time.Local}
}

// orDefault fills unset fields from DefaultLayout.
func (l Layout) orDefault() Layout {
	def := DefaultLayout()
	if l.Date == "" {
		l.Date = def.Date
	}
	if l.Time == "" {
		l.Time = def.Time
	}
	if l.Location == nil {
		l.Location = def.Location
	}
	return l
}

func (l Layout) at(m format.Message) time.Time {
	return m.Time().In(l.Location)
}

// View is everything a transcript shows.
type View struct {
	SearchTerm string
	Messages   []format.Message
	Summary    stats.Summary
	Shards     []string
	Index      int
	Contains   string

	// Limit keeps only the first Limit messages; zero or less keeps all.
	Limit int

	// Highlight reports whether a sender is emphasized. Nil disables it.
	Highlight func(sender string) bool
}

// Limit returns the first n messages, or all of them when n <= 0.
func Limit(messages []format.Message, n int) []format.Message {
	if n <= 0 || n >= len(messages) {
		return messages
	}
	return messages[:n]
}

func (v View) visible() []format.Message {
	return Limit(v.Messages, v.Limit)
}

func (v View) currentShard() string {
	if v.Index < 0 || v.Index >= len(v.Shards) {
		return ""
	}
	return v.Shards[v.Index]
}

// Console writes a styled transcript followed by the summary block.
type Console struct {
	Styles Styles
	Layout Layout
	// Labels shortens shard names for the "found" line. Nil prints them as is.
	Labels func(shards []string) []string
}

// Render writes v to w in a single write. A zero Layout prints with
// DefaultLayout.
func (c Console) Render(w io.Writer, v View) error {
	layout := c.Layout.orDefault()
	var buf bytes.Buffer
	for _, m := range v.visible() {
		t := layout.at(m)
		stamp := c.Styles.render(c.Styles.Date, t.Format(layout.Date)+" "+t.Format(layout.Time))
		sender := m.SenderName
		if v.Highlight != nil && v.Highlight(sender) {
			sender = c.Styles.render(c.Styles.Highlight, sender)
		}
		fmt.Fprintf(&buf, "%s %s: %s\n", stamp, sender, m.Content)
	}

	s := c.Styles
	buf.WriteString("\n")
	buf.WriteString(s.render(s.Total, fmt.Sprintf("Total messages: %d", v.Summary.Total)) + "\n")
	buf.WriteString(s.render(s.Participants, "Participants: "+strings.Join(v.Summary.Participants, ", ")) + "\n")
	buf.WriteString(s.render(s.Heading, "Messages per participant:") + "\n")
	for _, stat := range v.Summary.PerParticipant {
		buf.WriteString(s.render(s.Count, fmt.Sprintf("%s: %d", stat.Participant, stat.Messages)) + "\n")
	}
	if v.Contains != "" {
		buf.WriteString(s.render(s.Note, "Searching for messages containing: "+v.Contains) + "\n")
	}
	shards := v.Shards
	if c.Labels != nil {
		shards = c.Labels(shards)
	}
	buf.WriteString(s.render(s.Note, "These were the found inbox files: "+strings.Join(shards, ", ")) + "\n")
	buf.WriteString(s.render(s.Note, "Currently using the file: "+v.currentShard()) + "\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderText returns the plain transcript written by -save: one
// "<date> <sender>: <content>" line per message, then the summary.
func RenderText(v View, layout Layout) []byte {
	layout = layout.orDefault()
	var buf bytes.Buffer
	for _, m := range v.visible() {
		fmt.Fprintf(&buf, "%s %s: %s\n", layout.at(m).Format(layout.Date), m.SenderName, m.Content)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Total Messages: %d\n", v.Summary.Total)
	fmt.Fprintf(&buf, "Participants: %s\n", strings.Join(v.Summary.Participants, ", "))
	buf.WriteString("Messages per participant:\n")
	for _, stat := range v.Summary.PerParticipant {
		fmt.Fprintf(&buf, "%s: %d\n", stat.Participant, stat.Messages)
	}
	return buf.Bytes()
}
