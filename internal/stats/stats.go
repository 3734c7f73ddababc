// Package stats derives message totals from a filtered conversation.
package stats

import "github.com/avivsinai/inboxview/internal/format"

// ParticipantStat is the number of filtered messages sent by one participant.
type ParticipantStat struct {
	Participant string `json:"participant"`
	Messages    int    `json:"messages"`
}

// Summary is the aggregate shown under a transcript.
type Summary struct {
	Total          int               `json:"total"`
	Participants   []string          `json:"participants"`
	PerParticipant []ParticipantStat `json:"per_participant"`
}

// Aggregate counts filtered messages per participant. Senders are matched by
// exact name; participants without messages are reported with zero, in
// their original order.
func Aggregate(participants []string, filtered []format.Message) Summary {
	counts := make(map[string]int, len(participants))
	for _, m := range filtered {
		counts[m.SenderName]++
	}
	per := make([]ParticipantStat, 0, len(participants))
	for _, name := range participants {
		per = append(per, ParticipantStat{Participant: name, Messages: counts[name]})
	}
	return Summary{
		Total:          len(filtered),
		Participants:   append([]string(nil), participants...),
		PerParticipant: per,
	}
}
