package thread

import (
	"errors"
	"fmt"

	"github.com/avivsinai/inboxview/internal/export"
	"github.com/avivsinai/inboxview/internal/format"
)

// ErrNoParts is returned when a shard directory holds no message part files.
var ErrNoParts = errors.New("no message files in conversation")

// Merge folds parts into one conversation. The first part supplies
// participants, title and the remaining metadata; every part contributes its
// messages in order. Inputs are not modified.
func Merge(parts []format.Conversation) format.Conversation {
	if len(parts) == 0 {
		return format.Conversation{}
	}
	total := 0
	for _, part := range parts {
		total += len(part.Messages)
	}
	merged := parts[0]
	merged.Participants = append([]format.Participant(nil), parts[0].Participants...)
	merged.Messages = make([]format.Message, 0, total)
	for _, part := range parts {
		merged.Messages = append(merged.Messages, part.Messages...)
	}
	return merged
}

// Collect reads every message part in shardDir and merges them. It returns
// the merged conversation and the part paths in merge order. A part that does
// not decode aborts the whole collection.
func Collect(shardDir string) (format.Conversation, []string, error) {
	paths, err := export.MessageParts(shardDir)
	if err != nil {
		return format.Conversation{}, nil, err
	}
	if len(paths) == 0 {
		return format.Conversation{}, nil, fmt.Errorf("%w: %s", ErrNoParts, shardDir)
	}
	parts := make([]format.Conversation, 0, len(paths))
	for _, path := range paths {
		part, err := format.ReadConversationFile(path)
		if err != nil {
			return format.Conversation{}, nil, err
		}
		parts = append(parts, part)
	}
	return Merge(parts), paths, nil
}
