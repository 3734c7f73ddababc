package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Participant is one member of an exported conversation.
type Participant struct {
	Name string `json:"name"`
}

// JoinableMode mirrors the export's group-link settings. It is decoded but not used.
type JoinableMode struct {
	Mode int    `json:"mode"`
	Link string `json:"link"`
}

// Message is a single entry of an exported conversation.
// Content is empty for non-text events (reactions, attachments).
type Message struct {
	SenderName            string `json:"sender_name"`
	TimestampMS           int64  `json:"timestamp_ms"`
	Content               string `json:"content,omitempty"`
	IsGeoblockedForViewer bool   `json:"is_geoblocked_for_viewer"`
}

// Time returns the message timestamp in local time.
func (m Message) Time() time.Time {
	return time.UnixMilli(m.TimestampMS)
}

// Conversation is the payload of one message part file. After merging it
// holds the full message history of a shard.
type Conversation struct {
	Participants       []Participant   `json:"participants"`
	Messages           []Message       `json:"messages"`
	Title              string          `json:"title"`
	IsStillParticipant bool            `json:"is_still_participant"`
	ThreadPath         string          `json:"thread_path"`
	MagicWords         json.RawMessage `json:"magic_words,omitempty"`
	JoinableMode       *JoinableMode   `json:"joinable_mode,omitempty"`
}

// ParticipantNames returns participant names in export order.
func (c Conversation) ParticipantNames() []string {
	out := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		out = append(out, p.Name)
	}
	return out
}

// MalformedExportError reports a message part that is not valid conversation JSON.
type MalformedExportError struct {
	Path string
	Err  error
}

func (e *MalformedExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed export: %v", e.Err)
	}
	return fmt.Sprintf("malformed export %s: %v", e.Path, e.Err)
}

func (e *MalformedExportError) Unwrap() error {
	return e.Err
}

// ParseConversation decodes one message part held in memory.
func ParseConversation(data []byte) (Conversation, error) {
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return Conversation{}, &MalformedExportError{Err: err}
	}
	return conv, nil
}

// ReadConversationFile reads and decodes one message part. The file is
// closed before returning.
func ReadConversationFile(path string) (Conversation, error) {
	file, err := os.Open(path)
	if err != nil {
		return Conversation{}, err
	}
	defer func() { _ = file.Close() }()
	data, err := io.ReadAll(file)
	if err != nil {
		return Conversation{}, err
	}
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return Conversation{}, &MalformedExportError{Path: path, Err: err}
	}
	return conv, nil
}
