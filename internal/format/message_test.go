package format

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const samplePart = `{
  "participants": [{"name": "Alice"}, {"name": "Bob"}],
  "messages": [
    {"sender_name": "Bob", "timestamp_ms": 1700000002000, "content": "hi", "is_geoblocked_for_viewer": false},
    {"sender_name": "Alice", "timestamp_ms": 1700000001000, "is_geoblocked_for_viewer": false}
  ],
  "title": "Alice and Bob",
  "is_still_participant": true,
  "thread_path": "inbox/alice_123",
  "magic_words": [],
  "joinable_mode": {"mode": 1, "link": ""}
}`

func TestParseConversation(t *testing.T) {
	conv, err := ParseConversation([]byte(samplePart))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Content != "hi" || conv.Messages[1].Content != "" {
		t.Fatalf("unexpected contents: %+v", conv.Messages)
	}
	if conv.Messages[0].TimestampMS != 1700000002000 {
		t.Fatalf("timestamp mismatch: %d", conv.Messages[0].TimestampMS)
	}
	if conv.Title != "Alice and Bob" || conv.ThreadPath != "inbox/alice_123" {
		t.Fatalf("metadata mismatch: %+v", conv)
	}
	if conv.JoinableMode == nil || conv.JoinableMode.Mode != 1 {
		t.Fatalf("joinable mode mismatch: %+v", conv.JoinableMode)
	}
	names := conv.ParticipantNames()
	if len(names) != 2 || names[0] != "Alice" || names[1] != "Bob" {
		t.Fatalf("participants mismatch: %v", names)
	}
}

func TestParseConversationMalformed(t *testing.T) {
	_, err := ParseConversation([]byte(`{"messages": [`))
	var malformed *MalformedExportError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedExportError, got %v", err)
	}
}

func TestReadConversationFileMalformedCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message_1.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := ReadConversationFile(path)
	var malformed *MalformedExportError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedExportError, got %v", err)
	}
	if malformed.Path != path {
		t.Fatalf("expected path %s, got %s", path, malformed.Path)
	}
}

func TestReadConversationFileMissing(t *testing.T) {
	_, err := ReadConversationFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
