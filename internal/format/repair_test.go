package format

import "testing"

func TestRepairText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii untouched", "hello there", "hello there"},
		{"empty", "", ""},
		{"latin accent", "cafÃ©", "café"},
		{"emoji", "ok ð\u009f\u0098\u0080", "ok 😀"},
		{"cyrillic", "Ð¿Ñ\u0080Ð¸Ð²ÐµÑ\u0082", "привет"},
		{"already utf8 beyond latin1", "привет", "привет"},
		{"lone latin1 byte is not utf8", "café", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairText(tt.in); got != tt.want {
				t.Errorf("RepairText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairMessage(t *testing.T) {
	in := Message{SenderName: "ZoÃ«", Content: "cafÃ©", TimestampMS: 5}
	got := RepairMessage(in)
	if got.SenderName != "Zoë" || got.Content != "café" || got.TimestampMS != 5 {
		t.Fatalf("unexpected repair: %+v", got)
	}
	if in.SenderName != "ZoÃ«" {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestRepairNames(t *testing.T) {
	got := RepairNames([]string{"ZoÃ«", "Bob"})
	if len(got) != 2 || got[0] != "Zoë" || got[1] != "Bob" {
		t.Fatalf("unexpected names: %v", got)
	}
}
