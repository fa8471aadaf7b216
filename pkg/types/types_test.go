package types

import "testing"

func TestPeerDisplayName(t *testing.T) {
	tests := []struct {
		name string
		peer Peer
		want string
	}{
		{"first and last", Peer{FirstName: "Ivan", LastName: "Petrov"}, "Ivan Petrov"},
		{"first only", Peer{FirstName: "Ivan"}, "Ivan"},
		{"last only", Peer{LastName: "Petrov"}, "Petrov"},
		{"empty", Peer{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.peer.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageHasText(t *testing.T) {
	if (Message{Text: ""}).HasText() {
		t.Error("empty text should not count as text")
	}
	if !(Message{Text: "hi"}).HasText() {
		t.Error("non-empty text should count as text")
	}
}

func TestKindStrings(t *testing.T) {
	if PeerBot.String() != "bot" {
		t.Errorf("PeerBot.String() = %q", PeerBot.String())
	}
	if Outgoing.String() != "outgoing" {
		t.Errorf("Outgoing.String() = %q", Outgoing.String())
	}
}
