package handlers

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestGreetingReply(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		greet bool
	}{
		{"english hello", "hello there", true},
		{"mixed case", "HeLLo bot", true},
		{"hi substring", "hi!", true},
		{"vietnamese", "chào shop", true},
		{"full vietnamese", "Xin chào ạ", true},
		{"plain question", "còn hàng không?", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GreetingReply(tt.text)
			want := defaultReply
			if tt.greet {
				want = greetingReply
			}
			if got != want {
				t.Errorf("GreetingReply(%q) = %q, want %q", tt.text, got, want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		first, last, username, want string
	}{
		{"Alice", "", "alice", "Alice"},
		{"Alice", "Nguyen", "alice", "Alice Nguyen"},
		{"", "", "ghost", "ghost"},
	}
	for _, tt := range tests {
		u := &tele.User{FirstName: tt.first, LastName: tt.last, Username: tt.username}
		got := displayName(u)
		if got != tt.want {
			t.Errorf("displayName(%q,%q,%q) = %q, want %q", tt.first, tt.last, tt.username, got, tt.want)
		}
	}
}
