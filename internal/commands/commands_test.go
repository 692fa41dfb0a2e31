package commands

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"q", Quit{}},
		{"  quit  ", Quit{}},
		{"add ABCD", AddFriend{Address: "ABCD", Message: DefaultRequestMessage}},
		{"add ABCD  hey  there ", AddFriend{Address: "ABCD", Message: "hey  there"}},
		{"accept", Accept{}},
		{"remove", Remove{}},
		{"del", Remove{}},
		{"group", NewGroup{}},
		{"name Stannis Baratheon", SetName{Text: "Stannis Baratheon"}},
		{"h", Help{}},
		{"help", Help{}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.line, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.line, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		line string
		want error
	}{
		{"", ErrEmptyCommand},
		{"   ", ErrEmptyCommand},
		{"test", ErrUnknownCommand},
		{"add", ErrMissingArgument},
		{"name  ", ErrMissingArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.line)
		if !errors.Is(err, tc.want) {
			t.Fatalf("Parse(%q) error = %v, want %v", tc.line, err, tc.want)
		}
	}
}

func TestUnknownCommandNamesVerb(t *testing.T) {
	_, err := Parse("frobnicate now")
	if err == nil || err.Error() != "unknown command: frobnicate" {
		t.Fatalf("error = %v, want %q", err, "unknown command: frobnicate")
	}
}

func TestCommandNames(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{Quit{}, "quit"},
		{AddFriend{}, "add"},
		{Accept{}, "accept"},
		{Remove{}, "remove"},
		{NewGroup{}, "group"},
		{SetName{Text: "x"}, "name"},
		{Help{}, "help"},
	}
	for _, tc := range cases {
		if got := tc.cmd.Name(); got != tc.want {
			t.Fatalf("%T.Name() = %q, want %q", tc.cmd, got, tc.want)
		}
	}
	cmd, err := Parse("name  Davos Seaworth")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cmd.(SetName).Text; got != "Davos Seaworth" {
		t.Fatalf("SetName.Text = %q, want %q", got, "Davos Seaworth")
	}
}
