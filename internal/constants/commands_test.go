package constants

import (
	"testing"
)

func TestCommandConstants(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{
			name:  "CommandPaste",
			value: CommandPaste,
		},
		{
			name:  "CommandStop",
			value: CommandStop,
		},
		{
			name:  "CommandResume",
			value: CommandResume,
		},
		{
			name:  "CommandStatus",
			value: CommandStatus,
		},
		{
			name:  "CommandHelp",
			value: CommandHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s should not be empty", tt.name)
			}
			// Command names are matched against lowercased input
			for _, r := range tt.value {
				if r >= 'A' && r <= 'Z' {
					t.Errorf("%s should be lowercase, got: %s", tt.name, tt.value)
					break
				}
			}
		})
	}
}

func TestCommandValues(t *testing.T) {
	if CommandPrefix != "!" {
		t.Errorf("CommandPrefix = %s, want '!'", CommandPrefix)
	}

	if CommandPaste != "paste" {
		t.Errorf("CommandPaste = %s, want 'paste'", CommandPaste)
	}

	if CommandStop != "stop" {
		t.Errorf("CommandStop = %s, want 'stop'", CommandStop)
	}

	if CommandResume != "resume" {
		t.Errorf("CommandResume = %s, want 'resume'", CommandResume)
	}
}
