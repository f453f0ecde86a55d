package constants

// Package messages contains text constants used by the command layer.

// Command replies
const (
	// MsgPasteUsage is printed when the paste command is missing its file argument.
	MsgPasteUsage = "usage: !paste <file> [interval_ms]"

	// MsgBadInterval is printed when the interval argument is not a positive integer.
	MsgBadInterval = "interval must be a positive number of milliseconds, got: %s"

	// MsgReadError is the prefix for file read failures.
	MsgReadError = "dripfeed: %v"

	// MsgEmptyFile is printed when the requested file contains no lines.
	MsgEmptyFile = "dripfeed: nothing to paste, file is empty: %s"

	// MsgNoPaste is printed when stop or resume finds no paste for the target.
	MsgNoPaste = "dripfeed: no paste for this target."

	// MsgAlreadyPasting is printed when resume is given an active target.
	MsgAlreadyPasting = "dripfeed: already pasting to this target."

	// MsgNotPasting is printed when stop is given an idle target.
	MsgNotPasting = "dripfeed: not pasting to this target."

	// MsgUnknownCommand is printed for a prefixed verb that matches no command.
	MsgUnknownCommand = "dripfeed: unknown command: %s."
)

// Status replies
const (
	// MsgStatusHeader is the header for the status display.
	MsgStatusHeader = "dripfeed: registered targets:"

	// MsgStatusLine is the per-target row of the status display.
	MsgStatusLine = "  %s: %s, %d/%d lines, every %s"

	// MsgStatusEmpty is printed when no targets are registered.
	MsgStatusEmpty = "dripfeed: no registered targets."
)

// MsgHelp is the full command reference printed by the help command.
const MsgHelp = `dripfeed commands:
  !paste <file> [interval_ms]  paste a file line by line (default 2500 ms)
  !stop                        suspend the paste for this target
  !resume                      continue a suspended paste
  !status                      list registered targets
  !help                        show this text`
