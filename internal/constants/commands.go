package constants

// CommandPrefix marks a chat message as a command for this bot.
const CommandPrefix = "!"

// CommandPaste starts a new line-by-line paste from a file.
const CommandPaste = "paste"

// CommandStop suspends the active paste for the current target.
const CommandStop = "stop"

// CommandResume restarts a suspended paste from its saved position.
const CommandResume = "resume"

// CommandStatus reports all registered paste targets and their progress.
const CommandStatus = "status"

// CommandHelp prints the command reference.
const CommandHelp = "help"
