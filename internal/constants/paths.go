package constants

// DefaultConfigPath is the default path to the config.toml file
const DefaultConfigPath = "./config.toml"

// DefaultPasteDir is the directory paste file paths are resolved against
// when they are not absolute.
const DefaultPasteDir = "."
