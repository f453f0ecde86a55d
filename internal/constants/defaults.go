package constants

import "time"

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// DefaultGoVersion is the default Go version when not provided at build time
const DefaultGoVersion = "unknown"

// DefaultPasteInterval is the delay between delivered lines when the
// paste command is given no interval argument.
const DefaultPasteInterval = 2500 * time.Millisecond

// DefaultMaxFileBytes caps the size of files accepted for pasting.
const DefaultMaxFileBytes = 1 << 20

// DefaultIdleExpiry is how long a suspended paste is kept before the
// maintenance sweeper drops it.
const DefaultIdleExpiry = 24 * time.Hour

// DefaultSweepSchedule is the cron expression for the idle-expiry sweep.
const DefaultSweepSchedule = "@every 10m"
