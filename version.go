package lullabyte

// Version is the engine version reported by the CLI.
const Version = "0.3.1"

// BuildDate is stamped by the release script via -ldflags; "dev" otherwise.
var BuildDate = "dev"
