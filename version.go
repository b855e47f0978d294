package sky

// Version is the frontend release tag reported by the CLI.
const Version = "0.2.0"

// BuildDate is stamped by the release script; "dev" for local builds.
var BuildDate = "dev"
