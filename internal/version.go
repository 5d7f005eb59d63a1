package internal

// Version is the gemdict release, overridden at build time with
// -ldflags "-X codeberg.org/snonux/gemdict/internal.Version=...".
var Version = "0.1.0-dev"
