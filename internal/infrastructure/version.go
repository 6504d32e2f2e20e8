package infrastructure

// Version is the application version, overridable at build time with
// -ldflags "-X scanpulse/internal/infrastructure.Version=...".
var Version = "0.1.0"
