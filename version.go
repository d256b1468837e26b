package gensvc

// Version is the release of the generator, overridable at link time with
// -ldflags "-X github.com/cgspeck/gen-systemd-svcs.Version=...".
var Version = "0.2.0"
