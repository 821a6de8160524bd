package version

// Version is the bin2c release version. Overridden at link time with
// -ldflags "-X github.com/xll-gen/bin2c/version.Version=...".
var Version = "0.3.0"
