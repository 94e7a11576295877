// Package misc keeps build time information.
package misc

// Set at build time with -ldflags "-X bic/misc.version=... -X bic/misc.gitHash=...".
var (
	appName = "bic"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
