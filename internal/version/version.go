package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GetVersion возвращает версию сборки, заданную через -ldflags.
func GetVersion() string { return version }

// String возвращает полную строку с информацией о сборке.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
