package app

import (
	"os"
	"sync/atomic"
)

var testMode atomic.Bool

func init() {
	RefreshTestMode()
}

// RefreshTestMode re-reads MERX_TEST_MODE from the environment. Tests
// that toggle the variable call this after setting it.
func RefreshTestMode() {
	testMode.Store(os.Getenv("MERX_TEST_MODE") == "1")
}

// InTestMode reports whether the process runs with test-mode behavior,
// which relaxes external dependencies such as the cron scheduler.
func InTestMode() bool {
	return testMode.Load()
}
