// Package guard forces test mode before any package init that inspects it.
// Import it for side effects from packages whose tests must never touch
// external services.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("MERX_TEST_MODE") == "" {
			_ = os.Setenv("MERX_TEST_MODE", "1")
		}
	})
}
