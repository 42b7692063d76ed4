// Package testing flips the binary into test mode when imported from tests.
package testing

import (
	"os"
	"sync"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("SOLARHUB_TEST_MODE", "1")
		if os.Getenv("BACKEND_BASE_URL") == "" {
			_ = os.Setenv("BACKEND_BASE_URL", "http://127.0.0.1:0")
		}
	})
}

func init() {
	ensureTestMode()
}
