package app

import (
	"os"
	"sync"
)

const testModeEnv = "STOCKROOM_TEST_MODE"

// InTestMode reports whether the process should skip startup side effects.
// Harnesses that exec the binaries set STOCKROOM_TEST_MODE=1.
var InTestMode = sync.OnceValue(func() bool {
	return os.Getenv(testModeEnv) == "1"
})
