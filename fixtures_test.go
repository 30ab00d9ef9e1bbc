package stomp

import (
	"github.com/google/uuid"
)

// uniqueDestination returns a queue destination with no semantic
// meaning of its own, just enough to keep parallel test cases from
// colliding on a shared identifier space.
func uniqueDestination() string {
	return "/queue/test-" + uuid.NewString()
}
