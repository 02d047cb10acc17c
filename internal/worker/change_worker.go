package worker

import (
	"github.com/spec-kit/crud-backends/internal/service"
)

// StartChangeWorker subscribes the change listener to the write events of the running backend.
func StartChangeWorker(listener *service.ChangeListener) {
	if listener == nil {
		return
	}
	listener.RegisterHandlers()
}
