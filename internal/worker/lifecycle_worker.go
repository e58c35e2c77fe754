package worker

import (
	"github.com/spec-kit/photoshare-service/internal/service"
)

// StartLifecycleWorker registers the cleanup handlers for domain events.
func StartLifecycleWorker(lifecycle *service.LifecycleService) {
	if lifecycle == nil {
		return
	}
	lifecycle.RegisterHandlers()
}
