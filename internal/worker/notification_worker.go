package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/devconnect-service/internal/service"
)

// StartNotificationWorker subscribes the notification handlers for
// registration, like and comment events.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker started")
}
