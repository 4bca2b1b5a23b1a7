package notification

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "locart/database/repository/catalog"
	"locart/models"
	"locart/utils"
)

// Notifier records in-app notifications. Every method is fire-and-forget:
// failures are logged and never propagate to the caller's operation.
type Notifier interface {
	Notify(userID, title, message, kind string)
	Broadcast(title, message, kind string)
}

// RecordNotifier persists notifications as inbox records.
type RecordNotifier struct {
	catalog catalogRepo.CatalogRepository
}

func NewRecordNotifier(catalog catalogRepo.CatalogRepository) *RecordNotifier {
	return &RecordNotifier{catalog: catalog}
}

func (n *RecordNotifier) Notify(userID, title, message, kind string) {
	rec := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now(),
	}
	if err := n.catalog.CreateNotification(rec); err != nil {
		utils.GetLogger().Warn("failed to record notification",
			zap.String("userID", userID), zap.String("title", title), zap.Error(err))
	}
}

// Broadcast fans one notification out to every user.
func (n *RecordNotifier) Broadcast(title, message, kind string) {
	logger := utils.GetLogger()
	ids, err := n.catalog.ListUserIDs()
	if err != nil {
		logger.Warn("broadcast: failed to list users", zap.Error(err))
		return
	}
	now := time.Now()
	recs := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, models.Notification{
			ID:        uuid.NewString(),
			UserID:    id,
			Title:     title,
			Message:   message,
			Type:      kind,
			CreatedAt: now,
		})
	}
	if len(recs) == 0 {
		return
	}
	if err := n.catalog.CreateNotifications(recs); err != nil {
		logger.Warn("broadcast: failed to record notifications",
			zap.Int("count", len(recs)), zap.Error(err))
	}
}
