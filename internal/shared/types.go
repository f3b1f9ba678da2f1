package shared

// Asynq task types
const (
	TypeSendWelcomeEmail = "subscriber:send_welcome"
	TypeWarmCatalogCache = "catalog:warm_cache"
)

// Asynq queues
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// WelcomeEmailPayload là payload của TypeSendWelcomeEmail
type WelcomeEmailPayload struct {
	SubscriberID int64  `json:"subscriberId"`
	Email        string `json:"email"`
	BeeID        *int64 `json:"beeId,omitempty"`
	UseCaseSlug  string `json:"useCaseSlug,omitempty"`
}

// WarmCatalogCachePayload không có field, giữ struct để payload luôn là JSON hợp lệ
type WarmCatalogCachePayload struct{}
