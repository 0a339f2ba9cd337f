package rabbitmq

// NotificationsExchange — exchange для всех уведомлений пользователям.
const NotificationsExchange = "notifications"

// Очередь и ключ маршрутизации уведомлений об истекающих планах.
const (
	PlanExpiringQueue      = "notification.plan-expiring"
	PlanExpiringRoutingKey = "plan.expiring"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений для настройки канала.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: PlanExpiringQueue, RoutingKey: PlanExpiringRoutingKey},
	}
}
