package middlewarectx

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
	// Session — ключ для записи кеша сессии в контексте
	Session Key = "session"
	// Permissions — ключ для эффективного набора прав в контексте
	Permissions Key = "permissions"
)
