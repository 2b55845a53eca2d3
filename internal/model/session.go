package model

// Role роль пользователя маркетплейса
type Role string

const (
	RoleNone    Role = "" // Роль неизвестна (не залогинен)
	RoleTrainer Role = "TRAINER"
	RoleTrainee Role = "TRAINEE"
)

// ParseRole разбирает роль из строки; неизвестное значение даёт RoleNone
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleTrainer:
		return RoleTrainer
	case RoleTrainee:
		return RoleTrainee
	default:
		return RoleNone
	}
}

// Ключи, под которыми сессия хранится в долговременном хранилище
const (
	SessionKeyToken  = "token"
	SessionKeyRole   = "role"
	SessionKeyEmail  = "email"
	SessionKeyUserID = "userId"
)

// SessionKeys все ключи сессии; пишутся и удаляются только вместе
var SessionKeys = []string{SessionKeyToken, SessionKeyRole, SessionKeyEmail, SessionKeyUserID}

// Session текущая аутентифицированная личность в чате
type Session struct {
	Token           string
	IsAuthenticated bool
	Role            Role
	Email           string
	UserID          *int64 // nil - отсутствует
}

// HasIdentity проверяет что сессия пригодна для действий от имени пользователя
func (s Session) HasIdentity() bool {
	return s.IsAuthenticated && s.UserID != nil
}
