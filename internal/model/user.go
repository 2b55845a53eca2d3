package model

// Registration данные формы регистрации
type Registration struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      Role   `json:"role" validate:"required,oneof=TRAINER TRAINEE"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	MainSkill string `json:"mainSkill,omitempty" validate:"required_if=Role TRAINER"`
}

// Credentials данные для входа
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse ответ бэкенда на успешный вход
type AuthResponse struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID int64  `json:"userId"`
}
