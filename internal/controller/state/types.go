package state

// UserState текущий шаг диалога в чате
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Вход
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Регистрация
	StateRegisterEmail     UserState = "register_email"
	StateRegisterPassword  UserState = "register_password"
	StateRegisterRole      UserState = "register_role"
	StateRegisterFirstName UserState = "register_first_name"
	StateRegisterLastName  UserState = "register_last_name"
	StateRegisterMainSkill UserState = "register_main_skill"

	// Поиск тренеров
	StateSearchSkill    UserState = "search_skill"
	StateSearchLocation UserState = "search_location"
	StateSearchVerified UserState = "search_verified"

	// Кабинет тренера
	StateAddAvailabilityStart UserState = "add_availability_start"
	StateAddAvailabilityEnd   UserState = "add_availability_end"
	StateRateHourly           UserState = "rate_hourly"
	StateRateDaily            UserState = "rate_daily"
)

// Ключи временных данных диалога
const (
	KeyEmail     = "email"
	KeyPassword  = "password"
	KeyRole      = "role"
	KeyFirstName = "first_name"
	KeyLastName  = "last_name"
	KeySkill     = "skill"
	KeyLocation  = "location"
	KeyStart     = "start"
	KeyRateType  = "rate_type"
	KeyHourly    = "hourly"
)

// UserData хранит временные данные чата во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{}
}
