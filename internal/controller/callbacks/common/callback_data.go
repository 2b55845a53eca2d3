package common

// Форматы callback data. Префиксы с двоеточием несут ID или значение
const (
	CbNoop      = "noop"
	CbDashboard = "dashboard"
	CbToLogin   = "to_login"
	CbShowChart = "show_chart"

	CbViewTrainer  = "view_trainer:"  // view_trainer:trainer_id
	CbBookSlot     = "book_slot:"     // book_slot:slot_id
	CbSlotsPage    = "slots_page:"    // slots_page:page
	CbRefreshSlots = "refresh_slots:" // refresh_slots:trainer_id

	CbSearchRun    = "search_run:"    // search_run:1 (только верифицированные) / search_run:0
	CbRegisterRole = "register_role:" // register_role:TRAINER

	CbAddSlot       = "add_slot"
	CbDeleteSlot    = "del_slot:"         // del_slot:availability_id
	CbConfirmDelete = "del_slot_confirm:" // del_slot_confirm:availability_id
	CbUpdateRates   = "update_rates"
	CbRateType      = "rate_type:" // rate_type:HOUR
)

// KeySlotsPage номер открытой страницы слотов в данных чата
const KeySlotsPage = "slots_page"
