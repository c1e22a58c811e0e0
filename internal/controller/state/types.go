package state

// UserState представляет текущее состояние чата в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход в систему
	StateChoosingRole    UserState = "choosing_role"
	StateWaitingForLogin UserState = "waiting_for_login"
	StateProfileMenu     UserState = "profile_menu"

	// Редактирование профиля
	StateEditingField UserState = "editing_field"
	StateEditingValue UserState = "editing_value"

	// Сдача видео-задания
	StateChoosingTask        UserState = "choosing_task"
	StateWaitingForTaskVideo UserState = "waiting_for_task_video"

	// Kitobxonlik: выбор книги и подтверждение чтения
	StateChoosingMonth            UserState = "choosing_month"
	StateChoosingBook             UserState = "choosing_book"
	StateWaitingForCustomBookName UserState = "waiting_for_custom_book_name"
	StateWaitingForVoiceMessage   UserState = "waiting_for_voice_message"
	StateWaitingForPageCount      UserState = "waiting_for_page_count"

	// Загрузка книги координатором
	StateUploadingBookTitle UserState = "uploading_book_title"
	StateUploadingBookMonth UserState = "uploading_book_month"
	StateUploadingBookFile  UserState = "uploading_book_file"
)

// Ключи временных данных диалога
const (
	KeySelectedRole    = "selected_role"
	KeyEditField       = "edit_field"
	KeySelectedTask    = "selected_task"
	KeySelectedMonth   = "selected_month"
	KeySelectedBookID  = "selected_book_id"
	KeyCustomBookTitle = "custom_book_title"
	KeySubmissionID    = "submission_id"
	KeyBookTitle       = "book_title"
	KeyBookMonth       = "book_month"
)

// UserData хранит состояние и временные данные чата во время диалога
type UserData struct {
	State UserState         `json:"state"`
	Data  map[string]string `json:"data"`
}
