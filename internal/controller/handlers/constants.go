package handlers

// Тексты кнопок меню. Обработчики матчат их как свободный текст.
const (
	BtnProfile   = "Profile"
	BtnEdit      = "Edit"
	BtnLogout    = "Logout"
	BtnTasks     = "Tasks"
	BtnReading   = "Reading (Kitobxonlik)"
	BtnAddBook   = "📤 Add Book"
	BtnListBooks = "📋 List Books"
	BtnCancel    = "Bekor qilish"
	BtnCancelEn  = "🚫 Cancel"
)

// Кнопки выбора роли
const (
	BtnRoleStudent     = "Student"
	BtnRoleCoordinator = "Coordinator"
	BtnRoleParent      = "Parent"
)

// Кнопки редактируемых полей профиля
const (
	BtnFieldUsername  = "Username"
	BtnFieldFirstName = "First name"
	BtnFieldLastName  = "Last name"
	BtnFieldPassword  = "Password"
)

// MaxBookTitleLength лимит названия книги при загрузке
const MaxBookTitleLength = 200

// Months месяцы программы kitobxonlik, в порядке показа
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Mime-типы, разрешённые для файла книги
var allowedBookMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}
