package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото для фильтра
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// DefaultFilter применяется, пока пользователь не выбрал другой
const DefaultFilter = FilterGrayscale

// User представляет пользователя бота
type User struct {
	ID     int64      // Telegram User ID
	ChatID int64      // Telegram Chat ID
	State  UserState  // Текущее состояние пользователя
	Filter FilterName // Выбранный фильтр
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Filter: DefaultFilter,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SelectFilter запоминает фильтр и переводит пользователя в ожидание фото.
// Идущая обработка не прерывается.
func (u *User) SelectFilter(filter FilterName) {
	u.Filter = filter
	if u.State != StateProcessing {
		u.State = StateAwaitingPhoto
	}
}

// BeginProcessing переводит пользователя в обработку; false, если обработка уже идёт
func (u *User) BeginProcessing() bool {
	if u.State == StateProcessing {
		return false
	}
	u.State = StateProcessing
	return true
}
