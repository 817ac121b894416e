package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "cv-filters/internal/application"
	"cv-filters/internal/container"
	"cv-filters/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я применяю фильтры к изображениям.

📸 Отправьте фото или картинку файлом (png, jpg), и я верну результат в PNG.

📋 Команды:
/filters — список фильтров
/filter <название> — выбрать фильтр
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Выберите фильтр: /filter canny
2️⃣ Отправьте фото или файл png/jpg
3️⃣ Получите обработанное изображение файлом PNG

По умолчанию применяется Grayscale.

📋 Команды:
/filters — список фильтров
/cancel — отменить операцию`

	msgFilterUsage     = "Укажите фильтр, например: /filter laplacian"
	msgCancelled       = "❌ Операция отменена."
	msgSendPhoto       = "📸 Отправьте фото или файл png/jpg."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Предыдущее изображение ещё обрабатывается."
	msgUnsupported     = "⚠️ Поддерживаются только png, jpg и jpeg."
	msgTooLarge        = "⚠️ Файл слишком большой."
	msgRemoverDisabled = "⚠️ Удаление фона не настроено на сервере. Выберите другой фильтр: /filters"
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое."
)

var errTooLarge = errors.New("file is too large")

// Bot представляет Telegram-бота
type Bot struct {
	api          *tgbotapi.BotAPI
	users        *app.UserService
	images       *app.ImageService
	filters      *app.FilterService
	processing   *app.ProcessingService
	client       *http.Client
	fileEndpoint string
	maxBytes     int64
	wg           sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, maxBytes int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	slog.Info("telegram bot authorized", "account", api.Self.UserName)

	return newBot(api, c, maxBytes), nil
}

func newBot(api *tgbotapi.BotAPI, c *container.Container, maxBytes int64) *Bot {
	return &Bot{
		api:          api,
		users:        c.UserService,
		images:       c.ImageService,
		filters:      c.FilterService,
		processing:   c.ProcessingService,
		client:       &http.Client{Timeout: time.Minute},
		fileEndpoint: tgbotapi.FileEndpoint,
		maxBytes:     maxBytes,
	}
}

// Run обрабатывает сообщения, пока не отменён ctx. Каждое сообщение
// обрабатывается в своей горутине; перед выходом Run дожидается их.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.wg.Wait()
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			msg := update.Message
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.handleMessage(ctx, msg)
			}()
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if file, ok := imageFile(msg); ok {
		user, started, err := b.users.BeginProcessing(ctx, msg.From.ID, msg.Chat.ID)
		if err != nil {
			slog.Error("begin processing", "user_id", msg.From.ID, "error", err)
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		if !started {
			b.sendMessage(msg.Chat.ID, msgBusy)
			return
		}
		b.handleImage(ctx, msg, user, file)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.users.Cancel(ctx, userID, chatID); err != nil {
			slog.Error("reset user state", "user_id", userID, "error", err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "filters":
		b.sendMessage(chatID, filtersText(b.filters.Names()))

	case "filter":
		arg := strings.TrimSpace(msg.CommandArguments())
		if arg == "" {
			b.sendMessage(chatID, msgFilterUsage)
			return
		}
		filter, err := entity.ParseFilter(arg)
		if err != nil {
			b.sendMessage(chatID, fmt.Sprintf("❓ Неизвестный фильтр %q.\n\n%s", arg, filtersText(b.filters.Names())))
			return
		}
		if _, err := b.users.SelectFilter(ctx, userID, chatID, filter); err != nil {
			slog.Error("select filter", "user_id", userID, "error", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("✅ Выбран фильтр %s. Отправьте изображение.", filter))

	case "cancel":
		if _, err := b.users.Cancel(ctx, userID, chatID); err != nil {
			slog.Error("cancel", "user_id", userID, "error", err)
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, user *entity.User, file incomingFile) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	defer func() {
		if err := b.users.FinishProcessing(ctx, userID); err != nil {
			slog.Error("finish processing", "user_id", userID, "error", err)
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	data, name, err := b.downloadFile(ctx, file)
	if err != nil {
		slog.Error("download file", "user_id", userID, "error", err)
		if errors.Is(err, errTooLarge) {
			b.sendMessage(chatID, msgTooLarge)
		} else {
			b.sendMessage(chatID, msgProcessingError)
		}
		return
	}

	img, src, err := b.images.Acquire(ctx, app.AcquireRequest{
		Upload: &app.Upload{Name: name, Reader: bytes.NewReader(data)},
	})
	if err != nil {
		slog.Warn("acquire image", "user_id", userID, "name", name, "error", err)
		if errors.Is(err, entity.ErrUnsupportedFormat) {
			b.sendMessage(chatID, msgUnsupported)
		} else {
			b.sendMessage(chatID, msgProcessingError)
		}
		return
	}

	result, err := b.processing.Process(ctx, src, img, user.Filter)
	if err != nil {
		if errors.Is(err, entity.ErrRemoverDisabled) {
			slog.Warn("process image", "user_id", userID, "filter", user.Filter, "error", err)
			b.sendMessage(chatID, msgRemoverDisabled)
			return
		}
		slog.Error("process image", "user_id", userID, "filter", user.Filter, "error", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: result.Filename, Bytes: result.Result})
	doc.Caption = string(result.Filter)
	if _, err := b.api.Send(doc); err != nil {
		slog.Error("send document", "chat_id", chatID, "error", err)
	}
}

// incomingFile фото или документ из сообщения
type incomingFile struct {
	ID   string
	Name string
}

// imageFile выбирает фото с максимальным разрешением или документ-изображение.
func imageFile(msg *tgbotapi.Message) (incomingFile, bool) {
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		return incomingFile{ID: photo.FileID}, true
	}
	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") {
		return incomingFile{ID: doc.FileID, Name: doc.FileName}, true
	}
	return incomingFile{}, false
}

func filtersText(names []entity.FilterName) string {
	var sb strings.Builder
	sb.WriteString("🔧 Фильтры:\n")
	for _, f := range names {
		fmt.Fprintf(&sb, "• %s — /filter %s\n", f, f.Slug())
	}
	return sb.String()
}

// downloadFile скачивает файл из Telegram и возвращает данные и имя файла
func (b *Bot) downloadFile(ctx context.Context, in incomingFile) ([]byte, string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: in.ID})
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}
	if b.maxBytes > 0 && int64(file.FileSize) > b.maxBytes {
		return nil, "", errTooLarge
	}

	name := in.Name
	if name == "" {
		name = path.Base(file.FilePath)
	}

	link := fmt.Sprintf(b.fileEndpoint, b.api.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if b.maxBytes > 0 {
		r = io.LimitReader(resp.Body, b.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	if b.maxBytes > 0 && int64(len(data)) > b.maxBytes {
		return nil, "", errTooLarge
	}

	return data, name, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("send message", "chat_id", chatID, "error", err)
	}
}
