package telegram

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const testToken = "test-token"

type fakeFile struct {
	path string
	size int
	data []byte
}

type sentDocument struct {
	name    string
	caption string
	data    []byte
}

// fakeTelegram отвечает на методы Bot API, которые использует бот, и отдаёт файлы
type fakeTelegram struct {
	mu           sync.Mutex
	files        map[string]fakeFile
	messages     []string
	documents    []sentDocument
	getFileCalls int
}

func newFakeTelegram() *fakeTelegram {
	return &fakeTelegram{files: make(map[string]fakeFile)}
}

func (f *fakeTelegram) addFile(id string, file fakeFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[id] = file
}

func (f *fakeTelegram) lastMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

func (f *fakeTelegram) sentDocuments() []sentDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentDocument(nil), f.documents...)
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	apiPrefix := "/bot" + testToken + "/"
	filePrefix := "/file/bot" + testToken + "/"

	switch {
	case strings.HasPrefix(r.URL.Path, filePrefix):
		f.serveFile(w, strings.TrimPrefix(r.URL.Path, filePrefix))
	case strings.HasPrefix(r.URL.Path, apiPrefix):
		f.serveMethod(w, r, strings.TrimPrefix(r.URL.Path, apiPrefix))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeTelegram) serveMethod(w http.ResponseWriter, r *http.Request, method string) {
	w.Header().Set("Content-Type", "application/json")
	const sent = `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":70,"type":"private"}}}`

	switch method {
	case "getMe":
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Filters","username":"filters_bot"}}`)

	case "getFile":
		_ = r.ParseForm()
		id := r.PostFormValue("file_id")

		f.mu.Lock()
		f.getFileCalls++
		file, ok := f.files[id]
		f.mu.Unlock()

		if !ok {
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: invalid file_id"}`)
			return
		}
		fmt.Fprintf(w, `{"ok":true,"result":{"file_id":%q,"file_unique_id":%q,"file_size":%d,"file_path":%q}}`,
			id, id, file.size, file.path)

	case "sendMessage":
		_ = r.ParseForm()
		f.mu.Lock()
		f.messages = append(f.messages, r.PostFormValue("text"))
		f.mu.Unlock()
		fmt.Fprint(w, sent)

	case "sendDocument":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		part, header, err := r.FormFile("document")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer part.Close()
		data, _ := io.ReadAll(part)

		f.mu.Lock()
		f.documents = append(f.documents, sentDocument{
			name:    header.Filename,
			caption: r.FormValue("caption"),
			data:    data,
		})
		f.mu.Unlock()
		fmt.Fprint(w, sent)

	default:
		fmt.Fprintf(w, `{"ok":false,"error_code":404,"description":"method %s is not faked"}`, method)
	}
}

func (f *fakeTelegram) serveFile(w http.ResponseWriter, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.path == path {
			_, _ = w.Write(file.data)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}
