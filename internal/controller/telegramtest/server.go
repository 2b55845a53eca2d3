// Package telegramtest поднимает фейковый Bot API для тестов обработчиков.
// Сервер записывает каждый вызов метода с его параметрами
package telegramtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/require"
)

const token = "123456:test-token"

// Методы, которые возвращают bool вместо объекта
var boolMethods = map[string]bool{
	"answerCallbackQuery": true,
	"deleteMessage":       true,
	"setMyCommands":       true,
}

// Call один вызов Bot API
type Call struct {
	Method string
	Params map[string]string
}

// Server фейковый Bot API
type Server struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []Call
}

// NewServer запускает сервер; он закрывается вместе с тестом
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

// Bot создаёт клиента, который ходит в этот сервер
func (s *Server) Bot(t *testing.T) *bot.Bot {
	t.Helper()

	b, err := bot.New(token, bot.WithServerURL(s.srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return b
}

// Calls возвращает вызовы метода в порядке поступления
func (s *Server) Calls(method string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call
	for _, c := range s.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Methods возвращает имена всех вызванных методов по порядку
func (s *Server) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.Method)
	}
	return out
}

// Texts возвращает поле text всех sendMessage по порядку
func (s *Server) Texts() []string {
	calls := s.Calls("sendMessage")
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Params["text"])
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	params := make(map[string]string)
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Params: params})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if boolMethods[method] {
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
}
