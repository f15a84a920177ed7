package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tele "gopkg.in/telebot.v3"
)

// TestToken is the bot token used with FakeBotAPI
const TestToken = "123456:TEST"

// APICall is one recorded Bot API request
type APICall struct {
	Method string
	Params map[string]any
}

// defaultResults holds the message each send method answers with.
// telebot reads the sent media back from the result, so media methods must include it.
var defaultResults = map[string]string{
	"sendPhoto": `{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},` +
		`"photo":[{"file_id":"photo-1","file_unique_id":"p1","width":1,"height":1}]}`,
	"sendVideo": `{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},` +
		`"video":{"file_id":"video-1","file_unique_id":"v1","width":1,"height":1,"duration":1}}`,
	"sendAudio": `{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},` +
		`"audio":{"file_id":"audio-1","file_unique_id":"a1","duration":1}}`,
}

const genericMessage = `{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}`

// FakeBotAPI is an httptest server that imitates the Telegram Bot API.
// Methods answer with a message matching the method unless a result or error is configured.
type FakeBotAPI struct {
	Server *httptest.Server

	mu      sync.Mutex
	calls   []APICall
	results map[string]string
	errors  map[string]string
	files   map[string][]byte
}

// NewFakeBotAPI starts a fake API server closed with the test
func NewFakeBotAPI(t *testing.T) *FakeBotAPI {
	t.Helper()

	f := &FakeBotAPI{
		results: make(map[string]string),
		errors:  make(map[string]string),
		files:   make(map[string][]byte),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// Bot creates an offline bot talking to the fake server
func (f *FakeBotAPI) Bot(t *testing.T) *tele.Bot {
	t.Helper()

	b, err := tele.NewBot(tele.Settings{
		Token:       TestToken,
		URL:         f.Server.URL,
		Offline:     true,
		Synchronous: true,
		OnError:     func(error, tele.Context) {},
	})
	if err != nil {
		t.Fatalf("create bot: %v", err)
	}
	return b
}

// SetResult makes method answer with the given raw JSON result
func (f *FakeBotAPI) SetResult(method, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[method] = result
}

// SetError makes method fail with the given description
func (f *FakeBotAPI) SetError(method, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[method] = description
}

// SetFile serves content at the file download path
func (f *FakeBotAPI) SetFile(path string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
}

// Calls returns all recorded calls
func (f *FakeBotAPI) Calls() []APICall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]APICall(nil), f.calls...)
}

// CallsTo returns recorded calls of one method
func (f *FakeBotAPI) CallsTo(method string) []APICall {
	var calls []APICall
	for _, c := range f.Calls() {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

// Methods returns recorded method names in call order
func (f *FakeBotAPI) Methods() []string {
	var methods []string
	for _, c := range f.Calls() {
		methods = append(methods, c.Method)
	}
	return methods
}

func (f *FakeBotAPI) serve(w http.ResponseWriter, r *http.Request) {
	filePrefix := "/file/bot" + TestToken + "/"
	if strings.HasPrefix(r.URL.Path, filePrefix) {
		f.serveFile(w, r, strings.TrimPrefix(r.URL.Path, filePrefix))
		return
	}

	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	params := make(map[string]any)
	_ = json.NewDecoder(r.Body).Decode(&params)

	f.mu.Lock()
	f.calls = append(f.calls, APICall{Method: method, Params: params})
	result, hasResult := f.results[method]
	description, hasError := f.errors[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if hasError {
		fmt.Fprintf(w, `{"ok":false,"error_code":400,"description":%q}`, description)
		return
	}
	if !hasResult {
		result = defaultResult(method)
	}
	fmt.Fprintf(w, `{"ok":true,"result":%s}`, result)
}

func (f *FakeBotAPI) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	f.mu.Lock()
	content, ok := f.files[path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(content)
}

func defaultResult(method string) string {
	if result, ok := defaultResults[method]; ok {
		return result
	}
	return genericMessage
}
