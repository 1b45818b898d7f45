package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/editor"
	"github.com/mithrel/marpdeck/internal/ipc"
	"github.com/mithrel/marpdeck/internal/logger"
)

type request struct {
	RPC    string           `json:"jsonrpc"`
	ID     *json.RawMessage `json:"id,omitempty"`
	Method string           `json:"method"`
	Params json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	RPC    string           `json:"jsonrpc"`
	ID     *json.RawMessage `json:"id,omitempty"`
	Result interface{}      `json:"result,omitempty"`
	Error  interface{}      `json:"error,omitempty"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
}

type serverCapabilities struct {
	CompletionProvider completionProvider `json:"completionProvider"`
}

type completionProvider struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// LSP CompletionItemKind values.
const (
	kindValue   = 12
	kindSnippet = 15
)

type completionItem struct {
	Label      string `json:"label"`
	Kind       int    `json:"kind,omitempty"`
	Detail     string `json:"detail,omitempty"`
	InsertText string `json:"insertText,omitempty"`
}

type completionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type completionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []completionItem `json:"items"`
}

// containerClasses are the div classes the slide grammar lays out.
var containerClasses = []string{"columns", "col"}

var lg = logger.Nop()

// main serves completions for slide files opened by "marpdeck deck edit".
// It reads Content-Length framed JSON-RPC messages from stdin until EOF.
func main() {
	l, err := logger.NewAt("dev", filepath.Join(os.TempDir(), "marpdeck-lsp.log"))
	if err != nil {
		panic(err)
	}
	lg = l.With("component", "lsp")
	defer lg.Sync()
	lg.Info("server started")

	reader := bufio.NewReader(os.Stdin)
	for {
		msg, err := readMessage(reader)
		if err != nil {
			if err == io.EOF {
				return
			}
			lg.Error("read message", "error", err)
			return
		}
		handleMessage(os.Stdout, msg)
	}
}

// readMessage reads one Content-Length framed message.
func readMessage(reader *bufio.Reader) ([]byte, error) {
	contentLength := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length: ") {
			length, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = length
		}
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing Content-Length")
	}

	msg := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func handleMessage(w io.Writer, msg []byte) {
	lg.Debug("received", "msg", string(msg))

	var req request
	if err := json.Unmarshal(msg, &req); err != nil {
		lg.Error("unmarshal request", "error", err)
		return
	}

	switch req.Method {
	case "initialize":
		resp := initializeResult{
			Capabilities: serverCapabilities{
				CompletionProvider: completionProvider{TriggerCharacters: []string{"\""}},
			},
		}
		sendResponse(w, response{RPC: "2.0", ID: req.ID, Result: resp})
	case "textDocument/completion":
		var params completionParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			lg.Error("completion params", "error", err)
			sendResponse(w, response{RPC: "2.0", ID: req.ID, Result: completionList{}})
			return
		}
		lines := documentLines(params.TextDocument.URI)
		resp := completionList{Items: completions(lines, params.Position, layoutHint)}
		sendResponse(w, response{RPC: "2.0", ID: req.ID, Result: resp})
	case "shutdown":
		sendResponse(w, response{RPC: "2.0", ID: req.ID, Result: nil})
	case "exit":
		lg.Sync()
		os.Exit(0)
	default:
		return
	}
}

func sendResponse(w io.Writer, resp response) {
	bytes, err := json.Marshal(resp)
	if err != nil {
		lg.Error("marshal response", "error", err)
		return
	}
	_, _ = fmt.Fprintf(w, "Content-Length: %d\r\n\r\n%s", len(bytes), bytes)
	lg.Debug("sent", "msg", string(bytes))
}

// completions offers container classes inside an open class="..." and
// template starters while the slide body is still empty.
func completions(lines []string, pos position, hint func() string) []completionItem {
	if pos.Line < 0 || pos.Line >= len(lines) {
		return nil
	}
	line := lines[pos.Line]
	if pos.Character < len(line) {
		line = line[:pos.Character]
	}
	if inClassAttr(line) {
		items := make([]completionItem, 0, len(containerClasses))
		for _, c := range containerClasses {
			items = append(items, completionItem{Label: c, Kind: kindValue})
		}
		return items
	}
	if !bodyEmpty(lines) {
		return nil
	}
	detail := hint()
	items := make([]completionItem, 0, len(catalog.Kinds()))
	for _, t := range catalog.Templates() {
		items = append(items, completionItem{
			Label:      t.DisplayName,
			Kind:       kindSnippet,
			Detail:     strings.TrimSpace(t.Kind + " " + detail),
			InsertText: t.DefaultText,
		})
	}
	return items
}

// inClassAttr reports whether the text before the cursor ends inside an
// unterminated class="..." of a div tag.
func inClassAttr(prefix string) bool {
	i := strings.LastIndex(prefix, `class="`)
	if i < 0 || !strings.Contains(prefix[:i], "<div") {
		return false
	}
	return !strings.Contains(prefix[i+len(`class="`):], `"`)
}

func bodyEmpty(lines []string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, strings.TrimSpace(editor.CommentPrefix)) {
			continue
		}
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// documentLines reads the file behind a file:// uri.
func documentLines(uri string) []string {
	data, err := os.ReadFile(strings.TrimPrefix(uri, "file://"))
	if err != nil {
		lg.Warn("read document", "uri", uri, "error", err)
		return nil
	}
	return strings.Split(string(data), "\n")
}

// layoutHint asks the daemon how much text fits on a slide; an
// unreachable daemon yields no hint.
func layoutHint() string {
	sock, err := ipc.SocketPath()
	if err != nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	resp, err := ipc.Request(ctx, sock, ipc.Message{Name: ipc.CmdLayout})
	if err != nil || !resp.OK || resp.Dims == nil {
		return ""
	}
	return fmt.Sprintf("(~%d chars × %d lines)", resp.Dims.EstCharsPerLine, resp.Dims.EstLinesPerSlide)
}
