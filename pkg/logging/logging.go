package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// Mode selects how log lines are rendered.
type Mode string

const (
	// ModeCLI renders slog text lines.
	ModeCLI Mode = "cli"
	// ModeActions renders GitHub Actions workflow commands (::error::,
	// ::warning::, ::debug::) so the runner turns them into annotations.
	ModeActions Mode = "actions"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	currentMode   Mode = ModeCLI
)

// Init initializes the logger for either CLI or Actions mode.
// This should be called once at application startup.
func Init(mode Mode, level LogLevel, output io.Writer) {
	opts := &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}

	var handler slog.Handler
	if mode == ModeActions {
		handler = newActionsHandler(output, opts.Level)
	} else {
		mode = ModeCLI
		handler = slog.NewTextHandler(output, opts)
	}

	mu.Lock()
	defaultLogger = slog.New(handler)
	currentMode = mode
	mu.Unlock()

	slog.SetDefault(defaultLogger) // Set for any global slog calls if necessary
}

// InitForCLI initializes the logging system for plain CLI mode.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	Init(ModeCLI, filterLevel, output)
}

// InitForActions initializes the logging system for a GitHub Actions runner.
func InitForActions(filterLevel LogLevel, output io.Writer) {
	Init(ModeActions, filterLevel, output)
}

// DetectMode returns ModeActions when running inside a GitHub Actions job.
func DetectMode() Mode {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return ModeActions
	}
	return ModeCLI
}

// CurrentMode reports the mode selected by the last Init call.
func CurrentMode() Mode {
	mu.RLock()
	defer mu.RUnlock()
	return currentMode
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()

	if logger == nil {
		fmt.Fprintf(os.Stderr, "[LOGGING_ERROR] Logger not initialized. Log: %s [%s] %s\n", time.Now().Format(time.RFC3339), level, msg)
		return
	}

	var slogAttrs []slog.Attr
	slogAttrs = append(slogAttrs, slog.String("subsystem", subsystem))
	if err != nil {
		slogAttrs = append(slogAttrs, slog.String("error", err.Error()))
	}

	logger.LogAttrs(context.Background(), level.SlogLevel(), msg, slogAttrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// actionsHandler writes one workflow command per record. Attributes other than
// subsystem and error are appended as key=value pairs.
type actionsHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

func newActionsHandler(out io.Writer, level slog.Leveler) *actionsHandler {
	return &actionsHandler{mu: &sync.Mutex{}, out: out, level: level}
}

func (h *actionsHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *actionsHandler) Handle(_ context.Context, r slog.Record) error {
	var subsystem, errText string
	var extra []string

	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "subsystem":
			subsystem = a.Value.String()
		case "error":
			errText = a.Value.String()
		default:
			extra = append(extra, a.Key+"="+a.Value.String())
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var b strings.Builder
	if subsystem != "" {
		b.WriteString("[" + subsystem + "] ")
	}
	b.WriteString(r.Message)
	if errText != "" {
		b.WriteString(": " + errText)
	}
	if len(extra) > 0 {
		b.WriteString(" (" + strings.Join(extra, " ") + ")")
	}

	var line string
	if cmd := workflowCommand(r.Level); cmd != "" {
		line = fmt.Sprintf("::%s::%s\n", cmd, EscapeData(b.String()))
	} else {
		line = b.String() + "\n"
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

func (h *actionsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// Groups are flattened; workflow commands have no notion of nesting.
func (h *actionsHandler) WithGroup(string) slog.Handler {
	return h
}

func workflowCommand(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warning"
	case l >= slog.LevelInfo:
		// Plain output; notices would turn every info line into an annotation.
		return ""
	default:
		return "debug"
	}
}

// EscapeData escapes a workflow command payload the same way the official
// Actions toolkit does.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
