// Package notify carries user-facing notices from the storefront core to the
// presentation layer.
package notify

import (
	"context"

	"github.com/angelmondragon/storefront/pkg/logger"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a titled message shown to the user after a transition.
type Notice struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Level Level  `json:"level"`
}

// IsZero reports whether no notice was emitted.
func (n Notice) IsZero() bool {
	return n == Notice{}
}

func Success(title, text string) Notice {
	return Notice{Title: title, Text: text, Level: LevelSuccess}
}

func Failure(title, text string) Notice {
	return Notice{Title: title, Text: text, Level: LevelError}
}

// Notifier receives every notice the core emits.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, notice Notice)

func (f NotifierFunc) Notify(ctx context.Context, notice Notice) {
	f(ctx, notice)
}

// LogNotifier writes notices to the structured log.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Notify(ctx context.Context, notice Notice) {
	if n == nil || n.logg == nil || notice.IsZero() {
		return
	}
	ctx = n.logg.WithFields(ctx, map[string]any{
		"notice_title": notice.Title,
		"notice_level": string(notice.Level),
	})
	n.logg.Info(ctx, notice.Text)
}

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(context.Context, Notice) {})
