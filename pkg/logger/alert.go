package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap/zapcore"
)

const keyLogHookSendAlert = "send_alert"

// AlertCore forwards flagged error entries to an ops webhook so failures in
// background jobs are noticed without anyone tailing logs.
type AlertCore struct {
	core       zapcore.Core
	webhookURL string
	minLevel   zapcore.Level
}

func (a *AlertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	return &AlertCore{
		core:       a.core.With(fields),
		webhookURL: a.webhookURL,
		minLevel:   a.minLevel,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return a.core.Check(entry, checkedEntry).AddCore(entry, a)
	}
	return checkedEntry
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	shouldSend := false
	for _, f := range fields {
		if f.Key == keyLogHookSendAlert && f.Type == zapcore.BoolType && f.Integer == 1 {
			shouldSend = true
			break
		}
	}
	if entry.Level >= a.minLevel && shouldSend {
		go a.sendAlert(entry, fields) // async so logging never blocks
	}
	return a.core.Write(entry, fields)
}

func (a *AlertCore) Sync() error {
	return a.core.Sync()
}

func (a *AlertCore) sendAlert(entry zapcore.Entry, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	fieldStr := ""
	for k, v := range enc.Fields {
		if k == keyLogHookSendAlert {
			continue
		}
		fieldStr += fmt.Sprintf("• %s: %v\n", k, v)
	}

	message := fmt.Sprintf(
		"🚨 %s Alert\n\nMessage: %s\n\nFields:\n%s\nTime: %s",
		entry.Level.CapitalString(),
		entry.Message,
		fieldStr,
		entry.Time.Format("2006-01-02 15:04:05"),
	)

	payload := map[string]interface{}{
		"text": message,
	}

	jsonBody, _ := json.Marshal(payload)
	http.Post(a.webhookURL, "application/json", bytes.NewBuffer(jsonBody))
}
