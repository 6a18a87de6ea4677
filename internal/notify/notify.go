// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"keyclip/internal/i18n"
)

const maxMessage = 100

// Notifier отправляет системные уведомления.
type Notifier struct {
	log     *zap.SugaredLogger
	enabled bool
	send    func(title, message string) error
}

// New создаёт новый Notifier. При enabled=false уведомления только пишутся в лог.
func New(log *zap.SugaredLogger, enabled bool) *Notifier {
	return &Notifier{
		log:     log,
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Ready показывает уведомление о запуске.
func (n *Notifier) Ready() {
	n.notify("", i18n.T("notify_ready"))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		n.log.Debugw("Уведомление отключено", "title", title, "message", message)
		return
	}
	if len(message) > maxMessage {
		message = message[:maxMessage] + "..."
	}
	appName := i18n.T("app_name")
	if title != "" {
		title = appName + ": " + title
	} else {
		title = appName
	}
	// Ошибки уведомлений не критичны
	if err := n.send(title, message); err != nil {
		n.log.Debugw("Не удалось показать уведомление", "error", err)
	}
}
