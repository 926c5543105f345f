package notify

import (
	log "github.com/sirupsen/logrus"
)

// Severity mirrors the toast levels of the original UI.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier is the notification sink the core reports user-facing messages to.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Confirmer answers the explicit yes/no questions destructive operations must
// ask before taking effect.
type Confirmer interface {
	Confirm(question string) bool
}

// LogNotifier routes notifications to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		log.Error(message)
	case SeverityWarning:
		log.Warn(message)
	default:
		log.Info(message)
	}
}

// StaticConfirmer answers every question with a fixed value. The HTTP layer
// uses it to carry the caller's confirm flag into the service.
type StaticConfirmer struct {
	Answer bool
}

func (c StaticConfirmer) Confirm(question string) bool {
	if !c.Answer {
		log.Debugf("confirmation declined: %s", question)
	}
	return c.Answer
}
