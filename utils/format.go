package utils

import (
	"fmt"
	"math"
	"time"
)

// MessageType selects the color a CLI message is decorated with.
type MessageType int

const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// ANSI escape sequences used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

// DecorateText wraps the message into the escape sequence of its type and
// resets the terminal color afterwards.
func DecorateText(s string, msgType MessageType) string {
	switch msgType {
	case DefaultMessage:
		s = DefaultColor + s
	case StatusMessage:
		s = StatusColor + s
	case SuccessMessage:
		s = SuccessColor + s
	case ErrorMessage:
		s = ErrorColor + s
	default:
		return s
	}
	return s + DefaultColor
}

// FormatTime renders a duration with the largest units it spans,
// from plain seconds up to days.
func FormatTime(d time.Duration) string {
	var (
		days    = int64(d.Hours()) / 24
		hours   = int64(math.Mod(d.Hours(), 24))
		minutes = int64(math.Mod(d.Minutes(), 60))
		seconds = math.Mod(d.Seconds(), 60)
	)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %.2fs", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}
