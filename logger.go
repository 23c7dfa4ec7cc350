package txbind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ILogger is what the transaction manager and the session pools log through.
// Debugf carries the per-transaction trace (begin, join, overrides applied
// and restored), Warningf/Errorf the conditions that do not surface as
// returned errors, such as a failed restoration on the panic path.
type ILogger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warningf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

// SlogLogger adapts a *slog.Logger to ILogger. Every record is emitted under
// one fixed message with the formatted text in the "message" attribute, so
// aggregation stays keyed by component rather than by free-form text.
type SlogLogger struct {
	l   *slog.Logger
	msg string
}

// NewSlogLogger returns a SlogLogger emitting records under msg.
func NewSlogLogger(l *slog.Logger, msg string) (*SlogLogger, error) {
	if msg == "" {
		return nil, errors.New("NewSlogLogger: msg cannot be empty")
	}

	return &SlogLogger{
		l:   l,
		msg: msg,
	}, nil
}

func (s *SlogLogger) Debugf(ctx context.Context, format string, args ...any) {
	s.l.DebugContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

func (s *SlogLogger) Infof(ctx context.Context, format string, args ...any) {
	s.l.InfoContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

func (s *SlogLogger) Warningf(ctx context.Context, format string, args ...any) {
	s.l.WarnContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

func (s *SlogLogger) Errorf(ctx context.Context, format string, args ...any) {
	s.l.ErrorContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}
