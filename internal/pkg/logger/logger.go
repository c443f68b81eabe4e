package logger

import (
	"tutor-board/internal/config"

	"go.uber.org/zap"
)

// New returns a development logger for development environments and a JSON
// production logger otherwise.
func New(cfg config.AppConfig) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.IsDevelopment() {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	if cfg.AppName != "" {
		l = l.With(zap.String("app", cfg.AppName))
	}
	return l, nil
}
