package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

// newLogger builds the console logger every command writes to. Debug
// entries are only emitted when verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func setLogger(cmd *cobra.Command, log *zap.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, loggerKey{}, log))
}

// logger returns the command's logger, or a no-op logger when the command
// runs outside the root command.
func logger(cmd *cobra.Command) *zap.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
