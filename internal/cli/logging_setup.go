package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/logging"
)

// setupLogging configures logging from the resolved config and CLI flags and
// attaches the logger and a trace ID to the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	loggingCfg := cfg.Logging.ToLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.Output = logging.OutputStderr
		loggingCfg.File = ""
	}

	var result logging.LogPathResult
	if loggingCfg.Output == logging.OutputFile {
		result = logging.NewLoggerWithPath(loggingCfg)
	} else {
		result = logging.LogPathResult{Logger: logging.NewLogger(cmd.ErrOrStderr(), loggingCfg)}
	}
	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	logger = logging.WithTraceID(logging.ComponentLogger(result.Logger, "cli"), traceID)

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
