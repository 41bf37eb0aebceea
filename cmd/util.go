package cmd

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()

	greenCheck = color.GreenString("✔")
	redCross   = color.RedString("✘")
)

// BeQuietError tells Execute that the failure was already reported and only
// a non-zero exit status is left to do.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "be quiet"
}

func logSuccess(format string, args ...any) {
	log.Info().Msgf(greenCheck+" "+format, args...)
}

func logError(err error, format string, args ...any) error {
	log.Error().Msgf(redCross+" "+format, args...)
	if err != nil {
		log.Error().Msgf("error: %v", err)
	}
	return BeQuietError{}
}

func applyTableFormat(t table.Writer) {
	style := table.StyleRounded
	style.Format.Header = 0 // keep header casing
	t.SetStyle(style)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
