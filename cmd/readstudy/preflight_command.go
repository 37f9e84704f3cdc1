package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"readstudy/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Run readiness checks without starting the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checks := preflight.RunAll(cfg)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, check := range checks {
				fmt.Fprintln(out, renderCheckLine(check, colorize))
			}
			if !preflight.Passed(checks) {
				return fmt.Errorf("preflight checks failed")
			}
			return nil
		},
	}
}

func renderCheckLine(check preflight.Result, colorize bool) string {
	label := "FAIL"
	color := ansiRed
	if check.Passed {
		label = "OK"
		color = ansiGreen
	}
	line := fmt.Sprintf("  %-20s [%s] %s", check.Name+":", label, check.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
