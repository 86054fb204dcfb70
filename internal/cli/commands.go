package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"web-calculator/internal/app"
	"web-calculator/internal/expression"
	"web-calculator/internal/tui"
)

const msgNoHistoryRecorded = "No calculations recorded yet."

func newEvalCommand(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate one expression, e.g. 12+3, 2^8 or √(16)",
		Example: `  calc eval 12+3
  calc eval "2 ^ 8"
  calc eval "√(16)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(strings.Fields(strings.Join(args, "")), "")
			if expr == "" || expr == expression.Initial {
				return errors.New("nothing to evaluate")
			}

			if err := c.history.Load(cmd.Context()); err != nil {
				return err
			}

			state := app.New(c.history.Entries())
			state.Expression = expr

			state, err := c.session.Submit(cmd.Context(), state)
			if err != nil {
				return fmt.Errorf("%s: %w", app.Message(err), err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), state.Result)
			return nil
		},
	}
}

func newHistoryCommand(c *container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the local calculation history",
	}

	historyCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent calculations, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.history.Load(cmd.Context()); err != nil {
					return err
				}
				return listHistory(cmd.OutOrStdout(), c)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget every recorded calculation",
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.history.Clear(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "use <n>",
			Short: "Print the result of entry n (as numbered by list) for reuse",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("entry number: %w", err)
				}
				if err := c.history.Load(cmd.Context()); err != nil {
					return err
				}
				result, err := c.history.Select(n - 1)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			},
		},
	)

	return historyCmd
}

func listHistory(out io.Writer, c *container) error {
	entries := c.history.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%2d | %s | %s = %s\n", i+1, e.Timestamp, e.Expression, e.Result)
	}
	return nil
}

func newTUICommand(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.session.Start(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), c.session, state)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the calc version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
