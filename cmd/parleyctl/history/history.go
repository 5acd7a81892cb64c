package historycmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parleylabs/parley/pkg/journal"
)

const historyLongDesc string = `Print recorded exchanges from a SQLite turn journal.

The journal is written by a parley server started with a journal path;
turns are listed newest first with their per-stage timings.

Examples:
  parleyctl history --journal ~/.parley/journal.db
  parleyctl history -j ./journal.db`

const historyShortDesc string = "Print recorded exchanges from a turn journal"

type historyCommander struct {
	journalPath string
}

func NewHistoryCmd() *cobra.Command {
	cmder := &historyCommander{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: historyShortDesc,
		Long:  historyLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.journalPath, "journal", "j", "", "Path to the SQLite turn journal")
	cmd.MarkFlagRequired("journal")

	return cmd
}

func (c *historyCommander) run(cmd *cobra.Command) error {
	recorder, err := journal.NewSQLiteRecorder(c.journalPath)
	if err != nil {
		return fmt.Errorf("could not open journal %s: %w", c.journalPath, err)
	}
	defer recorder.Close()

	turns, err := recorder.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("could not list turns: %w", err)
	}

	if len(turns) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded turns.")
		return nil
	}

	for _, turn := range turns {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]\n", turn.CreatedAt.Format("2006-01-02 15:04:05"), turn.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  you:    %s\n", turn.Transcript)
		fmt.Fprintf(cmd.OutOrStdout(), "  parley: %s\n", turn.Reply)
		fmt.Fprintf(cmd.OutOrStdout(), "  timing: transcribe %dms, complete %dms, synthesize %dms\n\n",
			turn.TranscribeMillis, turn.CompleteMillis, turn.SynthesizeMillis)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d turns total\n", len(turns))

	return nil
}
