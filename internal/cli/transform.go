package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/editor"
	"github.com/plumehq/plume/internal/hooks"
	"github.com/plumehq/plume/internal/logging"
	"github.com/plumehq/plume/internal/store"
	"github.com/plumehq/plume/internal/workflow"
	"github.com/spf13/cobra"
)

func newTransformCmd() *cobra.Command {
	var instruction string

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Run one transform over a file or stdin and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if instruction == "" {
				return fmt.Errorf("--instruction is required")
			}
			return runTransform(cmd, args, instruction)
		},
	}

	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "what to do with the text")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string, instruction string) error {
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	// The whole input is the selection.
	buf := editor.NewBuffer(string(data))
	buf.SelectAll()

	hm := hooks.NewManager(log)
	hm.RegisterConfigHooks(cfg.Hooks)
	if cfg.HistoryEnabled() {
		hs, closeStore, err := openHistory(cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()
		hm.On(hooks.EventTransformCompleted, "history", store.CompletedHook(hs))
		hm.On(hooks.EventTransformFailed, "history", store.FailedHook(hs))
	}

	tr := workflow.New(
		func() config.AgentConfig { return cfg.Agent },
		workflow.PrompterFunc(func(ctx context.Context, placeholder string) (string, bool, error) {
			return instruction, true, nil
		}),
		&logNotifier{log: log},
		log,
		workflow.WithHooks(hm),
	)

	if err := tr.Run(cmd.Context(), buf); err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), buf.String())
	return err
}

// logNotifier routes workflow notices to the logger, so pipe mode keeps
// stdout clean for the transformed text.
type logNotifier struct {
	log *logging.Logger
}

func (n *logNotifier) Info(msg string)  { n.log.Info().Msg(msg) }
func (n *logNotifier) Warn(msg string)  { n.log.Warn().Msg(msg) }
func (n *logNotifier) Error(msg string) { n.log.Error().Msg(msg) }

func (n *logNotifier) Persistent(msg string) func() {
	n.log.Info().Msg(msg)
	return func() {}
}
