package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/editor"
	"github.com/plumehq/plume/internal/hooks"
	"github.com/plumehq/plume/internal/logging"
	"github.com/plumehq/plume/internal/store"
	"github.com/plumehq/plume/internal/tui"
	"github.com/plumehq/plume/internal/workflow"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a file in the editor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	st, err := config.NewStore(paths.Config)
	if err != nil {
		return err
	}
	cfg := st.Get()

	// The TUI owns the terminal, so logs go to a file.
	flog, err := editorLogger(cfg)
	if err != nil {
		return err
	}
	for _, issue := range config.Validate(&cfg) {
		flog.Warn().Str("key", issue.Path).Msg(issue.Message)
	}

	var file, text string
	if len(args) == 1 {
		file = args[0]
		data, err := os.ReadFile(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", file, err)
		}
		text = string(data)
	}
	buf := editor.NewBuffer(text)

	hm := hooks.NewManager(flog)
	hm.RegisterConfigHooks(cfg.Hooks)
	if cfg.HistoryEnabled() {
		hs, closeStore, err := openHistory(cfg, flog)
		if err != nil {
			return err
		}
		defer closeStore()
		hm.On(hooks.EventTransformCompleted, "history", store.CompletedHook(hs))
		hm.On(hooks.EventTransformFailed, "history", store.FailedHook(hs))
	}

	app := tui.NewApp(buf, file, st, flog)
	p := tea.NewProgram(app, tea.WithAltScreen())
	app.AttachProgram(p)
	app.SetRunner(workflow.New(st.Agent, app.Prompter(), app.Notifier(), flog, workflow.WithHooks(hm)))

	_, err = p.Run()
	return err
}

func editorLogger(cfg config.Config) (*logging.Logger, error) {
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	path := cfg.Logging.File
	if path == "" {
		path = filepath.Join(paths.Logs, "plume.log")
	}
	return logging.NewFile(path, level)
}

// openHistory builds the configured history store. The returned func
// releases any backing resources.
func openHistory(cfg config.Config, lg *logging.Logger) (store.HistoryStore, func() error, error) {
	if cfg.History.Store == "memory" {
		return store.NewMemoryHistoryStore(), func() error { return nil }, nil
	}
	db, err := store.Open(paths.History, lg)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSQLiteHistoryStore(db), db.Close, nil
}
