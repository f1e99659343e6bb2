package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/log"
)

func newEditCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [files...]",
		Short: "Edit files in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), flags.options(args))
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Shutdown(); err != nil {
					log.Warn("shutdown", "error", err)
				}
			}()
			flags.overrideLogLevel()
			if err := a.WatchConfig(); err != nil {
				log.Warn("config hot reload disabled", "error", err)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			return runEditor(screen, a)
		},
	}
}

// runEditor feeds screen key events to the application and redraws after
// each one, until the last document closes or the screen is finalized.
func runEditor(screen tcell.Screen, a *app.Application) error {
	v := &view{}
	v.draw(screen, a.Engine())

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			kev, ok := convertKey(ev)
			if !ok {
				log.Debug("unmapped terminal key", "key", ev.Name())
				continue
			}
			a.HandleEvent(kev)
		}

		select {
		case <-a.Done():
			return nil
		default:
		}
		v.draw(screen, a.Engine())
	}
}
