package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/input/key"
)

type keysFlags struct {
	text    string
	file    string
	clean   bool
	jsonOut bool
}

func newKeysCmd(root *rootFlags) *cobra.Command {
	flags := &keysFlags{}

	cmd := &cobra.Command{
		Use:   "keys <sequence>",
		Short: "Replay a key sequence without a terminal",
		Long: `Replay a vi key sequence such as "dwi<C-r>\"<Esc>" over a text and print
the result. Special keys use <Name> notation.`,
		Example: `  vimcore keys --text "hello world" dw
  vimcore keys --file notes.txt --json "ggdd:w<CR>"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := key.ParseSequence(args[0])
			if err != nil {
				return fmt.Errorf("parsing keys: %w", err)
			}
			if flags.text != "" && flags.file != "" {
				return fmt.Errorf("--text and --file are mutually exclusive")
			}

			opts := root.options(nil)
			opts.Text = flags.text
			if flags.file != "" {
				opts.Files = []string{flags.file}
			}
			if flags.clean {
				opts.Config = config.Default()
				opts.InitPath = ""
			}

			a, err := app.New(cmd.Context(), opts)
			if err != nil {
				return err
			}
			root.overrideLogLevel()

			for _, ev := range events {
				a.HandleEvent(ev)
			}
			return printReplay(cmd, a, flags.jsonOut)
		},
	}

	cmd.Flags().StringVar(&flags.text, "text", "", "initial text")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "file to edit")
	cmd.Flags().BoolVar(&flags.clean, "clean", false,
		"use the built-in configuration and skip the init script")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the result as JSON")
	return cmd
}

func printReplay(cmd *cobra.Command, a *app.Application, jsonOut bool) error {
	eng := a.Engine()
	text := eng.Surface().Text(0, eng.Surface().Len())

	if !jsonOut {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	out := []byte(`{}`)
	fields := []struct {
		path  string
		value any
	}{
		{"text", text},
		{"caret", eng.Surface().Caret()},
		{"mode", eng.Mode().String()},
		{"status", eng.Status()},
		{"modified", false},
	}
	if doc := a.Documents().Active(); doc != nil {
		fields[len(fields)-1].value = doc.IsModified()
	}
	for _, f := range fields {
		var err error
		if out, err = sjson.SetBytes(out, f.path, f.value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
