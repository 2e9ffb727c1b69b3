package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/irisgriv/fitc/pkg/repl"
)

const (
	historyFile = ".fitc_history"
	promptMain  = "fitc> "
	promptCont  = "....> "
)

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("fitc interactive session - type :help for commands, :quit to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := repl.New()
	for {
		prompt := promptMain
		if session.Pending() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == ":quit" || trimmed == ":q" {
			return nil
		}
		if trimmed != "" {
			ln.AppendHistory(line)
		}

		out, err := session.Eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		if out != "" {
			fmt.Print(out)
		}
	}
}
