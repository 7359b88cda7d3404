package app

import (
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// linerInput reads console lines with editing and a persistent input history.
type linerInput struct {
	line        *liner.State
	historyFile string
}

func newLinerInput(historyFile string) *linerInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	in := &linerInput{
		line:        line,
		historyFile: historyFile,
	}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			if _, err = line.ReadHistory(f); err != nil {
				log.Printf("failed to read input history: %v", err)
			}
			f.Close()
		}
	}
	return in
}

func (l *linerInput) Prompt(prompt string) (string, error) {
	input, err := l.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		l.line.AppendHistory(input)
	}
	return input, nil
}

func (l *linerInput) Close() {
	if l.historyFile != "" {
		f, err := os.OpenFile(l.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			log.Printf("failed to save input history: %v", err)
		} else {
			if _, err = l.line.WriteHistory(f); err != nil {
				log.Printf("failed to save input history: %v", err)
			}
			f.Close()
		}
	}
	if err := l.line.Close(); err != nil {
		log.Printf("failed to restore terminal: %v", err)
	}
}
