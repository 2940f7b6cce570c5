package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()

	if config.DebugLog != "" {
		f, err := tea.LogToFile(config.DebugLog, "plotterm")
		if err != nil {
			fmt.Fprintln(os.Stderr, "debug log:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := initialModel(config)
	if len(os.Args) > 1 {
		if err := m.openFile(os.Args[1], false); err != nil {
			m.errorMessage = err.Error()
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func initialModel(config *Config) *model {
	if config == nil {
		config = defaultConfig()
	}
	m := &model{
		mode:   ModeNormal,
		config: config,
	}
	m.addNewBuffer("")
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}
