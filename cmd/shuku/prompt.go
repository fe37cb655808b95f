package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// askChoice prompts on the terminal for one of choices, returning def on
// empty input or when stdin is not interactive.
func askChoice(prompt string, choices []string, def string) string {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return def
	}
	fmt.Fprintf(os.Stderr, "%s [%s] (default %s): ", prompt, strings.Join(choices, "/"), def)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def
	}
	for _, choice := range choices {
		if answer == choice || (len(answer) == 1 && strings.HasPrefix(choice, answer)) {
			return choice
		}
	}
	fmt.Fprintf(os.Stderr, "Unrecognized answer %q, using %s\n", answer, def)
	return def
}
