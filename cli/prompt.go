package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question and reads the answer from in.
// An empty answer or EOF selects defaultYes.
func Confirm(in *bufio.Reader, out io.Writer, question string, defaultYes bool) bool {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(out, "%s (%s): ", question, hint)
		input, err := in.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))

		switch input {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		case "":
			return defaultYes
		}

		if err != nil {
			return defaultYes
		}
		fmt.Fprintln(out, "Invalid answer. Please type y or n.")
	}
}
