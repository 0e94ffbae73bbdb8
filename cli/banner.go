package cli

import (
	"fmt"
	"io"
)

// PrintBanner displays the ASCII art logo before a discovery run
func PrintBanner(out io.Writer) {
	banner := `
 __  __              ____                      _
|  \/  | __ _  ___  |  _ \ ___ _ __ ___   ___ | |_ ___
| |\/| |/ _  |/ __| | |_) / _ \ '_   _ \ / _ \| __/ _ \
| |  | | (_| | (__  |  _ <  __/ | | | | | (_) | ||  __/
|_|  |_|\__,_|\___| |_| \_\___|_| |_| |_|\___/ \__\___|
`
	fmt.Fprintln(out, banner)
	fmt.Fprintf(out, "                     LAN control client - v%s\n\n", Version)
}
