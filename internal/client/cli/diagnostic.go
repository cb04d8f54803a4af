package cli

import (
	"fmt"
	"io"
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "🏛  Aztec Temple (type 'help' for commands)")
}

// printDiagnostic is shown when the game could not be initialized.
func printDiagnostic(w io.Writer, serverURL string, err error) {
	fmt.Fprintln(w, "⚠️  Connection issue")
	fmt.Fprintln(w, "The temple could not be reached. Check that:")
	fmt.Fprintf(w, "  1. The backend server is running at %s\n", serverURL)
	fmt.Fprintln(w, "  2. The address and port in your config are correct")
	fmt.Fprintln(w, "  3. Nothing on the network blocks the connection")
	if err != nil {
		fmt.Fprintf(w, "Details: %v\n", err)
	}
}
