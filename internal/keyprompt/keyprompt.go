// Package keyprompt is a minimal stdin menu for choosing a gamekeys
// catalogue entry when an archive turns out to be script-bearing.
package keyprompt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sumireworks/ybarc/pkg/gamekeys"
)

// Select lists catalogue by display name, reads a numeric choice from r,
// and returns the chosen entry's key bytes. Output prompts go to w.
func Select(r io.Reader, w io.Writer, catalogue gamekeys.Catalogue) ([]byte, error) {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Select a decryption key:")
	for i, name := range names {
		fmt.Fprintf(w, "  %d) %s\n", i+1, name)
	}
	fmt.Fprint(w, "> ")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("keyprompt: read selection: %w", err)
		}
		return nil, fmt.Errorf("keyprompt: no selection entered")
	}

	choice := strings.TrimSpace(scanner.Text())
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(names) {
		return nil, fmt.Errorf("keyprompt: invalid selection %q", choice)
	}

	return catalogue.KeyBytes(names[n-1])
}
