package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/odvcencio/furry-virtual/internal/config"
)

// blockSeparator splits markdown and code sources into items.
const blockSeparator = "%%"

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua ut enim ad minim veniam quis
nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat`)

// lorem returns n words, cycling from an offset so neighbours differ.
func lorem(offset, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = loremWords[(offset+i)%len(loremWords)]
	}
	return strings.Join(words, " ")
}

// generateItems builds n items starting at index start. Item lengths vary
// so rows wrap to different heights.
func generateItems(kind string, start, n int) []string {
	items := make([]string, n)
	for j := range items {
		i := start + j
		words := 3 + (i*7)%29
		switch kind {
		case config.RendererMarkdown:
			body := fmt.Sprintf("**Item %d** %s", i, lorem(i, words))
			if i%3 == 0 {
				body += fmt.Sprintf("\n\n- %s\n- `code %d`", lorem(i+5, 4), i)
			}
			items[j] = body
		case config.RendererCode:
			var sb strings.Builder
			fmt.Fprintf(&sb, "// item %d: %s\nfunc item%d() int {\n", i, lorem(i, 4), i)
			for k := 0; k < i%4; k++ {
				fmt.Fprintf(&sb, "\tx%d := %d\n", k, i*k)
			}
			fmt.Fprintf(&sb, "\treturn %d\n}", i)
			items[j] = sb.String()
		default:
			items[j] = fmt.Sprintf("Item %d: %s", i, lorem(i, words))
		}
	}
	return items
}

// readItems reads items from r. Text items are one per non-empty line;
// markdown and code items are blocks separated by a line holding "%%".
func readItems(r io.Reader, kind string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var items []string
	if kind == config.RendererText {
		for scanner.Scan() {
			if line := strings.TrimRight(scanner.Text(), "\r"); strings.TrimSpace(line) != "" {
				items = append(items, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading items: %w", err)
		}
		return items, nil
	}

	var block []string
	flush := func() {
		text := strings.Trim(strings.Join(block, "\n"), "\n")
		if strings.TrimSpace(text) != "" {
			items = append(items, text)
		}
		block = block[:0]
	}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == blockSeparator {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	flush()
	return items, nil
}
