package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Cache memoizes file contents so repeated caret rendering for many
// diagnostics in the same file does not re-read disk each time.
type Cache struct {
	mu    sync.Mutex
	lines map[string][]string
}

// NewCache creates an empty source-line cache.
func NewCache() *Cache {
	return &Cache{lines: make(map[string][]string)}
}

func (c *Cache) linesFor(file string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ls, ok := c.lines[file]; ok {
		return ls
	}
	ls := readLines(file)
	c.lines[file] = ls
	return ls
}

func readLines(file string) []string {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		// Normalize to NFC so multi-byte identifiers (accents, etc.)
		// keep the caret column aligned with the reported rune offset.
		lines = append(lines, norm.NFC.String(sc.Text()))
	}
	return lines
}

// Render renders the source line at p together with a caret pointing at
// its column, e.g.:
//
//	3 |     let x: Int32 = y;
//	                       ^
func (c *Cache) Render(p Pos) string {
	if !p.Valid() {
		return ""
	}
	lines := c.linesFor(p.File)
	if p.Line-1 >= len(lines) || p.Line-1 < 0 {
		return ""
	}
	line := lines[p.Line-1]
	gutter := fmt.Sprintf("%d | ", p.Line)
	caretCol := p.Column - 1
	if caretCol < 0 {
		caretCol = 0
	}
	if caretCol > len(line) {
		caretCol = len(line)
	}
	caret := strings.Repeat(" ", len(gutter)+caretCol) + "^"
	return gutter + line + "\n" + caret
}
