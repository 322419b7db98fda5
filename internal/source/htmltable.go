package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/couchcryptid/tidytable/internal/table"
)

// DefaultFetchTimeout bounds the scrape fetch when no client is supplied.
const DefaultFetchTimeout = 10 * time.Second

// HTMLTable fetches a page and extracts one table element into a raw table.
// The table is located either by document-order index or by a marker token
// matched against the element's id or class; a marker matching zero or more
// than one table fails fast rather than guessing.
type HTMLTable struct {
	URL string
	// TableIndex selects the nth <table> in document order. Ignored when
	// Marker is set.
	TableIndex int
	// Marker selects the table whose id or class contains this token.
	Marker string
	// Client overrides the HTTP client; nil uses a client bounded by
	// DefaultFetchTimeout.
	Client *http.Client
}

func (s *HTMLTable) Describe() string { return s.URL }

func (s *HTMLTable) Extract(ctx context.Context) (*table.Table, error) {
	doc, err := s.fetch(ctx)
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}

	node, err := s.locate(doc)
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}

	grid := tableGrid(node)
	if len(grid) < 2 {
		return nil, &table.SourceError{Source: s.Describe(), Err: errors.New("table has no data rows")}
	}

	header := grid[0]
	rows := make([][]string, len(grid)-1)
	for i, r := range grid[1:] {
		rows[i] = padRow(r, len(header))
	}
	tbl, err := table.FromStrings(header, rows)
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}
	return tbl, nil
}

func (s *HTMLTable) fetch(ctx context.Context) (*html.Node, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// locate finds the requested table element or fails descriptively.
func (s *HTMLTable) locate(doc *html.Node) (*html.Node, error) {
	tables := findTables(doc)
	if len(tables) == 0 {
		return nil, errors.New("document contains no tables")
	}

	if s.Marker == "" {
		if s.TableIndex < 0 || s.TableIndex >= len(tables) {
			return nil, fmt.Errorf("table index %d not found (document has %d tables)", s.TableIndex, len(tables))
		}
		return tables[s.TableIndex], nil
	}

	var matches []*html.Node
	for _, t := range tables {
		if hasMarker(t, s.Marker) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no table matches marker %q", s.Marker)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("marker %q is ambiguous: matches %d tables", s.Marker, len(matches))
	}
}

func findTables(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			out = append(out, n)
			// Nested tables are treated as cell content, not candidates.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func hasMarker(n *html.Node, marker string) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			if a.Val == marker {
				return true
			}
		case "class":
			for _, c := range strings.Fields(a.Val) {
				if c == marker {
					return true
				}
			}
		}
	}
	return false
}

// tableGrid flattens a table element into rows of cell text. Cells with a
// colspan repeat their text across the spanned positions so downstream rows
// stay aligned with the header.
func tableGrid(tbl *html.Node) [][]string {
	var grid [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			grid = append(grid, rowCells(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tbl)
	return grid
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := nodeText(c)
		for i := 0; i < colspan(c); i++ {
			cells = append(cells, text)
		}
	}
	return cells
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "colspan" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 1 {
				return v
			}
		}
	}
	return 1
}

// nodeText collects the text content of a node with whitespace collapsed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
