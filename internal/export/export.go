// Package export renders fetched result pages for non-interactive output.
package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"go.yaml.in/yaml/v3"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted format names
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat validates a format name (case-insensitive, empty = text)
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(Formats(), ", "))
	}
}

// Result is the document written for json and yaml output
type Result struct {
	Query     string         `json:"query" yaml:"query"`
	TotalHits int            `json:"total_hits" yaml:"total_hits"`
	Pages     []int          `json:"pages" yaml:"pages"`
	Hits      []domain.Image `json:"hits" yaml:"hits"`
}

// NewResult flattens pages into one document
func NewResult(pages []domain.Page) Result {
	r := Result{Pages: []int{}, Hits: []domain.Image{}}
	for _, p := range pages {
		r.Query = p.Params.Query
		if p.TotalHits > r.TotalHits {
			r.TotalHits = p.TotalHits
		}
		r.Pages = append(r.Pages, p.Number)
		r.Hits = append(r.Hits, p.Hits...)
	}
	return r
}

// Write renders pages to w in the given format
func Write(w io.Writer, format Format, pages []domain.Page) error {
	switch format {
	case FormatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(NewResult(pages), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewResult(pages)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, pages)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, pages []domain.Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tSIZE\tLIKES\tVIEWS\tTAGS\tURL")
	for _, p := range pages {
		for _, img := range p.Hits {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				img.ID,
				img.User,
				img.Resolution(),
				domain.FormatCount(img.Likes),
				domain.FormatCount(img.Views),
				strings.Join(img.TagList(), ","),
				img.PageURL,
			)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	r := NewResult(pages)
	_, err := fmt.Fprintf(w, "\n%d of %d results for %q\n", len(r.Hits), r.TotalHits, r.Query)
	return err
}
