package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"photofeed/internal/domain"
	"photofeed/internal/ui/commands"
	"photofeed/internal/ui/views"
)

var errEmptyQuery = errors.New("empty query")

// runOnce performs a single search and writes one block per photo to w
func runOnce(ctx context.Context, searcher commands.Searcher, query string, w io.Writer, styled bool) error {
	term := strings.TrimSpace(query)
	if term == "" {
		return errEmptyQuery
	}

	photos, err := searcher.Search(ctx, term)
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		_, err := fmt.Fprintf(w, "No photos for %q\n", term)
		return err
	}

	styles := views.NewStyles()
	for i, p := range photos {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, formatPhoto(p, styles, styled)); err != nil {
			return err
		}
	}
	return nil
}

func formatPhoto(p domain.Photo, styles *views.Styles, styled bool) string {
	title, desc, url := p.Title, p.Description, p.URL
	if styled {
		title = styles.PhotoTitle.Render(title)
		desc = styles.PhotoDesc.Render(desc)
		url = styles.PhotoURL.Render(url)
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	if p.Description != "" {
		b.WriteString(desc + "\n")
	}
	b.WriteString(url + "\n")
	return b.String()
}
