package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"photofeed/internal/domain"
)

// MediaNamespace is the media RSS namespace the feed's photo fields live in
const MediaNamespace = "http://search.yahoo.com/mrss/"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingThumbnailURL is returned when a thumbnail element has no url attribute
var ErrMissingThumbnailURL = errors.New("thumbnail element without url attribute")

// Pairing selects how titles, descriptions and thumbnails become records
type Pairing string

const (
	// PairByItem builds one record per <item> carrying all three fields
	PairByItem Pairing = "item"
	// PairPositional zips the three flattened sequences, shortest wins
	PairPositional Pairing = "positional"
)

// ParsePairing maps a config value to a Pairing
func ParsePairing(s string) (Pairing, error) {
	switch Pairing(strings.ToLower(strings.TrimSpace(s))) {
	case PairByItem, "":
		return PairByItem, nil
	case PairPositional:
		return PairPositional, nil
	default:
		return "", fmt.Errorf("unknown pairing %q", s)
	}
}

// Parse decodes a feed document into photo records. A document without a
// root element yields nil and no error; a well-formed document that is not
// an RSS or Atom feed has no items.
//
// Title and description are the concatenated text of every node below the
// media element, untrimmed, so inline markup keeps its words.
func Parse(data []byte, pairing Pairing) ([]domain.Photo, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	itemName := ""
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		itemName = "item"
	case gofeed.FeedTypeAtom:
		itemName = "entry"
	}

	doc, err := scanMedia(data, itemName)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if !doc.root {
		return nil, nil
	}

	if pairing == PairPositional {
		return mapPositional(doc.all)
	}
	return mapByItem(doc.items)
}

func mapByItem(items []mediaFields) ([]domain.Photo, error) {
	photos := make([]domain.Photo, 0, len(items))
	for i, item := range items {
		for _, th := range item.thumbs {
			if !th.ok {
				return nil, fmt.Errorf("item %d: %w", i, ErrMissingThumbnailURL)
			}
		}
		if len(item.titles) == 0 || len(item.descs) == 0 || len(item.thumbs) == 0 {
			continue
		}
		photos = append(photos, domain.Photo{
			Title:       item.titles[0],
			Description: CleanDescription(item.descs[0]),
			URL:         item.thumbs[0].url,
		})
	}
	return photos, nil
}

func mapPositional(all mediaFields) ([]domain.Photo, error) {
	urls := make([]string, 0, len(all.thumbs))
	for i, th := range all.thumbs {
		if !th.ok {
			return nil, fmt.Errorf("thumbnail %d: %w", i, ErrMissingThumbnailURL)
		}
		urls = append(urls, th.url)
	}
	descs := make([]string, len(all.descs))
	for i, d := range all.descs {
		descs[i] = CleanDescription(d)
	}
	return PairSequences(all.titles, descs, urls), nil
}

// PairSequences zips titles with descriptions, then the result with urls.
// Each step stops at the shorter input, so the output has min(N, M, K)
// records in input order.
func PairSequences(titles, descriptions, urls []string) []domain.Photo {
	n := min(len(titles), len(descriptions), len(urls))
	photos := make([]domain.Photo, n)
	for i := range n {
		photos[i] = domain.Photo{
			Title:       titles[i],
			Description: descriptions[i],
			URL:         urls[i],
		}
	}
	return photos
}

type thumbnail struct {
	url string
	ok  bool
}

// mediaFields holds media elements in document order
type mediaFields struct {
	titles []string
	descs  []string
	thumbs []thumbnail
}

func (m *mediaFields) add(other mediaFields) {
	m.titles = append(m.titles, other.titles...)
	m.descs = append(m.descs, other.descs...)
	m.thumbs = append(m.thumbs, other.thumbs...)
}

type mediaDoc struct {
	root  bool
	items []mediaFields // per feed item; empty when itemName is ""
	all   mediaFields   // every media element in the document
}

// scanMedia walks the document once, collecting media elements per item
// and for the whole document. It fails on malformed XML and on text outside
// the root element.
func scanMedia(data []byte, itemName string) (mediaDoc, error) {
	var doc mediaDoc
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	depth := 0
	itemDepth := 0 // depth of the open item element, 0 outside items
	var cur mediaFields
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		if err != nil {
			return doc, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			doc.root = true
			if isMediaField(t.Name) {
				var f mediaFields
				if err := readMedia(dec, t, &f); err != nil {
					return doc, err
				}
				doc.all.add(f)
				if itemDepth > 0 {
					cur.add(f)
				}
				continue
			}
			depth++
			if itemDepth == 0 && itemName != "" && t.Name.Local == itemName {
				itemDepth = depth
				cur = mediaFields{}
			}
		case xml.EndElement:
			if itemDepth > 0 && depth == itemDepth {
				doc.items = append(doc.items, cur)
				itemDepth = 0
			}
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return doc, errors.New("content outside root element")
			}
		}
	}
}

func isMediaField(name xml.Name) bool {
	if name.Space != MediaNamespace {
		return false
	}
	switch name.Local {
	case "title", "description", "thumbnail":
		return true
	}
	return false
}

// readMedia consumes a media title, description or thumbnail element and
// records it in f. Other media elements such as group are walked as
// containers by the caller.
func readMedia(dec *xml.Decoder, start xml.StartElement, f *mediaFields) error {
	switch start.Name.Local {
	case "title", "description":
		text, err := innerText(dec)
		if err != nil {
			return err
		}
		if start.Name.Local == "title" {
			f.titles = append(f.titles, text)
		} else {
			f.descs = append(f.descs, text)
		}
		return nil
	case "thumbnail":
		th := thumbnail{}
		for _, a := range start.Attr {
			if a.Name.Space == "" && a.Name.Local == "url" {
				th = thumbnail{url: a.Value, ok: true}
				break
			}
		}
		f.thumbs = append(f.thumbs, th)
	}
	return dec.Skip()
}

// innerText returns the text of every descendant up to the matching end
// element, in document order
func innerText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	return b.String(), nil
}
