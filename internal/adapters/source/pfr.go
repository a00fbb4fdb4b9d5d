package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/schema"
)

const pfrBaseURL = "https://www.pro-football-reference.com"

// PFROption applies a configuration option to the PFR producer.
type PFROption func(*PFR)

// WithPFRBaseURL overrides the site root, used by tests.
func WithPFRBaseURL(u string) PFROption {
	return func(p *PFR) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithPFRClient sets the scraping client.
func WithPFRClient(c *Client) PFROption {
	return func(p *PFR) {
		if c != nil {
			p.client = c
		}
	}
}

// PFR scrapes pro-football-reference season tables. Each stat category
// lives on its own page under /years/<season>/<category>.htm, in a
// table whose element id matches the category. Cells carry data-stat
// attributes, which become the raw row's cell labels.
type PFR struct {
	baseURL string
	client  *Client
}

// NewPFR creates a pro-football-reference producer with configuration
// options.
func NewPFR(opts ...PFROption) *PFR {
	p := &PFR{baseURL: pfrBaseURL, client: NewClient()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Source identifies this producer.
func (p *PFR) Source() model.Source { return model.SourcePFR }

// Produce fetches one season of one category table.
func (p *PFR) Produce(ctx context.Context, season int, table model.TableType) ([]model.RawRow, error) {
	if _, ok := schema.Lookup(model.SourcePFR, table); !ok {
		return nil, fmt.Errorf("%w: pfr/%s", ErrUnservedTable, table)
	}

	url := fmt.Sprintf("%s/years/%d/%s.htm", p.baseURL, season, table)
	body, err := p.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	sel := doc.Find(fmt.Sprintf("table#%s tbody tr", table))
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s in %s", ErrTableNotFound, table, url)
	}

	var rows []model.RawRow
	sel.Each(func(_ int, tr *goquery.Selection) {
		// Repeated header rows are interleaved mid-table.
		if tr.HasClass("thead") {
			return
		}
		cells := make(map[string]string)
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			stat, ok := cell.Attr("data-stat")
			if !ok || stat == "" || stat == "ranker" {
				return
			}
			cells[stat] = cell.Text()
			if stat == "player" {
				if href, ok := cell.Find("a").Attr("href"); ok {
					cells["player_url"] = href
				}
			}
		})
		if len(cells) == 0 {
			return
		}
		rows = append(rows, model.RawRow{
			Source: model.SourcePFR,
			Table:  table,
			Season: season,
			Cells:  cells,
		})
	})
	return rows, nil
}
