package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/schema"
)

const fdbBaseURL = "https://www.footballdb.com"

// fdbModes holds the URL mode and sort parameters per table type, the
// way the site addresses its stat pages.
var fdbModes = map[model.TableType]struct{ mode, sort string }{
	model.TableAllPurpose:  {"A", "apyds"},
	model.TablePassing:     {"P", "passyds"},
	model.TableRushing:     {"R", "rushyds"},
	model.TableReceiving:   {"C", "recyds"},
	model.TableScoring:     {"S", "totconv"},
	model.TableFumbles:     {"M", "fumlost"},
	model.TableKickReturns: {"KR", "kryds"},
	model.TablePuntReturns: {"PR", "pryds"},
	model.TableKicking:     {"K", "kickpts"},
}

// FDBOption applies a configuration option to the FDB producer.
type FDBOption func(*FDB)

// WithFDBBaseURL overrides the site root, used by tests.
func WithFDBBaseURL(u string) FDBOption {
	return func(f *FDB) {
		if u != "" {
			f.baseURL = u
		}
	}
}

// WithFDBClient sets the scraping client.
func WithFDBClient(c *Client) FDBOption {
	return func(f *FDB) {
		if c != nil {
			f.client = c
		}
	}
}

// FDB scrapes footballdb.com season tables. The site serves one page
// per stat mode; its tables carry no column ids, so cells are labeled
// positionally from the schema binding's column order.
type FDB struct {
	baseURL string
	client  *Client
}

// NewFDB creates a footballdb producer with configuration options.
func NewFDB(opts ...FDBOption) *FDB {
	f := &FDB{baseURL: fdbBaseURL, client: NewClient()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Source identifies this producer.
func (f *FDB) Source() model.Source { return model.SourceFDB }

// Produce fetches one season of one category table.
func (f *FDB) Produce(ctx context.Context, season int, table model.TableType) ([]model.RawRow, error) {
	params, ok := fdbModes[table]
	if !ok {
		return nil, fmt.Errorf("%w: fdb/%s", ErrUnservedTable, table)
	}
	binding, ok := schema.Lookup(model.SourceFDB, table)
	if !ok {
		return nil, fmt.Errorf("%w: fdb/%s", ErrUnservedTable, table)
	}

	url := fmt.Sprintf("%s/stats/stats.html?lg=NFL&yr=%d&type=reg&mode=%s&conf=&limit=all&sort=%s",
		f.baseURL, season, params.mode, params.sort)
	body, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	sel := doc.Find("table.statistics tbody tr")
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: statistics table in %s", ErrTableNotFound, url)
	}

	var rows []model.RawRow
	sel.Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 2 {
			return
		}
		cells := make(map[string]string)

		// First cell: display name plus the player's unique URL, the
		// site's stable key for namesakes.
		nameCell := tds.Eq(0)
		name := nameCell.Find("span.hidden-xs").Text()
		if name == "" {
			name = nameCell.Text()
		}
		cells[binding.NameCol] = name
		if href, ok := nameCell.Find("a").Attr("href"); ok {
			cells[binding.IDCol] = href
		}
		cells[binding.TeamCol] = tds.Eq(1).Text()

		statStart := 2
		if binding.PosCol != "" {
			cells[binding.PosCol] = tds.Eq(2).Text()
			statStart = 3
		}
		for i, col := range binding.Columns {
			td := tds.Eq(statStart + i)
			if td.Length() == 0 {
				break
			}
			cells[col.Label] = td.Text()
		}

		rows = append(rows, model.RawRow{
			Source: model.SourceFDB,
			Table:  table,
			Season: season,
			Cells:  cells,
		})
	})
	return rows, nil
}
