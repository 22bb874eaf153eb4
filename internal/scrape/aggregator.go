package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"golang.org/x/net/html"
)

// AggregatorAdapter pulls lift/run status from a third-party ski-report
// aggregator page. The aggregator server-renders its data as a JSON blob inside
// a script tag; the blob's schema is known, so extraction is a decode rather
// than a selector hunt. Used for resorts with no reliable direct source.
type AggregatorAdapter struct {
	fetcher *Fetcher
}

// aggregatorDataID is the script tag id carrying the embedded payload
const aggregatorDataID = "__NEXT_DATA__"

// aggregatorPayload is the known shape of the embedded blob. A page that no
// longer decodes into this shape means the aggregator changed its format.
type aggregatorPayload struct {
	Props struct {
		PageProps struct {
			Resort *struct {
				Slug   string `json:"slug"`
				IsOpen bool   `json:"isOpen"`
				Lifts  struct {
					Open  int `json:"open"`
					Total int `json:"total"`
				} `json:"lifts"`
				Runs struct {
					Open  int `json:"open"`
					Total int `json:"total"`
				} `json:"runs"`
				PercentOpen *float64 `json:"percentOpen"`
				Status      string   `json:"statusText"`
			} `json:"resort"`
		} `json:"pageProps"`
	} `json:"props"`
}

func (a *AggregatorAdapter) Kind() model.StrategyKind { return model.StrategyAggregator }

func (a *AggregatorAdapter) Extract(ctx context.Context, cfg model.MountainSourceConfig) model.ScrapeResult {
	started := time.Now()
	res := newResult(cfg.ID)

	body, err := a.fetcher.Fetch(ctx, cfg.SourceURL)
	if err != nil {
		res.Error = err.Error()
		return finish(res, started)
	}

	blob, ok := findEmbeddedData(body)
	if !ok {
		res.Error = schemaDriftError("aggregator", "embedded data blob not found")
		return finish(res, started)
	}

	var payload aggregatorPayload
	if err := json.Unmarshal(blob, &payload); err != nil {
		res.Error = schemaDriftError("aggregator", "blob did not decode: "+err.Error())
		return finish(res, started)
	}

	resort := payload.Props.PageProps.Resort
	if resort == nil {
		res.Error = schemaDriftError("aggregator", "no resort entry in blob")
		return finish(res, started)
	}
	if cfg.AggregatorSlug != "" && resort.Slug != cfg.AggregatorSlug {
		res.Error = schemaDriftError("aggregator", "blob is for resort "+resort.Slug)
		return finish(res, started)
	}

	res.Success = true
	res.IsOpen = resort.IsOpen
	res.LiftsOpen = resort.Lifts.Open
	res.LiftsTotal = resort.Lifts.Total
	res.RunsOpen = resort.Runs.Open
	res.RunsTotal = resort.Runs.Total
	res.PercentOpen = resort.PercentOpen
	res.Message = resort.Status

	return finish(res, started)
}

// findEmbeddedData locates the server-rendered JSON payload inside the page
func findEmbeddedData(page []byte) ([]byte, bool) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, false
	}

	nodes := findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" && getAttr(n, "id") == aggregatorDataID
	})
	if len(nodes) == 0 {
		return nil, false
	}

	var buf bytes.Buffer
	for c := nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	if buf.Len() == 0 {
		return nil, false
	}
	return buf.Bytes(), true
}
