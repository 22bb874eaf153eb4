package scrape

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"golang.org/x/net/html"
)

// HTMLAdapter scrapes a resort's own conditions page. Each configured field is
// located with a selector rule and optionally refined with a regex; a field
// whose rule fails to match defaults to zero. The scrape only fails when every
// rule comes up empty, which usually means the page layout changed.
type HTMLAdapter struct {
	fetcher *Fetcher
}

func (a *HTMLAdapter) Kind() model.StrategyKind { return model.StrategyHTMLSelector }

func (a *HTMLAdapter) Extract(ctx context.Context, cfg model.MountainSourceConfig) model.ScrapeResult {
	started := time.Now()
	res := newResult(cfg.ID)

	body, err := a.fetcher.Fetch(ctx, cfg.SourceURL)
	if err != nil {
		res.Error = err.Error()
		return finish(res, started)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		res.Error = fmt.Sprintf("parse html: %v", err)
		return finish(res, started)
	}

	matched := 0
	for field, rule := range cfg.Selectors {
		value, ok := applyRule(doc, rule)
		if !ok {
			continue
		}
		matched++
		applyHTMLField(&res, field, value)
	}

	if cfg.CustomFunc != "" {
		fn, ok := CustomFunc(cfg.CustomFunc)
		if !ok {
			res.Error = fmt.Sprintf("unknown custom extraction function %q", cfg.CustomFunc)
			return finish(res, started)
		}
		if err := fn(doc, &res); err == nil {
			matched++
		}
	}

	if matched == 0 {
		res.Error = schemaDriftError(cfg.SourceURL, "no selector matched")
		return finish(res, started)
	}

	res.Success = true
	return finish(res, started)
}

// applyRule resolves one selector rule against the document and returns the
// extracted string. With a pattern, the first capture group (or whole match)
// wins; without one, the node's text content is returned as-is.
func applyRule(doc *html.Node, rule model.SelectorRule) (string, bool) {
	text := nodeText(selectFirst(doc, rule.Selector))
	if text == "" {
		return "", false
	}
	if rule.Pattern == "" {
		return text, true
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return "", false
	}
	groups := re.FindStringSubmatch(text)
	switch {
	case len(groups) > 1:
		return groups[1], true
	case len(groups) == 1:
		return groups[0], true
	}
	return "", false
}

func applyHTMLField(res *model.ScrapeResult, field model.Field, value string) {
	switch field {
	case model.FieldIsOpen:
		res.IsOpen = parseOpen(value)
	case model.FieldLiftsOpen:
		res.LiftsOpen, _ = parseCount(value)
	case model.FieldLiftsTotal:
		res.LiftsTotal, _ = parseCount(value)
	case model.FieldRunsOpen:
		res.RunsOpen, _ = parseCount(value)
	case model.FieldRunsTotal:
		res.RunsTotal, _ = parseCount(value)
	case model.FieldPercentOpen:
		if n, ok := parseCount(value); ok {
			pct := float64(n)
			res.PercentOpen = &pct
		}
	case model.FieldMessage:
		res.Message = value
	}
}
