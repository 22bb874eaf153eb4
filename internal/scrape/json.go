package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// JSONAdapter extracts lift/run status from a resort's JSON status endpoint.
// Field locations are declared as dot-paths (e.g. "lifts.open"); a missing path
// defaults that field to zero without failing the scrape, but a document that
// does not parse at all fails it.
type JSONAdapter struct {
	fetcher *Fetcher
}

func (a *JSONAdapter) Kind() model.StrategyKind { return model.StrategyStructuredJSON }

func (a *JSONAdapter) Extract(ctx context.Context, cfg model.MountainSourceConfig) model.ScrapeResult {
	started := time.Now()
	res := newResult(cfg.ID)

	url := cfg.DataURL
	if url == "" {
		url = cfg.SourceURL
	}

	body, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		res.Error = err.Error()
		return finish(res, started)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		res.Error = fmt.Sprintf("malformed json: %v", err)
		return finish(res, started)
	}

	res.Success = true
	for field, path := range cfg.JSONPaths {
		value, found := lookupPath(doc, path)
		if !found {
			continue // missing path defaults to zero value
		}
		applyJSONField(&res, field, value)
	}

	return finish(res, started)
}

// lookupPath walks a parsed JSON document by dot-separated keys
func lookupPath(doc interface{}, path string) (interface{}, bool) {
	current := doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func applyJSONField(res *model.ScrapeResult, field model.Field, value interface{}) {
	switch field {
	case model.FieldIsOpen:
		res.IsOpen = coerceBool(value)
	case model.FieldLiftsOpen:
		res.LiftsOpen = coerceInt(value)
	case model.FieldLiftsTotal:
		res.LiftsTotal = coerceInt(value)
	case model.FieldRunsOpen:
		res.RunsOpen = coerceInt(value)
	case model.FieldRunsTotal:
		res.RunsTotal = coerceInt(value)
	case model.FieldPercentOpen:
		if pct, ok := coerceFloat(value); ok {
			res.PercentOpen = &pct
		}
	case model.FieldMessage:
		if s, ok := value.(string); ok {
			res.Message = s
		}
	}
}

func coerceInt(value interface{}) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		if n, ok := parseCount(v); ok {
			return n
		}
	}
	return 0
}

func coerceFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		if n, ok := parseCount(v); ok {
			return float64(n), true
		}
	}
	return 0, false
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return parseOpen(v)
	case float64:
		return v != 0
	}
	return false
}
