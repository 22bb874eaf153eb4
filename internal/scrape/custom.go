package scrape

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"golang.org/x/net/html"
)

// ExtractFunc is a custom extraction function for pages whose layout does not
// decompose into one-selector-per-field rules. It may combine any number of
// selectors and regexes into derived fields on the result in place.
type ExtractFunc func(doc *html.Node, res *model.ScrapeResult) error

var customFuncs = map[string]ExtractFunc{
	"lift_run_ratio": extractLiftRunRatio,
}

// CustomFunc looks up a registered custom extraction function by name
func CustomFunc(name string) (ExtractFunc, bool) {
	fn, ok := customFuncs[name]
	return fn, ok
}

// RegisterCustomFunc registers an extraction function under a name so operator
// configs can reference it. Registration happens at init time, before any run.
func RegisterCustomFunc(name string, fn ExtractFunc) {
	customFuncs[name] = fn
}

var (
	liftRatioRe = regexp.MustCompile(`(?i)(\d+)\s*(?:/|of)\s*(\d+)\s*lifts`)
	runRatioRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:/|of)\s*(\d+)\s*(?:runs|trails)`)
)

// extractLiftRunRatio scans the whole page for "5/10 Lifts" and "30 of 57
// Runs" style ratios. Several of the smaller hills publish their counts only
// in prose, so this is the workhorse custom function.
func extractLiftRunRatio(doc *html.Node, res *model.ScrapeResult) error {
	text := nodeText(doc)

	found := false
	if groups := liftRatioRe.FindStringSubmatch(text); groups != nil {
		res.LiftsOpen, _ = strconv.Atoi(groups[1])
		res.LiftsTotal, _ = strconv.Atoi(groups[2])
		found = true
	}
	if groups := runRatioRe.FindStringSubmatch(text); groups != nil {
		res.RunsOpen, _ = strconv.Atoi(groups[1])
		res.RunsTotal, _ = strconv.Atoi(groups[2])
		found = true
	}

	if !found {
		return fmt.Errorf("no lift/run ratio found in page text")
	}
	if res.LiftsOpen > 0 || res.RunsOpen > 0 {
		res.IsOpen = true
	}
	return nil
}
