package model

// StrategyKind selects how a mountain's lift/run status is extracted
type StrategyKind string

const (
	StrategyStructuredJSON StrategyKind = "structured_json"     // resort exposes a JSON status endpoint
	StrategyHTMLSelector   StrategyKind = "html_selector"       // scrape the resort's own conditions page
	StrategyAggregator     StrategyKind = "aggregator_fallback" // third-party ski-report aggregator page
)

// Valid reports whether the strategy kind is one of the known kinds
func (k StrategyKind) Valid() bool {
	switch k {
	case StrategyStructuredJSON, StrategyHTMLSelector, StrategyAggregator:
		return true
	}
	return false
}

// Field names a canonical scrape field that extraction rules can target
type Field string

const (
	FieldIsOpen      Field = "is_open"
	FieldLiftsOpen   Field = "lifts_open"
	FieldLiftsTotal  Field = "lifts_total"
	FieldRunsOpen    Field = "runs_open"
	FieldRunsTotal   Field = "runs_total"
	FieldPercentOpen Field = "percent_open"
	FieldMessage     Field = "message"
)

// SelectorRule locates one field on an HTML page: a selector narrows the
// document to a node, an optional regex pattern pulls the value out of its text.
// The first capture group is used when the pattern declares one.
type SelectorRule struct {
	Selector string `json:"selector" yaml:"selector"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// GridPoint identifies a weather-grid forecast cell (office/x/y, not lat/lng)
type GridPoint struct {
	Office string `json:"office" yaml:"office"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
}

// Elevation holds base and summit elevation in feet
type Elevation struct {
	BaseFt   float64 `json:"base_ft" yaml:"base_ft"`
	SummitFt float64 `json:"summit_ft" yaml:"summit_ft"`
}

// MountainSourceConfig identifies a mountain and how to scrape it.
// Configs are operator-maintained and read-only during a run; the strategy
// carries only the parameters its kind needs.
type MountainSourceConfig struct {
	ID          string       `json:"id" yaml:"id"`
	DisplayName string       `json:"display_name" yaml:"display_name"`
	SourceURL   string       `json:"source_url" yaml:"source_url"`
	DataURL     string       `json:"data_url,omitempty" yaml:"data_url,omitempty"`
	Strategy    StrategyKind `json:"strategy" yaml:"strategy"`
	Enabled     bool         `json:"enabled" yaml:"enabled"`

	// structured_json: dot-paths into the JSON document, per field
	JSONPaths map[Field]string `json:"json_paths,omitempty" yaml:"json_paths,omitempty"`

	// html_selector: selector/regex rules per field
	Selectors map[Field]SelectorRule `json:"selectors,omitempty" yaml:"selectors,omitempty"`

	// html_selector: name of a registered custom extraction function that
	// derives multiple fields at once (e.g. "5/10 Lifts" into open/total)
	CustomFunc string `json:"custom_func,omitempty" yaml:"custom_func,omitempty"`

	// aggregator_fallback: the resort's slug inside the aggregator's data blob
	AggregatorSlug string `json:"aggregator_slug,omitempty" yaml:"aggregator_slug,omitempty"`

	// Weather/telemetry metadata
	Lat       float64   `json:"lat" yaml:"lat"`
	Lng       float64   `json:"lng" yaml:"lng"`
	Station   string    `json:"station,omitempty" yaml:"station,omitempty"` // snow telemetry station id
	Grid      GridPoint `json:"grid" yaml:"grid"`
	Elevation Elevation `json:"elevation" yaml:"elevation"`
}
