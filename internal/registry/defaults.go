package registry

import "github.com/kevincorvallis/shredders-sub008/internal/model"

// builtinMountains returns the default registry: every Washington mountain the
// app tracks, with its scrape strategy and weather metadata. Operators can
// override any entry via the registry YAML file.
func builtinMountains() []model.MountainSourceConfig {
	return []model.MountainSourceConfig{
		{
			ID:          "baker",
			DisplayName: "Mt. Baker",
			SourceURL:   "https://www.mtbaker.us/snow-report/",
			Strategy:    model.StrategyHTMLSelector,
			Enabled:     true,
			Selectors: map[model.Field]model.SelectorRule{
				model.FieldIsOpen:  {Selector: ".conditions-status", Pattern: `(?i)(open)`},
				model.FieldMessage: {Selector: ".conditions-summary"},
			},
			CustomFunc: "lift_run_ratio",
			Lat:        48.857, Lng: -121.669,
			Station:   "MB-HEATHER",
			Grid:      model.GridPoint{Office: "SEW", X: 158, Y: 120},
			Elevation: model.Elevation{BaseFt: 3500, SummitFt: 5089},
		},
		{
			ID:          "crystal",
			DisplayName: "Crystal Mountain",
			SourceURL:   "https://www.crystalmountainresort.com/the-mountain/mountain-report",
			DataURL:     "https://www.crystalmountainresort.com/api/v1/dor/status",
			Strategy:    model.StrategyStructuredJSON,
			Enabled:     true,
			JSONPaths: map[model.Field]string{
				model.FieldIsOpen:     "resort.isOpen",
				model.FieldLiftsOpen:  "lifts.open",
				model.FieldLiftsTotal: "lifts.total",
				model.FieldRunsOpen:   "trails.open",
				model.FieldRunsTotal:  "trails.total",
				model.FieldMessage:    "resort.statusMessage",
			},
			Lat: 46.935, Lng: -121.474,
			Station:   "CM-GREENVALLEY",
			Grid:      model.GridPoint{Office: "SEW", X: 141, Y: 36},
			Elevation: model.Elevation{BaseFt: 4400, SummitFt: 7002},
		},
		{
			ID:          "stevens",
			DisplayName: "Stevens Pass",
			SourceURL:   "https://www.stevenspass.com/the-mountain/mountain-conditions/terrain-and-lift-status.aspx",
			DataURL:     "https://www.stevenspass.com/api/PageApi/GetTerrainStatus",
			Strategy:    model.StrategyStructuredJSON,
			Enabled:     true,
			JSONPaths: map[model.Field]string{
				model.FieldIsOpen:      "IsOpen",
				model.FieldLiftsOpen:   "OpenLifts",
				model.FieldLiftsTotal:  "TotalLifts",
				model.FieldRunsOpen:    "OpenTrails",
				model.FieldRunsTotal:   "TotalTrails",
				model.FieldPercentOpen: "TerrainOpenPercent",
			},
			Lat: 47.745, Lng: -121.089,
			Station:   "SP-SCHMIDT",
			Grid:      model.GridPoint{Office: "SEW", X: 164, Y: 66},
			Elevation: model.Elevation{BaseFt: 4061, SummitFt: 5845},
		},
		{
			ID:          "snoqualmie",
			DisplayName: "The Summit at Snoqualmie",
			SourceURL:   "https://summitatsnoqualmie.com/conditions",
			Strategy:    model.StrategyHTMLSelector,
			Enabled:     true,
			Selectors: map[model.Field]model.SelectorRule{
				model.FieldIsOpen:     {Selector: ".lift-status-header", Pattern: `(?i)(open)`},
				model.FieldLiftsOpen:  {Selector: ".lifts-open .count"},
				model.FieldLiftsTotal: {Selector: ".lifts-open .total"},
				model.FieldRunsOpen:   {Selector: ".runs-open .count"},
				model.FieldRunsTotal:  {Selector: ".runs-open .total"},
			},
			Lat: 47.428, Lng: -121.413,
			Station:   "SQ-DODGERIDGE",
			Grid:      model.GridPoint{Office: "SEW", X: 151, Y: 53},
			Elevation: model.Elevation{BaseFt: 3000, SummitFt: 3865},
		},
		{
			ID:          "mission-ridge",
			DisplayName: "Mission Ridge",
			SourceURL:   "https://www.missionridge.com/mountain-report/",
			Strategy:    model.StrategyHTMLSelector,
			Enabled:     true,
			Selectors: map[model.Field]model.SelectorRule{
				model.FieldIsOpen:  {Selector: "#mountain-status", Pattern: `(?i)(open)`},
				model.FieldMessage: {Selector: "#report-summary"},
			},
			CustomFunc: "lift_run_ratio",
			Lat:        47.292, Lng: -120.399,
			Station:   "MR-TOP",
			Grid:      model.GridPoint{Office: "OTX", X: 34, Y: 73},
			Elevation: model.Elevation{BaseFt: 4570, SummitFt: 6820},
		},
		{
			ID:          "white-pass",
			DisplayName: "White Pass",
			SourceURL:   "https://skiwhitepass.com/the-mountain/snow-report",
			Strategy:    model.StrategyHTMLSelector,
			Enabled:     true,
			Selectors: map[model.Field]model.SelectorRule{
				model.FieldIsOpen:     {Selector: ".snow-report-status", Pattern: `(?i)(open)`},
				model.FieldLiftsOpen:  {Selector: ".stat-lifts", Pattern: `(\d+)\s*/`},
				model.FieldLiftsTotal: {Selector: ".stat-lifts", Pattern: `/\s*(\d+)`},
				model.FieldRunsOpen:   {Selector: ".stat-runs", Pattern: `(\d+)\s*/`},
				model.FieldRunsTotal:  {Selector: ".stat-runs", Pattern: `/\s*(\d+)`},
			},
			Lat: 46.637, Lng: -121.391,
			Station:   "WP-PIGTAIL",
			Grid:      model.GridPoint{Office: "PDT", X: 23, Y: 125},
			Elevation: model.Elevation{BaseFt: 4500, SummitFt: 6550},
		},
		{
			ID:          "49-north",
			DisplayName: "49 Degrees North",
			SourceURL:   "https://www.skireport.example.com/washington/49-degrees-north",
			Strategy:    model.StrategyAggregator,
			Enabled:     true,
			AggregatorSlug: "49-degrees-north",
			Lat:            48.302, Lng: -117.564,
			Station:   "FN-CHEWELAH",
			Grid:      model.GridPoint{Office: "OTX", X: 120, Y: 120},
			Elevation: model.Elevation{BaseFt: 3923, SummitFt: 5774},
		},
		{
			ID:          "mt-spokane",
			DisplayName: "Mt. Spokane",
			SourceURL:   "https://www.skireport.example.com/washington/mt-spokane",
			Strategy:    model.StrategyAggregator,
			Enabled:     true,
			AggregatorSlug: "mt-spokane",
			Lat:            47.919, Lng: -117.103,
			Station:   "MS-SUMMIT",
			Grid:      model.GridPoint{Office: "OTX", X: 140, Y: 96},
			Elevation: model.Elevation{BaseFt: 3818, SummitFt: 5889},
		},
		{
			ID:          "bluewood",
			DisplayName: "Bluewood",
			SourceURL:   "https://www.skireport.example.com/washington/bluewood",
			Strategy:    model.StrategyAggregator,
			Enabled:     true,
			AggregatorSlug: "ski-bluewood",
			Lat:            46.088, Lng: -117.851,
			Grid:      model.GridPoint{Office: "PDT", X: 135, Y: 112},
			Elevation: model.Elevation{BaseFt: 4545, SummitFt: 5670},
		},
		{
			ID:          "loup-loup",
			DisplayName: "Loup Loup",
			SourceURL:   "https://www.skireport.example.com/washington/loup-loup",
			Strategy:    model.StrategyAggregator,
			Enabled:     true,
			AggregatorSlug: "loup-loup",
			Lat:            48.394, Lng: -119.909,
			Grid:      model.GridPoint{Office: "OTX", X: 46, Y: 132},
			Elevation: model.Elevation{BaseFt: 4020, SummitFt: 5260},
		},
		{
			ID:          "badger",
			DisplayName: "Badger Mountain",
			SourceURL:   "https://www.skireport.example.com/washington/badger-mountain",
			Strategy:    model.StrategyAggregator,
			Enabled:     true,
			AggregatorSlug: "badger-mountain",
			Lat:            47.676, Lng: -120.329,
			Grid:      model.GridPoint{Office: "OTX", X: 42, Y: 90},
			Elevation: model.Elevation{BaseFt: 3000, SummitFt: 4000},
		},
		{
			ID:          "sitzmark",
			DisplayName: "Sitzmark",
			SourceURL:   "https://www.skireport.example.com/washington/sitzmark",
			Strategy:    model.StrategyAggregator,
			Enabled:     true,
			AggregatorSlug: "sitzmark",
			Lat:            48.864, Lng: -119.165,
			Grid:      model.GridPoint{Office: "OTX", X: 73, Y: 155},
			Elevation: model.Elevation{BaseFt: 4450, SummitFt: 5115},
		},
		{
			ID:          "hurricane-ridge",
			DisplayName: "Hurricane Ridge",
			SourceURL:   "https://hurricaneridge.com/conditions/",
			Strategy:    model.StrategyHTMLSelector,
			Enabled:     true,
			Selectors: map[model.Field]model.SelectorRule{
				model.FieldIsOpen:  {Selector: ".road-status", Pattern: `(?i)(open)`},
				model.FieldMessage: {Selector: ".conditions-note"},
			},
			CustomFunc: "lift_run_ratio",
			Lat:        47.969, Lng: -123.498,
			Station:   "HR-WATERHOLE",
			Grid:      model.GridPoint{Office: "SEW", X: 101, Y: 96},
			Elevation: model.Elevation{BaseFt: 4850, SummitFt: 5757},
		},
		{
			ID:          "leavenworth",
			DisplayName: "Leavenworth Ski Hill",
			SourceURL:   "https://www.skireport.example.com/washington/leavenworth",
			Strategy:    model.StrategyAggregator,
			// Small volunteer-run hill with an unreliable feed; kept for audit.
			Enabled:        false,
			AggregatorSlug: "leavenworth-ski-hill",
			Lat:            47.613, Lng: -120.672,
			Grid:      model.GridPoint{Office: "OTX", X: 28, Y: 89},
			Elevation: model.Elevation{BaseFt: 1230, SummitFt: 1830},
		},
		{
			ID:          "echo-valley",
			DisplayName: "Echo Valley",
			SourceURL:   "https://www.skireport.example.com/washington/echo-valley",
			Strategy:    model.StrategyAggregator,
			// Rope-tow hill; aggregator rarely carries live data. Kept for audit.
			Enabled:        false,
			AggregatorSlug: "echo-valley",
			Lat:            47.924, Lng: -120.056,
			Grid:      model.GridPoint{Office: "OTX", X: 49, Y: 110},
			Elevation: model.Elevation{BaseFt: 3000, SummitFt: 3600},
		},
	}
}
