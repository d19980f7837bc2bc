package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/greenroi/internal/cli/pagination"
	"github.com/rshade/greenroi/internal/config"
	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/engine/cache"
	"github.com/rshade/greenroi/internal/fabrication"
	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/ingest"
	"github.com/rshade/greenroi/internal/logging"
	"github.com/rshade/greenroi/internal/report"
	"github.com/rshade/greenroi/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
	outputCSV    = "csv"
)

// ErrInteractiveNoTTY is returned by --interactive outside a terminal.
var ErrInteractiveNoTTY = errors.New("--interactive requires a terminal")

// analyzeParams holds the analyze flags.
type analyzeParams struct {
	inventory   string
	sheet       string
	output      string
	export      string
	cloudFile   string
	interactive bool

	fabricationSource string
	fabricationURL    string
	noCache           bool
	workers           int
	batchSize         int

	page pagination.Params

	// assumption flags, applied only when changed
	carbonPrice         float64
	electricityPrice    float64
	gridIntensity       float64
	perfRatio           float64
	replacementRatio    float64
	designerSalary      float64
	designerSensitivity float64
	officeSalary        float64
	officeSensitivity   float64
	weightFinancial     float64
	weightEcological    float64
	weightOrg           float64
}

// newAnalyzeCmd creates the analyze command.
func newAnalyzeCmd() *cobra.Command {
	var params analyzeParams
	def := config.New()

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate an inventory and recommend keep, buy or lease per line",
		Long: `Reads an inventory (CSV or XLSX), classifies every line, computes its yearly
energy, usage and fabrication CO2, energy and carbon costs, the 12-month TCO of
keeping, buying and leasing, and the productivity cost of ageing hardware. A
weighted vote of the financial, ecological and organizational winners gives the
recommended action.

Assumptions come from the config file and GREENROI_* variables; the flags below
override both.`,
		Example: `  # Default assumptions
  greenroi analyze --inventory parc.xlsx --sheet Inventaire

  # JSON output sorted by recommended fleet TCO
  greenroi analyze --inventory parc.csv --output json --sort fleet_tco:desc

  # Embodied CO2 from the Boavizta API, cached for a week
  greenroi analyze --inventory parc.csv --fabrication-source boavizta

  # Price cloud emissions alongside the fleet
  greenroi analyze --inventory parc.csv --cloud-emissions aws.csv --export out.xlsx`,
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, &params)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&params.inventory, "inventory", "i", "", "inventory file (.csv, .xlsx, .xlsm)")
	f.StringVar(&params.sheet, "sheet", "", "worksheet to read (default: first sheet)")
	f.StringVarP(&params.output, "output", "o", "", "output format: table, json, ndjson, csv (default from config)")
	f.StringVar(&params.export, "export", "", "also write the results to FILE.csv or FILE.xlsx")
	f.StringVar(&params.cloudFile, "cloud-emissions", "", "cloud provider emissions export to total alongside the fleet")
	f.BoolVar(&params.interactive, "interactive", false, "browse the results in an interactive view")

	f.StringVar(&params.fabricationSource, "fabrication-source", def.Fabrication.Source,
		"embodied CO2 source: static or boavizta")
	f.StringVar(&params.fabricationURL, "fabrication-url", def.Fabrication.URL, "Boavizta API base URL")
	f.BoolVar(&params.noCache, "no-cache", false, "do not read or write the fabrication cache")
	f.IntVar(&params.workers, "workers", def.Processing.Workers, "concurrent evaluation workers")
	f.IntVar(&params.batchSize, "batch-size", def.Processing.BatchSize, "rows per evaluation batch")

	f.StringVar(&params.page.Sort, "sort", "", "sort rows by field[:asc|desc] ("+sortFieldsHelp()+")")
	f.IntVar(&params.page.Limit, "limit", 0, "show at most N rows (0 = all)")
	f.IntVar(&params.page.Offset, "offset", 0, "skip the first N rows")
	f.IntVar(&params.page.Page, "page", 0, "page number (requires --page-size)")
	f.IntVar(&params.page.PageSize, "page-size", 0, "rows per page")

	a := def.Assumptions
	f.Float64Var(&params.carbonPrice, "carbon-price", a.CarbonPricePerKg, "carbon price in €/kg CO2e")
	f.Float64Var(&params.electricityPrice, "electricity-price", a.ElectricityPricePerKWh, "electricity price in €/kWh")
	f.Float64Var(&params.gridIntensity, "grid-intensity", a.GridIntensityKgPerKWh, "grid carbon intensity in kg CO2e/kWh")
	f.Float64Var(&params.perfRatio, "perf-ratio", a.PerfRatio, "current hardware performance ratio (0, 1]")
	f.Float64Var(&params.replacementRatio, "replacement-perf-ratio", a.ReplacementPerfRatio,
		"performance ratio after replacement (0 = same as --perf-ratio)")
	f.Float64Var(&params.designerSalary, "designer-salary", a.Designer.Salary, "designer yearly salary in €")
	f.Float64Var(&params.designerSensitivity, "designer-sensitivity", a.Designer.Sensitivity,
		"designer productivity sensitivity [0, 0.05]")
	f.Float64Var(&params.officeSalary, "office-salary", a.Office.Salary, "office worker yearly salary in €")
	f.Float64Var(&params.officeSensitivity, "office-sensitivity", a.Office.Sensitivity,
		"office worker productivity sensitivity [0, 0.05]")
	f.Float64Var(&params.weightFinancial, "weight-financial", a.Weights.Financial, "financial vote weight")
	f.Float64Var(&params.weightEcological, "weight-ecological", a.Weights.Ecological, "ecological vote weight")
	f.Float64Var(&params.weightOrg, "weight-organizational", a.Weights.Organizational, "organizational vote weight")

	_ = cmd.MarkFlagRequired("inventory")
	return cmd
}

func sortFieldsHelp() string {
	return strings.Join(pagination.SortFields(), ", ")
}

// applyFlags copies every changed flag onto cfg. Flags win over the config
// file and the environment.
func (p *analyzeParams) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	setF := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}

	a := &cfg.Assumptions
	setF("carbon-price", &a.CarbonPricePerKg, p.carbonPrice)
	setF("electricity-price", &a.ElectricityPricePerKWh, p.electricityPrice)
	setF("grid-intensity", &a.GridIntensityKgPerKWh, p.gridIntensity)
	setF("perf-ratio", &a.PerfRatio, p.perfRatio)
	setF("replacement-perf-ratio", &a.ReplacementPerfRatio, p.replacementRatio)
	setF("designer-salary", &a.Designer.Salary, p.designerSalary)
	setF("designer-sensitivity", &a.Designer.Sensitivity, p.designerSensitivity)
	setF("office-salary", &a.Office.Salary, p.officeSalary)
	setF("office-sensitivity", &a.Office.Sensitivity, p.officeSensitivity)
	setF("weight-financial", &a.Weights.Financial, p.weightFinancial)
	setF("weight-ecological", &a.Weights.Ecological, p.weightEcological)
	setF("weight-organizational", &a.Weights.Organizational, p.weightOrg)

	if changed("output") {
		cfg.Output.DefaultFormat = p.output
	}
	if changed("fabrication-source") {
		cfg.Fabrication.Source = p.fabricationSource
	}
	if changed("fabrication-url") {
		cfg.Fabrication.URL = p.fabricationURL
	}
	if p.noCache {
		cfg.Cache.Enabled = false
	}
	if changed("workers") {
		cfg.Processing.Workers = p.workers
	}
	if changed("batch-size") {
		cfg.Processing.BatchSize = p.batchSize
	}
}

// runAnalyze executes the analyze pipeline: ingest, resolve embodied CO2,
// evaluate, then render, export and optionally browse.
func runAnalyze(cmd *cobra.Command, p *analyzeParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg := *configFromContext(ctx)
	p.applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := p.page.Validate(); err != nil {
		return err
	}
	if warn := cfg.WeightWarning(); warn != "" {
		cmd.PrintErrf("Warning: %s\n", warn)
	}
	if p.interactive && !isTerminal(os.Stdout) {
		return ErrInteractiveNoTTY
	}

	start := time.Now()
	records, err := ingest.LoadFile(ctx, p.inventory, p.sheet)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("inventory", p.inventory).Msg("failed to load inventory")
		return err
	}

	table, err := resolveFabrication(ctx, &cfg, records)
	if err != nil {
		return err
	}

	rep, err := engine.Evaluate(ctx, records, cfg.Assumptions, table, engine.Options{
		Workers:   cfg.Processing.Workers,
		BatchSize: cfg.Processing.BatchSize,
	})
	if err != nil {
		return err
	}

	var cloud *engine.CloudCarbon
	if p.cloudFile != "" {
		em, cloudErr := ingest.LoadCloudFile(ctx, p.cloudFile)
		if cloudErr != nil {
			return cloudErr
		}
		c := engine.NewCloudCarbon(em.Column, em.TotalKg, cfg.Assumptions)
		cloud = &c
	}

	if p.export != "" {
		if err := report.ExportFile(ctx, p.export, rep, cloud); err != nil {
			return err
		}
		cmd.PrintErrf("Results exported to %s\n", p.export)
	}

	log.Info().Ctx(ctx).
		Str("inventory", p.inventory).
		Str("fabrication", table.Source()).
		Int("rows", len(rep.Rows)).
		Dur("duration", time.Since(start)).
		Msg("analysis complete")

	if p.interactive {
		return tui.Run(rep, cloud)
	}

	rows, err := pagination.SortRows(rep.Rows, p.page.Sort)
	if err != nil {
		return err
	}
	view := analyzeView{
		Rows:        pagination.Apply(p.page, rows),
		Summary:     rep.Summary,
		Assumptions: rep.Assumptions,
		Fabrication: table.Source(),
		Cloud:       cloud,
	}
	if p.page.IsEnabled() {
		meta := pagination.NewMeta(p.page, len(rows))
		view.Pagination = &meta
	}
	return render(cmd.OutOrStdout(), cfg.Output.DefaultFormat, view)
}

// resolveFabrication builds the embodied CO2 table for the categories
// present in records.
func resolveFabrication(
	ctx context.Context,
	cfg *config.Config,
	records []engine.EquipmentRecord,
) (fabrication.Table, error) {
	src := newFabricationSource(ctx, cfg)
	table, err := fabrication.Resolve(ctx, src, categoriesOf(records))
	if err != nil {
		return fabrication.Table{}, fmt.Errorf("resolving embodied CO2: %w", err)
	}
	return table, nil
}

// newFabricationSource returns the configured source. Remote sources are
// cached when enabled and always fall back to the static table.
func newFabricationSource(ctx context.Context, cfg *config.Config) fabrication.Source {
	if cfg.Fabrication.Source != config.SourceBoavizta {
		return fabrication.StaticSource{}
	}

	log := logging.FromContext(ctx)
	var src fabrication.Source = fabrication.NewHTTPSource(cfg.Fabrication.URL,
		fabrication.WithTimeout(time.Duration(cfg.Fabrication.TimeoutSeconds)*time.Second))

	if cfg.Cache.Enabled {
		store, err := openCache(cfg)
		if err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("fabrication cache disabled")
		} else {
			src = fabrication.NewCachedSource(src, store)
		}
	}
	return fabrication.NewFallbackSource(src)
}

// openCache opens the configured cache directory.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	ttl := cache.DefaultTTL
	if cfg.Cache.TTL != "" {
		parsed, err := cache.ParseTTL(cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		ttl = parsed
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileStore(dir, ttl)
}

// categoriesOf returns the distinct categories of records in first-seen order.
func categoriesOf(records []engine.EquipmentRecord) []greenops.DeviceCategory {
	var cats []greenops.DeviceCategory
	for _, r := range records {
		c := greenops.Classify(r.Label)
		if !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}
	return cats
}
