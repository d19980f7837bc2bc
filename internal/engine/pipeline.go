package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/greenroi/internal/engine/batch"
	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/logging"
)

// EmbodiedLookup returns the total fabrication CO2 in kg for a category.
// Implementations must be safe for concurrent use.
type EmbodiedLookup interface {
	EmbodiedKg(c greenops.DeviceCategory) float64
}

// StaticEmbodied serves the built-in embodied CO2 table.
type StaticEmbodied struct{}

// EmbodiedKg implements EmbodiedLookup.
func (StaticEmbodied) EmbodiedKg(c greenops.DeviceCategory) float64 {
	return greenops.EmbodiedKg(c)
}

// EvaluateRow computes every figure for one inventory line and runs the
// weighted vote. It never fails: missing inputs were already replaced by
// defaults during ingestion. A nil fab uses StaticEmbodied.
func EvaluateRow(rec EquipmentRecord, a Assumptions, fab EmbodiedLookup) RowResult {
	if fab == nil {
		fab = StaticEmbodied{}
	}

	category := greenops.Classify(rec.Label)
	profile := rec.Power.Apply(greenops.DefaultPowerProfile(category))
	years := LifespanYears(rec.LifespanMonths)

	kwh := profile.AnnualKWh()
	usage := greenops.UsageCO2Kg(kwh, a.GridIntensityKgPerKWh)
	fabAnnual := greenops.AmortizedFabricationKg(fab.EmbodiedKg(category), years)
	energyCost := greenops.EnergyCost(kwh, a.ElectricityPricePerKWh)
	carbonCost := greenops.CarbonCost(fabAnnual, usage, a.CarbonPricePerKg)

	tco := Scores{
		Keep: TCOKeep(energyCost, carbonCost),
		Buy: TCOBuy(BuyInputs{
			Price:         rec.UnitPrice,
			LifespanYears: years,
			EnergyCost:    energyCost,
			CarbonCost:    carbonCost,
			Maintenance:   rec.MaintenancePerYear,
			EndOfLife:     rec.EndOfLifeFee,
		}),
		Lease: TCOLease(LeaseInputs{
			MonthlyFee:  rec.LeaseMonthlyFee,
			EnergyCost:  energyCost,
			CarbonCost:  carbonCost,
			Maintenance: rec.MaintenancePerYear,
			EndFees:     rec.LeaseEndFees,
		}),
	}

	// Every action is charged the same amortized footprint.
	eco := Uniform(greenops.AnnualCO2Kg(fabAnnual, usage))

	org := a.OrgScores()

	vote := Recommend(tco, eco, org, a.Weights)

	return RowResult{
		Label:            rec.Label,
		Category:         category,
		Quantity:         rec.Quantity,
		AnnualKWh:        kwh,
		UsageCO2Kg:       usage,
		FabricationCO2Kg: fabAnnual,
		EnergyCost:       energyCost,
		CarbonCost:       carbonCost,
		TCOKeep:          tco.Keep,
		TCOBuy:           tco.Buy,
		TCOLease:         tco.Lease,
		OrgCostDesigner:  org.Keep,
		OrgCostOffice:    a.Office.PersonaCost(a.PerfRatio),
		Action:           vote.Action,
		Votes:            vote.Votes,
		Defaulted:        rec.Defaulted,
	}
}

// Options tunes Evaluate.
type Options struct {
	// Workers bounds concurrent batches. Values below 1 run sequentially.
	Workers int

	// BatchSize is the number of rows per batch, batch.DefaultBatchSize when 0.
	BatchSize int

	// OnProgress, when set, is called after every completed batch. With
	// Workers > 1 it may be called from several goroutines.
	OnProgress batch.ProgressCallback
}

// Report is the outcome of one run over an inventory.
type Report struct {
	Rows        []RowResult  `json:"rows"`
	Summary     FleetSummary `json:"summary"`
	Assumptions Assumptions  `json:"assumptions"`
}

// Evaluate runs EvaluateRow over every record, preserving input order, and
// aggregates the fleet totals. Rows are independent so batches run in
// parallel when opts.Workers > 1. Only context cancellation returns an error.
func Evaluate(
	ctx context.Context,
	records []EquipmentRecord,
	a Assumptions,
	fab EmbodiedLookup,
	opts Options,
) (*Report, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	report := &Report{Rows: make([]RowResult, len(records)), Assumptions: a}
	if len(records) == 0 {
		report.Summary = Aggregate(nil)
		return report, nil
	}

	proc := batch.NewProcessorWithDefaults[EquipmentRecord]()
	if opts.BatchSize > 0 {
		p, err := batch.NewProcessor[EquipmentRecord](opts.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("configuring batches: %w", err)
		}
		proc = p
	}

	proc.WithProgressCallback(func(snap batch.Snapshot) {
		log.Debug().
			Str("component", "engine").
			Int("batches_done", snap.ProcessedBatches).
			Int("batches", snap.TotalBatches).
			Int("rows_done", snap.ProcessedItems).
			Float64("percent", snap.PercentComplete).
			Bool("complete", snap.IsComplete()).
			Msg("evaluation progress")
		if opts.OnProgress != nil {
			opts.OnProgress(snap)
		}
	})

	evaluate := func(_ context.Context, b batch.Batch[EquipmentRecord]) error {
		for i, rec := range b.Items {
			row := EvaluateRow(rec, a, fab)
			if len(row.Defaulted) > 0 {
				log.Debug().
					Str("component", "engine").
					Int("line", rec.Line).
					Str("label", rec.Label).
					Strs("defaulted", row.Defaulted).
					Msg("row evaluated with default values")
			}
			report.Rows[b.Offset+i] = row
		}
		return nil
	}

	var err error
	if opts.Workers > 1 {
		err = proc.ProcessConcurrent(ctx, records, evaluate, opts.Workers)
	} else {
		err = proc.Process(ctx, records, evaluate)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluating inventory: %w", err)
	}

	report.Summary = Aggregate(report.Rows)

	log.Info().
		Str("component", "engine").
		Int("rows", report.Summary.Rows).
		Int("units", report.Summary.Units).
		Dur("duration", time.Since(start)).
		Msg("inventory evaluated")

	return report, nil
}
