package worker

import (
	"context"
	"time"

	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/utils/async"
	"github.com/reneeyyx/Safety1st/pkg/utils/logging"
)

// ResearchRefreshWorker keeps the research page cache warm by periodically
// gathering context for a set of representative scenarios. Interactive
// requests then read from the on-disk cache instead of waiting on remote
// fetches.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ResearchRefreshWorker struct {
	research interfaces.ResearchService
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewResearchRefreshWorker creates a worker that re-gathers research context
// on the given interval
func NewResearchRefreshWorker(research interfaces.ResearchService, interval time.Duration) *ResearchRefreshWorker {
	return &ResearchRefreshWorker{
		research: research,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial warm-up and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *ResearchRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("research refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ResearchRefreshWorker) Stop() {
	logging.Default().Info("research refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("research refresh worker stopped")
}

func (w *ResearchRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Refreshes are dispatched so a slow remote source never blocks the
	// stop signal; async.Dispatch recovers panics and logs failures.
	async.Dispatch(ctx, w.refresh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			async.Dispatch(ctx, w.refresh)

		case <-w.stopCh:
			logging.Default().Info("research refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("research refresh worker context cancelled")
			return
		}
	}
}

// refresh gathers context for each representative scenario so the curated
// pages behind them land in the cache
func (w *ResearchRefreshWorker) refresh(ctx context.Context) error {
	startTime := time.Now()
	logging.Default().Info("starting research cache refresh")

	scenarios, err := warmupScenarios()
	if err != nil {
		return err
	}

	var refreshed int
	for _, in := range scenarios {
		if _, err := w.research.Gather(ctx, in); err != nil {
			logging.Default().Error("research warm-up scenario failed",
				"error", err.Error())
			continue
		}
		refreshed++
	}

	logging.Default().Info("research cache refresh completed",
		"scenarios", refreshed,
		"duration", time.Since(startTime).String())

	return nil
}

// warmupScenarios spans the keyword space of the curated source index:
// occupant profiles and crash sides that select different source subsets.
func warmupScenarios() ([]*model.CrashInputs, error) {
	base := model.CrashInputs{
		ImpactSpeedMPS:  15,
		VehicleMassKg:   1500,
		OccupantMassKg:  75,
		OccupantHeightM: 1.75,
		NeckStrength:    types.NeckStrengthAverage,
		SeatRole:        types.SeatRoleDriver,
		BeltFit:         types.BeltFitAverage,
		CabinRigidity:   types.CabinRigidityMedium,
		Restraints:      model.Restraints{SeatbeltUsed: true},
	}

	variants := []func(*model.CrashInputs){
		func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideFrontal
			in.Gender = types.GenderMale
		},
		func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideFrontal
			in.Gender = types.GenderFemale
		},
		func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideFrontal
			in.Gender = types.GenderFemale
			in.Pregnant = true
		},
		func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideSide
			in.Gender = types.GenderFemale
		},
		func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideFrontal
			in.Gender = types.GenderMale
			in.Restraints.SeatbeltUsed = false
		},
	}

	scenarios := make([]*model.CrashInputs, 0, len(variants))
	for _, mutate := range variants {
		v := base
		mutate(&v)
		in, err := model.NewCrashInputs(v)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, in)
	}

	return scenarios, nil
}
