package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/repository/firestore"
	"github.com/reneeyyx/Safety1st/pkg/repository/memory"
)

func newEvaluation(t *testing.T, createdAt time.Time, mutate func(*model.CrashInputs)) *model.Evaluation {
	t.Helper()

	in := model.CrashInputs{
		ImpactSpeedMPS:         60.0 / 3.6,
		VehicleMassKg:          1400,
		CrashSide:              types.CrashSideFrontal,
		OccupantMassKg:         70,
		OccupantHeightM:        1.70,
		Gender:                 types.GenderFemale,
		SeatDistanceFromWheelM: 0.28,
		SeatReclineAngleDeg:    15,
		NeckStrength:           types.NeckStrengthAverage,
		SeatRole:               types.SeatRoleDriver,
		BeltFit:                types.BeltFitAverage,
		CabinRigidity:          types.CabinRigidityMedium,
		Restraints:             model.Restraints{SeatbeltUsed: true, FrontAirbag: true},
	}
	if mutate != nil {
		mutate(&in)
	}
	inputs, err := model.NewCrashInputs(in)
	gt.NoError(t, err).Required()

	return &model.Evaluation{
		ID:        types.NewEvaluationID(),
		CreatedAt: createdAt,
		Baseline: &model.CrashRiskResult{
			CalibrationSet:     "test_set",
			OverallProbability: 0.42,
			RiskScore:          42.0,
			Inputs:             *inputs,
		},
		FinalRiskScore: 42.0,
	}
}

func runEvaluationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trip an evaluation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ev := newEvaluation(t, time.Now().UTC(), nil)
		ev.Narrative = &model.NarrativeAnnotation{
			RiskScore:    45.5,
			RawRiskScore: 42.0,
			Confidence:   0.8,
			Explanation:  "elevated by published female injury odds",
		}
		ev.Research = &model.ResearchContext{
			Summary: "belted frontal crash literature",
			Sources: []string{"https://example.org/study"},
		}

		gt.NoError(t, repo.Evaluation().Put(ctx, ev)).Required()

		got, err := repo.Evaluation().Get(ctx, ev.ID)
		gt.NoError(t, err).Required()

		gt.V(t, got.ID).Equal(ev.ID)
		gt.Number(t, got.FinalRiskScore).Equal(ev.FinalRiskScore)
		gt.V(t, got.Baseline.CalibrationSet).Equal("test_set")
		gt.V(t, got.Baseline.Inputs.Gender).Equal(types.GenderFemale)
		gt.V(t, got.Narrative.Explanation).Equal(ev.Narrative.Explanation)
		gt.V(t, got.Research.Summary).Equal(ev.Research.Summary)
	})

	t.Run("Get returns ErrNotFound for missing evaluation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Evaluation().Get(ctx, types.NewEvaluationID())
		gt.Error(t, err)
		gt.B(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("List returns newest first with limit and offset", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC()
		var ids []types.EvaluationID
		for i := 0; i < 5; i++ {
			ev := newEvaluation(t, base.Add(time.Duration(i)*time.Second), nil)
			gt.NoError(t, repo.Evaluation().Put(ctx, ev)).Required()
			ids = append(ids, ev.ID)
		}

		all, err := repo.Evaluation().List(ctx, nil, 0, 0)
		gt.NoError(t, err).Required()
		gt.A(t, all).Length(5)
		gt.V(t, all[0].ID).Equal(ids[4])
		gt.V(t, all[4].ID).Equal(ids[0])

		page, err := repo.Evaluation().List(ctx, nil, 2, 1)
		gt.NoError(t, err).Required()
		gt.A(t, page).Length(2)
		gt.V(t, page[0].ID).Equal(ids[3])
		gt.V(t, page[1].ID).Equal(ids[2])
	})

	t.Run("List filters by scenario fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		frontal := newEvaluation(t, now, nil)
		side := newEvaluation(t, now.Add(time.Second), func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideSide
		})
		pregnant := newEvaluation(t, now.Add(2*time.Second), func(in *model.CrashInputs) {
			in.Pregnant = true
		})

		for _, ev := range []*model.Evaluation{frontal, side, pregnant} {
			gt.NoError(t, repo.Evaluation().Put(ctx, ev)).Required()
		}

		sideOnly, err := repo.Evaluation().List(ctx, &model.EvaluationFilter{
			CrashSide: types.CrashSideSide,
		}, 0, 0)
		gt.NoError(t, err).Required()
		gt.A(t, sideOnly).Length(1)
		gt.V(t, sideOnly[0].ID).Equal(side.ID)

		isPregnant := true
		pregnantOnly, err := repo.Evaluation().List(ctx, &model.EvaluationFilter{
			Pregnant: &isPregnant,
		}, 0, 0)
		gt.NoError(t, err).Required()
		gt.A(t, pregnantOnly).Length(1)
		gt.V(t, pregnantOnly[0].ID).Equal(pregnant.ID)

		females, err := repo.Evaluation().List(ctx, &model.EvaluationFilter{
			Gender: types.GenderFemale,
		}, 0, 0)
		gt.NoError(t, err).Required()
		gt.A(t, females).Length(3)
	})

	t.Run("Count matches filter semantics", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		for i := 0; i < 3; i++ {
			gt.NoError(t, repo.Evaluation().Put(ctx, newEvaluation(t, now.Add(time.Duration(i)*time.Second), nil))).Required()
		}
		gt.NoError(t, repo.Evaluation().Put(ctx, newEvaluation(t, now.Add(3*time.Second), func(in *model.CrashInputs) {
			in.CrashSide = types.CrashSideRear
		}))).Required()

		total, err := repo.Evaluation().Count(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(4)

		rear, err := repo.Evaluation().Count(ctx, &model.EvaluationFilter{CrashSide: types.CrashSideRear})
		gt.NoError(t, err).Required()
		gt.Number(t, rear).Equal(1)
	})

	t.Run("Delete removes an evaluation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ev := newEvaluation(t, time.Now().UTC(), nil)
		gt.NoError(t, repo.Evaluation().Put(ctx, ev)).Required()
		gt.NoError(t, repo.Evaluation().Delete(ctx, ev.ID)).Required()

		_, err := repo.Evaluation().Get(ctx, ev.ID)
		gt.Error(t, err)
	})

	t.Run("Delete returns error for missing evaluation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Evaluation().Delete(ctx, types.NewEvaluationID())
		gt.Error(t, err)
		gt.B(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("Put overwrites an existing evaluation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ev := newEvaluation(t, time.Now().UTC(), nil)
		gt.NoError(t, repo.Evaluation().Put(ctx, ev)).Required()

		ev.FinalRiskScore = 99.9
		gt.NoError(t, repo.Evaluation().Put(ctx, ev)).Required()

		got, err := repo.Evaluation().Get(ctx, ev.ID)
		gt.NoError(t, err).Required()
		gt.Number(t, got.FinalRiskScore).Equal(99.9)

		count, err := repo.Evaluation().Count(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Number(t, count).Equal(1)
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryEvaluationRepository(t *testing.T) {
	runEvaluationRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreEvaluationRepository(t *testing.T) {
	runEvaluationRepositoryTest(t, newFirestoreRepository)
}
