package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

func testInputs(t *testing.T, mutate func(*model.CrashInputs)) *model.CrashInputs {
	t.Helper()

	in := model.CrashInputs{
		ImpactSpeedMPS:  15,
		VehicleMassKg:   1400,
		CrashSide:       types.CrashSideFrontal,
		OccupantMassKg:  62,
		OccupantHeightM: 1.62,
		Gender:          types.GenderFemale,
		NeckStrength:    types.NeckStrengthAverage,
		SeatRole:        types.SeatRoleDriver,
		BeltFit:         types.BeltFitAverage,
		CabinRigidity:   types.CabinRigidityMedium,
		Restraints:      model.Restraints{SeatbeltUsed: true},
	}
	if mutate != nil {
		mutate(&in)
	}
	out, err := model.NewCrashInputs(in)
	gt.NoError(t, err).Required()
	return out
}

const testPage = `<html><body>
<p>Belted female occupants in frontal crashes show substantially higher odds of moderate injury than males in comparable collisions, according to field studies.</p>
<p>Short note.</p>
<p>Vehicle mass and crash compatibility remain significant factors in injury outcomes across all occupant groups and crash configurations studied.</p>
<script>var x = "female injury odds should not leak from scripts";</script>
</body></html>`

func TestGather(t *testing.T) {
	t.Run("extracts matching paragraphs from fetched pages", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(testPage))
		}))
		defer srv.Close()

		svc := New(
			WithHTTPClient(srv.Client()),
			WithSources([]source{{URL: srv.URL, Tags: []string{"female"}}}),
		)

		rc, err := svc.Gather(context.Background(), testInputs(t, nil))
		gt.NoError(t, err).Required()

		gt.B(t, strings.Contains(rc.Summary, "higher odds of moderate injury")).True()
		gt.B(t, !strings.Contains(rc.Summary, "Short note")).True()
		gt.B(t, !strings.Contains(rc.Summary, "scripts")).True()
		gt.A(t, rc.Sources).Length(1)
		gt.B(t, len(rc.GenderBiasNotes) >= 1).True()
	})

	t.Run("falls back when all sources fail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := New(
			WithHTTPClient(srv.Client()),
			WithSources([]source{{URL: srv.URL, Tags: []string{"female"}}}),
		)

		rc, err := svc.Gather(context.Background(), testInputs(t, nil))
		gt.NoError(t, err).Required()
		gt.B(t, strings.Contains(rc.Summary, "No live research sources")).True()
		gt.B(t, len(rc.GenderBiasNotes) >= 2).True()
		gt.A(t, rc.Sources).Length(0)
	})

	t.Run("uses the on-disk cache within the TTL", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = w.Write([]byte(testPage))
		}))
		defer srv.Close()

		svc := New(
			WithHTTPClient(srv.Client()),
			WithSources([]source{{URL: srv.URL, Tags: []string{"female"}}}),
			WithCacheDir(t.TempDir()),
			WithCacheTTL(time.Hour),
		)

		ctx := context.Background()
		in := testInputs(t, nil)

		_, err := svc.Gather(ctx, in)
		gt.NoError(t, err).Required()
		_, err = svc.Gather(ctx, in)
		gt.NoError(t, err).Required()

		gt.Number(t, hits).Equal(1)
	})

	t.Run("nil inputs are rejected", func(t *testing.T) {
		svc := New()
		_, err := svc.Gather(context.Background(), nil)
		gt.Error(t, err)
	})
}

func TestBuildKeywords(t *testing.T) {
	t.Run("pregnant female adds profile keywords", func(t *testing.T) {
		in := testInputs(t, func(in *model.CrashInputs) { in.Pregnant = true })
		keywords := buildKeywords(in)

		set := make(map[string]bool)
		for _, k := range keywords {
			set[k] = true
		}
		gt.B(t, set["female"]).True()
		gt.B(t, set["pregnant"]).True()
		gt.B(t, set["seatbelt"]).True()
		gt.B(t, set["frontal"]).True()
	})

	t.Run("unbelted male scenario", func(t *testing.T) {
		in := testInputs(t, func(in *model.CrashInputs) {
			in.Gender = types.GenderMale
			in.Restraints.SeatbeltUsed = false
		})
		keywords := buildKeywords(in)

		set := make(map[string]bool)
		for _, k := range keywords {
			set[k] = true
		}
		gt.B(t, set["male"]).True()
		gt.B(t, set["unbelted"]).True()
		gt.B(t, !set["female"]).True()
	})
}

func TestFilterSegments(t *testing.T) {
	long := strings.Repeat("crash safety data for female occupants shows patterns. ", 20)
	segments := filterSegments([]string{
		long,
		"too short",
		strings.Repeat("nothing relevant here at all in this long paragraph about cooking recipes and gardens. ", 3),
	}, []string{"female"})

	gt.A(t, segments).Length(1)
	gt.B(t, len(segments[0]) <= maxSegmentLength+3).True()
}
