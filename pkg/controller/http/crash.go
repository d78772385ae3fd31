package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/usecase"
)

const defaultListLimit = 20

// crashRequest is the wire format of a calculation request. Values arrive in
// everyday units (km/h, cm) and are range-checked here before conversion to
// SI; the domain layer never sees out-of-range values.
type crashRequest struct {
	SpeedKmh            float64 `json:"speed_kmh"`
	VehicleMassKg       float64 `json:"vehicle_mass_kg"`
	CrashSide           string  `json:"crash_side"`
	OccupantMassKg      float64 `json:"occupant_mass_kg"`
	OccupantHeightM     float64 `json:"occupant_height_m"`
	Gender              string  `json:"gender"`
	IsPregnant          bool    `json:"is_pregnant"`
	SeatDistanceCm      float64 `json:"seat_distance_from_wheel_cm"`
	SeatReclineAngleDeg float64 `json:"seat_recline_angle_deg"`
	SeatHeightToDashCm  float64 `json:"seat_height_relative_to_dash_cm"`
	NeckStrength        string  `json:"neck_strength"`
	SeatRole            string  `json:"seat_role"`
	BeltFit             string  `json:"pelvis_lap_belt_fit"`

	SeatbeltUsed bool `json:"seatbelt_used"`
	Pretensioner bool `json:"seatbelt_pretensioner"`
	LoadLimiter  bool `json:"seatbelt_load_limiter"`
	FrontAirbag  bool `json:"front_airbag"`
	SideAirbag   bool `json:"side_airbag"`

	CrumpleZoneCm float64 `json:"crumple_zone_cm"`
	CabinRigidity string  `json:"cabin_rigidity"`
	IntrusionCm   float64 `json:"intrusion_cm"`

	CorrelationFactor float64 `json:"correlation_factor,omitempty"`
}

type rangeCheck struct {
	name     string
	value    float64
	min, max float64
}

func (req *crashRequest) validate() error {
	checks := []rangeCheck{
		{"speed_kmh", req.SpeedKmh, 0, 200},
		{"vehicle_mass_kg", req.VehicleMassKg, 500, 5000},
		{"occupant_mass_kg", req.OccupantMassKg, 40, 150},
		{"occupant_height_m", req.OccupantHeightM, 1.4, 2.1},
		{"seat_distance_from_wheel_cm", req.SeatDistanceCm, 10, 80},
		{"seat_recline_angle_deg", req.SeatReclineAngleDeg, 0, 60},
		{"intrusion_cm", req.IntrusionCm, 0, 50},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return goerr.New("value out of range",
				goerr.V("field", c.name),
				goerr.V("value", c.value),
				goerr.V("min", c.min),
				goerr.V("max", c.max))
		}
	}
	return nil
}

// toInputs converts the validated request to SI domain inputs
func (req *crashRequest) toInputs() (*model.CrashInputs, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	return model.NewCrashInputs(model.CrashInputs{
		ImpactSpeedMPS:         req.SpeedKmh / 3.6,
		VehicleMassKg:          req.VehicleMassKg,
		CrashSide:              types.CrashSide(req.CrashSide),
		OccupantMassKg:         req.OccupantMassKg,
		OccupantHeightM:        req.OccupantHeightM,
		Gender:                 types.Gender(req.Gender),
		Pregnant:               req.IsPregnant,
		SeatDistanceFromWheelM: req.SeatDistanceCm / 100.0,
		SeatReclineAngleDeg:    req.SeatReclineAngleDeg,
		SeatHeightToDashM:      req.SeatHeightToDashCm / 100.0,
		NeckStrength:           types.NeckStrength(req.NeckStrength),
		SeatRole:               types.SeatRole(req.SeatRole),
		BeltFit:                types.BeltFit(req.BeltFit),
		Restraints: model.Restraints{
			SeatbeltUsed: req.SeatbeltUsed,
			Pretensioner: req.Pretensioner,
			LoadLimiter:  req.LoadLimiter,
			FrontAirbag:  req.FrontAirbag,
			SideAirbag:   req.SideAirbag,
		},
		CrumpleZoneM:      req.CrumpleZoneCm / 100.0,
		CabinRigidity:     types.CabinRigidity(req.CabinRigidity),
		IntrusionM:        req.IntrusionCm / 100.0,
		CorrelationFactor: req.CorrelationFactor,
	})
}

// evaluationResponse is the wire format of a stored evaluation
type evaluationResponse struct {
	ID             string                     `json:"id"`
	CreatedAt      string                     `json:"created_at"`
	Baseline       *model.CrashRiskResult     `json:"baseline"`
	Narrative      *model.NarrativeAnnotation `json:"narrative,omitempty"`
	Research       *model.ResearchContext     `json:"research,omitempty"`
	FinalRiskScore float64                    `json:"final_risk_score"`
}

func toEvaluationResponse(ev *model.Evaluation) *evaluationResponse {
	return &evaluationResponse{
		ID:             ev.ID.String(),
		CreatedAt:      ev.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Baseline:       ev.Baseline,
		Narrative:      ev.Narrative,
		Research:       ev.Research,
		FinalRiskScore: ev.FinalRiskScore,
	}
}

func (s *Server) decodeInputs(w http.ResponseWriter, r *http.Request) (*model.CrashInputs, bool) {
	var req crashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(r.Context(), w, http.StatusBadRequest, goerr.Wrap(err, "invalid request body"))
		return nil, false
	}

	in, err := req.toInputs()
	if err != nil {
		respondError(r.Context(), w, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return in, true
}

func (s *Server) calculateHandler(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	ev, err := s.uc.Crash.Evaluate(r.Context(), in)
	if err != nil {
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toEvaluationResponse(ev))
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	ev, err := s.uc.Crash.EvaluateWithAnalysis(r.Context(), in)
	if err != nil {
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toEvaluationResponse(ev))
}

func (s *Server) listSimulationsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultListLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			respondError(r.Context(), w, http.StatusBadRequest, goerr.New("limit must be an integer in [1,100]"))
			return
		}
		limit = v
	}

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(r.Context(), w, http.StatusBadRequest, goerr.New("offset must be a non-negative integer"))
			return
		}
		offset = v
	}

	filter := &model.EvaluationFilter{}
	if side := q.Get("crash_side"); side != "" {
		filter.CrashSide = types.CrashSide(side)
		if err := filter.CrashSide.Validate(); err != nil {
			respondError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
	}
	if gender := q.Get("gender"); gender != "" {
		filter.Gender = types.Gender(gender)
		if err := filter.Gender.Validate(); err != nil {
			respondError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
	}
	if raw := q.Get("pregnant"); raw != "" {
		pregnant, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(r.Context(), w, http.StatusBadRequest, goerr.New("pregnant must be a boolean"))
			return
		}
		filter.Pregnant = &pregnant
	}

	evaluations, total, err := s.uc.Crash.ListEvaluations(r.Context(), filter, limit, offset)
	if err != nil {
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	items := make([]*evaluationResponse, len(evaluations))
	for i, ev := range evaluations {
		items[i] = toEvaluationResponse(ev)
	}

	respondJSON(r.Context(), w, http.StatusOK, map[string]any{
		"simulations": items,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

func (s *Server) getSimulationHandler(w http.ResponseWriter, r *http.Request) {
	id := types.EvaluationID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		respondError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	ev, err := s.uc.Crash.GetEvaluation(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrEvaluationNotFound) {
			respondError(r.Context(), w, http.StatusNotFound, err)
			return
		}
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toEvaluationResponse(ev))
}

func (s *Server) deleteSimulationHandler(w http.ResponseWriter, r *http.Request) {
	id := types.EvaluationID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		respondError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	if err := s.uc.Crash.DeleteEvaluation(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrEvaluationNotFound) {
			respondError(r.Context(), w, http.StatusNotFound, err)
			return
		}
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"deleted": id.String()})
}

// exampleCrashHandler evaluates a fixed representative scenario. It exists
// so deployments can be smoke-tested without crafting a request body.
func (s *Server) exampleCrashHandler(w http.ResponseWriter, r *http.Request) {
	// 50 km/h frontal crash, average adult male, full safety features
	req := crashRequest{
		SpeedKmh:            50,
		VehicleMassKg:       1500,
		CrashSide:           "frontal",
		OccupantMassKg:      75,
		OccupantHeightM:     1.75,
		Gender:              "male",
		SeatDistanceCm:      30,
		SeatReclineAngleDeg: 25,
		NeckStrength:        "average",
		SeatRole:            "driver",
		BeltFit:             "good",
		SeatbeltUsed:        true,
		Pretensioner:        true,
		LoadLimiter:         true,
		FrontAirbag:         true,
		CrumpleZoneCm:       60,
		CabinRigidity:       "medium",
	}

	in, err := req.toInputs()
	if err != nil {
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	ev, err := s.uc.Crash.Evaluate(r.Context(), in)
	if err != nil {
		respondError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toEvaluationResponse(ev))
}
