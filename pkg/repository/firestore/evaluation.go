package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// evaluationDocument denormalizes the filterable scenario fields to the top
// level for Where queries and keeps the deep result records as JSON blobs so
// they round-trip exactly as the engine produced them.
type evaluationDocument struct {
	ID             string    `firestore:"id"`
	CreatedAt      time.Time `firestore:"created_at"`
	FinalRiskScore float64   `firestore:"final_risk_score"`

	CrashSide string `firestore:"crash_side"`
	Gender    string `firestore:"gender"`
	Pregnant  bool   `firestore:"pregnant"`

	Baseline  []byte `firestore:"baseline_json"`
	Narrative []byte `firestore:"narrative_json"`
	Research  []byte `firestore:"research_json"`
}

type evaluationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEvaluationRepository(client *firestore.Client) *evaluationRepository {
	return &evaluationRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *evaluationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_evaluations"
	}
	return "evaluations"
}

func toDocument(ev *model.Evaluation) (*evaluationDocument, error) {
	doc := &evaluationDocument{
		ID:             ev.ID.String(),
		CreatedAt:      ev.CreatedAt,
		FinalRiskScore: ev.FinalRiskScore,
	}

	if ev.Baseline != nil {
		doc.CrashSide = string(ev.Baseline.Inputs.CrashSide)
		doc.Gender = string(ev.Baseline.Inputs.Gender)
		doc.Pregnant = ev.Baseline.Inputs.Pregnant

		raw, err := json.Marshal(ev.Baseline)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal baseline result")
		}
		doc.Baseline = raw
	}

	if ev.Narrative != nil {
		raw, err := json.Marshal(ev.Narrative)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal narrative annotation")
		}
		doc.Narrative = raw
	}

	if ev.Research != nil {
		raw, err := json.Marshal(ev.Research)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal research context")
		}
		doc.Research = raw
	}

	return doc, nil
}

func fromDocument(doc *evaluationDocument) (*model.Evaluation, error) {
	ev := &model.Evaluation{
		ID:             types.EvaluationID(doc.ID),
		CreatedAt:      doc.CreatedAt,
		FinalRiskScore: doc.FinalRiskScore,
	}

	if len(doc.Baseline) > 0 {
		var baseline model.CrashRiskResult
		if err := json.Unmarshal(doc.Baseline, &baseline); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal baseline result", goerr.V("id", doc.ID))
		}
		ev.Baseline = &baseline
	}

	if len(doc.Narrative) > 0 {
		var narrative model.NarrativeAnnotation
		if err := json.Unmarshal(doc.Narrative, &narrative); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal narrative annotation", goerr.V("id", doc.ID))
		}
		ev.Narrative = &narrative
	}

	if len(doc.Research) > 0 {
		var research model.ResearchContext
		if err := json.Unmarshal(doc.Research, &research); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal research context", goerr.V("id", doc.ID))
		}
		ev.Research = &research
	}

	return ev, nil
}

func (r *evaluationRepository) Put(ctx context.Context, ev *model.Evaluation) error {
	if err := ev.ID.Validate(); err != nil {
		return err
	}

	doc, err := toDocument(ev)
	if err != nil {
		return err
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put evaluation", goerr.V("id", doc.ID))
	}

	return nil
}

func (r *evaluationRepository) Get(ctx context.Context, id types.EvaluationID) (*model.Evaluation, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evaluation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get evaluation", goerr.V("id", id))
	}

	var evalDoc evaluationDocument
	if err := doc.DataTo(&evalDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal evaluation", goerr.V("id", id))
	}

	return fromDocument(&evalDoc)
}

func (r *evaluationRepository) query(filter *model.EvaluationFilter) firestore.Query {
	q := r.client.Collection(r.collection()).Query
	if filter == nil {
		return q
	}
	if filter.CrashSide != "" {
		q = q.Where("crash_side", "==", string(filter.CrashSide))
	}
	if filter.Gender != "" {
		q = q.Where("gender", "==", string(filter.Gender))
	}
	if filter.Pregnant != nil {
		q = q.Where("pregnant", "==", *filter.Pregnant)
	}
	return q
}

func (r *evaluationRepository) List(ctx context.Context, filter *model.EvaluationFilter, limit, offset int) ([]*model.Evaluation, error) {
	q := r.query(filter).OrderBy("created_at", firestore.Desc)
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	evaluations := []*model.Evaluation{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evaluations")
		}

		var evalDoc evaluationDocument
		if err := doc.DataTo(&evalDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal evaluation")
		}

		ev, err := fromDocument(&evalDoc)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}

	return evaluations, nil
}

func (r *evaluationRepository) Count(ctx context.Context, filter *model.EvaluationFilter) (int, error) {
	iter := r.query(filter).Documents(ctx)
	defer iter.Stop()

	var count int
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count evaluations")
		}
		count++
	}

	return count, nil
}

func (r *evaluationRepository) Delete(ctx context.Context, id types.EvaluationID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "evaluation not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get evaluation", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete evaluation", goerr.V("id", id))
	}

	return nil
}
