package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

type indicatorDocument struct {
	Text        string   `firestore:"text"`
	Category    string   `firestore:"category"`
	Confidence  float64  `firestore:"confidence"`
	StartPos    int      `firestore:"start_pos"`
	EndPos      int      `firestore:"end_pos"`
	Explanation string   `firestore:"explanation"`
	Suggestions []string `firestore:"suggestions"`
}

type reportDocument struct {
	ID          string              `firestore:"id"`
	UserID      string              `firestore:"user_id"`
	Text        string              `firestore:"text"`
	SubmittedAt time.Time           `firestore:"submitted_at"`
	Indicators  []indicatorDocument `firestore:"indicators"`
	Overall     int                 `firestore:"overall"`
	Level       string              `firestore:"level"`
	Categories  map[string]int      `firestore:"categories"`
	CreatedAt   time.Time           `firestore:"created_at"`
}

func toReportDocument(r *model.Report) *reportDocument {
	doc := &reportDocument{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		Indicators: make([]indicatorDocument, 0, len(r.Indicators)),
		Categories: map[string]int{},
		CreatedAt:  r.CreatedAt,
	}
	if r.Content != nil {
		doc.Text = r.Content.Text
		doc.SubmittedAt = r.Content.CreatedAt
	}
	if r.Assessment != nil {
		doc.Overall = r.Assessment.Overall
		doc.Level = r.Assessment.Level.String()
		for c, s := range r.Assessment.Categories {
			doc.Categories[c.String()] = s
		}
	}
	for _, ind := range r.Indicators {
		doc.Indicators = append(doc.Indicators, indicatorDocument{
			Text:        ind.Text,
			Category:    ind.Category.String(),
			Confidence:  ind.Confidence,
			StartPos:    ind.StartPos,
			EndPos:      ind.EndPos,
			Explanation: ind.Explanation,
			Suggestions: ind.Suggestions,
		})
	}
	return doc
}

func (d *reportDocument) toModel() *model.Report {
	scores := make(model.CategoryScores, len(d.Categories))
	for c, s := range d.Categories {
		scores[types.Category(c)] = s
	}

	indicators := make([]*model.Indicator, 0, len(d.Indicators))
	for _, ind := range d.Indicators {
		indicators = append(indicators, &model.Indicator{
			Text:        ind.Text,
			Category:    types.Category(ind.Category),
			Confidence:  ind.Confidence,
			StartPos:    ind.StartPos,
			EndPos:      ind.EndPos,
			Explanation: ind.Explanation,
			Suggestions: ind.Suggestions,
		})
	}

	return &model.Report{
		ID:     types.ReportID(d.ID),
		UserID: types.UserID(d.UserID),
		Content: &model.Content{
			Text:      d.Text,
			CreatedAt: d.SubmittedAt,
		},
		Indicators: indicators,
		Assessment: &model.Assessment{
			Overall:    d.Overall,
			Level:      types.RiskLevel(d.Level),
			Categories: scores,
		},
		CreatedAt: d.CreatedAt,
	}
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{
		client: client,
	}
}

func (r *reportRepository) reportsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_reports"
	}
	return "reports"
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	if err := report.Validate(); err != nil {
		return goerr.Wrap(err, "invalid report")
	}

	docRef := r.client.Collection(r.reportsCollection()).Doc(report.ID.String())
	if _, err := docRef.Create(ctx, toReportDocument(report)); err != nil {
		return goerr.Wrap(err, "failed to create report", goerr.V("id", report.ID))
	}

	return nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	docRef := r.client.Collection(r.reportsCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	var document reportDocument
	if err := doc.DataTo(&document); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", id))
	}

	return document.toModel(), nil
}

func (r *reportRepository) List(ctx context.Context, userID types.UserID, limit, offset int) ([]*model.Report, int, error) {
	collection := r.client.Collection(r.reportsCollection())

	// Keys-only query for the total count; no document data transferred
	countIter := collection.Where("user_id", "==", userID.String()).Select().Documents(ctx)
	total := 0
	for {
		_, err := countIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			countIter.Stop()
			return nil, 0, goerr.Wrap(err, "failed to count reports", goerr.V("userID", userID))
		}
		total++
	}
	countIter.Stop()

	query := collection.
		Where("user_id", "==", userID.String()).
		OrderBy("created_at", firestore.Desc).
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	reports := make([]*model.Report, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to iterate reports", goerr.V("userID", userID))
		}

		var document reportDocument
		if err := doc.DataTo(&document); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to unmarshal report")
		}
		reports = append(reports, document.toModel())
	}

	return reports, total, nil
}

func (r *reportRepository) Delete(ctx context.Context, id types.ReportID) error {
	docRef := r.client.Collection(r.reportsCollection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete report", goerr.V("id", id))
	}

	return nil
}

func (r *reportRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	const batchSize = 500
	totalDeleted := 0

	for {
		query := r.client.Collection(r.reportsCollection()).
			Where("created_at", "<", before).
			Limit(batchSize)

		iter := query.Documents(ctx)
		bulkWriter := r.client.BulkWriter(ctx)
		count := 0

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				bulkWriter.End()
				return totalDeleted, goerr.Wrap(err, "failed to iterate reports for deletion")
			}

			if _, err := bulkWriter.Delete(doc.Ref); err != nil {
				iter.Stop()
				bulkWriter.End()
				return totalDeleted, goerr.Wrap(err, "failed to delete report")
			}
			count++
		}
		iter.Stop()
		bulkWriter.End()

		if count == 0 {
			break
		}
		totalDeleted += count

		if count < batchSize {
			break
		}
	}

	return totalDeleted, nil
}
