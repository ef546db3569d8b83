package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportService handles passenger "I lost something" reports and matches
// them against unclaimed items found on the same flight.
type ReportService struct {
	Deps
	populator
}

func NewReportService(d Deps) *ReportService {
	return &ReportService{Deps: d, populator: d.newPopulator()}
}

// Create stores a report and returns the candidate items. The report is
// marked matched when the flight has any unclaimed items.
func (s *ReportService) Create(ctx context.Context, req models.CreateReportRequest) (*models.ReportView, error) {
	flightID, err := primitive.ObjectIDFromHex(req.FlightID)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Invalid flight id")
	}
	flight, err := s.Flights.FindByID(ctx, flightID)
	if err != nil {
		return nil, notFound(err, "Flight not found")
	}

	report := &models.LostItemReport{
		CustomerEmail:   utils.SanitizeEmail(req.CustomerEmail),
		FlightID:        flightID,
		ItemDescription: utils.SanitizeInput(req.ItemDescription),
		Status:          models.ReportPending,
	}
	matches, err := s.matches(ctx, report)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		report.Status = models.ReportMatched
	}

	if err := s.Reports.Create(ctx, report); err != nil {
		return nil, err
	}
	s.Log.Info("Lost item report filed", "reportId", report.ID.Hex(), "flight", flight.FlightNumber, "matches", len(matches))
	return &models.ReportView{Report: report, Flight: flight, MatchingItems: matches}, nil
}

// List returns reports newest first with their flights
func (s *ReportService) List(ctx context.Context, filter repositories.ReportFilter) ([]models.ReportSummary, error) {
	reports, err := s.Reports.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.FlightID)
	}
	flights, err := s.Flights.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Flight, len(flights))
	for i := range flights {
		byID[flights[i].ID] = &flights[i]
	}

	out := make([]models.ReportSummary, 0, len(reports))
	for _, r := range reports {
		out = append(out, models.ReportSummary{LostItemReport: r, Flight: byID[r.FlightID]})
	}
	return out, nil
}

// Get returns a report with its current candidate items
func (s *ReportService) Get(ctx context.Context, id primitive.ObjectID) (*models.ReportView, error) {
	report, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Report not found")
	}
	return s.reportView(ctx, report)
}

// Update edits a report. It can only be marked matched while at least one
// unclaimed item on its flight remains.
func (s *ReportService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateReportRequest) (*models.ReportView, error) {
	report, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Report not found")
	}

	if req.CustomerEmail != nil {
		report.CustomerEmail = utils.SanitizeEmail(*req.CustomerEmail)
	}
	if req.ItemDescription != nil {
		report.ItemDescription = utils.SanitizeInput(*req.ItemDescription)
	}
	if req.Status != nil {
		if *req.Status == models.ReportMatched {
			matches, err := s.matches(ctx, report)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, newError(ErrNoMatches, "Cannot mark as matched: no matching unclaimed items found")
			}
		}
		report.Status = *req.Status
	}

	if err := s.Reports.Update(ctx, report); err != nil {
		return nil, notFound(err, "Report not found")
	}
	return s.reportView(ctx, report)
}

func (s *ReportService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return notFound(s.Reports.Delete(ctx, id), "Report not found")
}

func (s *ReportService) reportView(ctx context.Context, report *models.LostItemReport) (*models.ReportView, error) {
	flight, err := s.Flights.FindByID(ctx, report.FlightID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	view := &models.ReportView{Report: report, Flight: flight}

	matches, err := s.matches(ctx, report)
	if err != nil {
		return nil, err
	}
	view.MatchingItems = matches
	return view, nil
}

// matches returns the unclaimed items on the report's flight, best word
// overlap with the report description first.
func (s *ReportService) matches(ctx context.Context, report *models.LostItemReport) ([]models.LostItemView, error) {
	items, err := s.Items.List(ctx, repositories.LostItemFilter{
		Status:   models.StatusUnclaimed,
		FlightID: &report.FlightID,
	})
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, items)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].CollectionCode = ""
	}
	return rankByOverlap(report.ItemDescription, views), nil
}

// rankByOverlap orders items by the number of description words they share
// with text. Ties keep their original order.
func rankByOverlap(text string, items []models.LostItemView) []models.LostItemView {
	wanted := words(text)
	scores := make([]int, len(items))
	for i, item := range items {
		for w := range words(item.ItemName + " " + item.ItemDescription) {
			if wanted[w] {
				scores[i]++
			}
		}
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	ranked := make([]models.LostItemView, len(items))
	for i, idx := range order {
		ranked[i] = items[idx]
	}
	return ranked
}

// words splits text into lower-cased words of three or more letters
func words(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(w) >= 3 {
			set[w] = true
		}
	}
	return set
}
