package history

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"assetfeed/internal/market"
	"assetfeed/internal/tefas"
)

const (
	defaultChunkDays  = 90
	defaultMaxWorkers = 10
)

// FundSource provides fund family price history. *tefas.Client satisfies it.
type FundSource interface {
	History(ctx context.Context, symbol string, kind tefas.FundKind, start, end time.Time) ([]tefas.Row, error)
}

// MarketSource provides market family price history. *market.Client
// satisfies it.
type MarketSource interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]market.Bar, error)
}

// Service runs batch and single historical fetches.
type Service struct {
	funds      FundSource
	market     MarketSource
	validate   *validator.Validate
	chunkDays  int
	maxWorkers int
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithChunkDays sets the fund family query window width in calendar days.
func WithChunkDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.chunkDays = days
		}
	}
}

// WithMaxWorkers sets the batch concurrency bound.
func WithMaxWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxWorkers = n
		}
	}
}

// WithClock overrides the time source used for open-ended ranges.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over the two source families.
func NewService(funds FundSource, mkt MarketSource, opts ...Option) *Service {
	s := &Service{
		funds:      funds,
		market:     mkt,
		validate:   validator.New(),
		chunkDays:  defaultChunkDays,
		maxWorkers: defaultMaxWorkers,
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FetchBatch runs every well-formed request concurrently, at most maxWorkers
// at a time, and returns one Result per valid request in input order. A
// malformed request is dropped and reported on the diagnostic stream; it
// does not abort the batch. Workers never cancel each other: one symbol's
// failure only shows in its own Result.
func (s *Service) FetchBatch(ctx context.Context, reqs []Request) []Result {
	valid := make([]Request, 0, len(reqs))
	for i, req := range reqs {
		if err := s.validate.Struct(req); err != nil {
			slog.Warn("dropping malformed request",
				"index", i,
				"symbol", req.Symbol,
				"error", err)
			continue
		}
		valid = append(valid, req)
	}

	results := make([]Result, len(valid))

	g := new(errgroup.Group)
	g.SetLimit(s.maxWorkers)
	for i, req := range valid {
		i, req := i, req
		g.Go(func() error {
			// Each worker writes only its own slot.
			results[i] = s.Fetch(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Fetch retrieves the price series for a single request. The request's
// asset type alone decides the source family; it is never inferred from the
// symbol.
func (s *Service) Fetch(ctx context.Context, req Request) Result {
	res := Result{Symbol: req.Symbol}

	start, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		res.Err = fmt.Errorf("invalid start date %q: %w", req.StartDate, err)
		return res
	}

	switch req.Type {
	case TypeFund, TypePension:
		kind := tefas.KindMutual
		if req.Type == TypePension {
			kind = tefas.KindPension
		}
		res.Points, res.Warnings, res.Err = s.fetchFundChunked(ctx, req.Symbol, kind, start)
	default:
		res.Points, res.Err = s.fetchMarket(ctx, req, start)
	}
	return res
}

// fetchFundChunked splits [start, now] into consecutive chunkDays-wide
// windows, fetches them in order, and concatenates the results. A failed
// window is recorded as a warning and skipped; the fetch as a whole fails
// only when every window failed.
func (s *Service) fetchFundChunked(ctx context.Context, symbol string, kind tefas.FundKind, start time.Time) ([]Point, []string, error) {
	end := s.now()

	var (
		points   []Point
		warnings []string
		windows  int
		failed   int
	)

	for cur := start; cur.Before(end); {
		winEnd := cur.AddDate(0, 0, s.chunkDays)
		if winEnd.After(end) {
			winEnd = end
		}
		windows++

		rows, err := s.funds.History(ctx, symbol, kind, cur, winEnd)
		if err != nil {
			failed++
			warnings = append(warnings, fmt.Sprintf("window %s..%s: %v",
				cur.Format(DateLayout), winEnd.Format(DateLayout), err))
		} else {
			for _, row := range rows {
				points = append(points, Point{Date: row.Date, Price: row.Price})
			}
		}

		cur = winEnd.AddDate(0, 0, 1)
	}

	// The upstream returns each window sorted, but that is not a
	// documented guarantee. Stable keeps window order for equal dates.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	if windows > 0 && failed == windows {
		return points, warnings, fmt.Errorf("all %d windows failed for %s", windows, symbol)
	}
	return points, warnings, nil
}

func (s *Service) fetchMarket(ctx context.Context, req Request, start time.Time) ([]Point, error) {
	symbol := NormalizeSymbol(req.Symbol, req.Type)

	bars, err := s.market.History(ctx, symbol, start, s.now())
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(bars))
	for _, bar := range bars {
		points = append(points, Point{Date: bar.Date, Price: bar.Close})
	}
	return points, nil
}
