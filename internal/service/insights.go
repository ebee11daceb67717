package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/mumvest/mumvest/internal/dates"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const swapImpactPerAdoption = 25

var titleCaser = cases.Title(language.English)

// MethodLabel turns a method id such as "cooked_at_home" into "Cooked At Home".
func MethodLabel(method string) string {
	return titleCaser.String(strings.ReplaceAll(method, "_", " "))
}

type InsightsService struct {
	goals               *GoalService
	content             *ContentService
	subscriptionService *SubscriptionService
	clock               Clock
}

func NewInsightsService(goals *GoalService, content *ContentService, subscriptionService *SubscriptionService, clock Clock) *InsightsService {
	return &InsightsService{
		goals:               goals,
		content:             content,
		subscriptionService: subscriptionService,
		clock:               clock,
	}
}

// Breakdown totals savings per goal and per method, largest first.
func (s *InsightsService) Breakdown(ctx context.Context) (*model.SavingsBreakdown, error) {
	entries, err := s.goals.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.Goals(ctx, true)
	if err != nil {
		return nil, err
	}

	byGoal := sumByGoal(entries)
	breakdown := &model.SavingsBreakdown{
		ByGoal:   []model.GoalTotal{},
		ByMethod: methodTotals(entries),
	}
	for _, g := range goals {
		if total, ok := byGoal[g.ID]; ok {
			breakdown.ByGoal = append(breakdown.ByGoal, model.GoalTotal{
				GoalID: g.ID,
				Name:   g.Name,
				Emoji:  g.Emoji,
				Total:  total,
			})
		}
	}
	slices.SortStableFunc(breakdown.ByGoal, func(a, b model.GoalTotal) int {
		return b.Total.Cmp(a.Total)
	})

	return breakdown, nil
}

func methodTotals(entries []*model.SavingsEntry) []model.MethodTotal {
	idx := map[string]int{}
	totals := []model.MethodTotal{}
	for _, e := range entries {
		method := e.Method
		if method == "" {
			method = model.MethodOther
		}
		i, ok := idx[method]
		if !ok {
			i = len(totals)
			idx[method] = i
			totals = append(totals, model.MethodTotal{Method: method, Label: MethodLabel(method), Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
		totals[i].Count++
	}

	slices.SortFunc(totals, func(a, b model.MethodTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})
	return totals
}

// Insights is the premium savings report.
func (s *InsightsService) Insights(ctx context.Context) (*model.Insights, error) {
	err := s.subscriptionService.RequireFeature(ctx, model.FeatureInsights)
	if err != nil {
		return nil, err
	}

	entries, err := s.goals.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.Goals(ctx, true)
	if err != nil {
		return nil, err
	}

	return buildInsights(entries, goals, s.content.AdoptedCount(ctx), s.clock), nil
}

func buildInsights(entries []*model.SavingsEntry, goals []*model.GoalWithProgress, adopted int, clock Clock) *model.Insights {
	in := &model.Insights{
		MonthlySavings:   []model.MonthlyTotal{},
		TotalSaved:       decimal.Zero,
		AvgMonthly:       decimal.Zero,
		ProjectedAnnual:  decimal.Zero,
		SwapImpact:       decimal.NewFromInt(int64(adopted * swapImpactPerAdoption)),
		AdoptedSwapCount: adopted,
	}

	monthly := map[string]decimal.Decimal{}
	for _, e := range entries {
		key := dates.MonthKey(e.CreatedAt.In(clock.Loc))
		monthly[key] = monthly[key].Add(e.Amount)
		in.TotalSaved = in.TotalSaved.Add(e.Amount)
	}

	for month, total := range monthly {
		in.MonthlySavings = append(in.MonthlySavings, model.MonthlyTotal{Month: month, Total: total})
	}
	slices.SortFunc(in.MonthlySavings, func(a, b model.MonthlyTotal) int {
		return cmp.Compare(a.Month, b.Month)
	})

	if n := len(in.MonthlySavings); n > 0 {
		in.AvgMonthly = in.TotalSaved.Div(decimal.NewFromInt(int64(n)))
		in.ProjectedAnnual = in.AvgMonthly.Mul(decimal.NewFromInt(12))

		best := in.MonthlySavings[0]
		for _, m := range in.MonthlySavings[1:] {
			if m.Total.GreaterThan(best.Total) {
				best = m
			}
		}
		in.BestMonth = &best
	}

	if n := len(in.MonthlySavings); n >= 2 {
		last, prev := in.MonthlySavings[n-1].Total, in.MonthlySavings[n-2].Total
		if prev.IsPositive() {
			in.Trend = last.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
	}

	if methods := methodTotals(entries); len(methods) > 0 {
		in.TopMethod = methods[0].Method
	}

	for _, g := range goals {
		if g.IsCompleted {
			in.CompletedGoals++
		}
	}

	return in
}
