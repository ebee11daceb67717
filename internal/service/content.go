package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mumvest/mumvest/internal/content"
	"github.com/mumvest/mumvest/internal/dates"
	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrContentNotFound   = errors.New("content not found")
	ErrChallengeActive   = errors.New("a challenge is already active")
	ErrNoActiveChallenge = errors.New("no active challenge")
	ErrAlreadyCheckedIn  = errors.New("check-in already recorded")
)

const (
	rateHelpfulBoost  = 1.0
	rateUnhelpfulDrop = 0.5
	adoptedSwapBoost  = 2.0
)

type MomentView struct {
	content.Moment
	State model.MomentState `json:"state"`
}

type TodaysMoments struct {
	Day       int         `json:"day"`
	Today     MomentView  `json:"today"`
	Yesterday *MomentView `json:"yesterday,omitempty"`
}

type SwapView struct {
	content.Swap
	State model.SwapState `json:"state"`
}

type ChallengeView struct {
	Challenge content.Challenge     `json:"challenge"`
	State     *model.ChallengeState `json:"state"`
}

type CheckInResult struct {
	State     *model.ChallengeState `json:"state"`
	Completed bool                  `json:"completed"`
}

type ContentService struct {
	catalog             *content.Catalog
	store               kv.Store
	moments             repository.MomentStateRepository
	swaps               repository.SwapStateRepository
	challenges          repository.ChallengeRepository
	subscriptionService *SubscriptionService
	personalization     *PersonalizationService
	clock               Clock
}

func NewContentService(
	catalog *content.Catalog,
	store kv.Store,
	moments repository.MomentStateRepository,
	swaps repository.SwapStateRepository,
	challenges repository.ChallengeRepository,
	subscriptionService *SubscriptionService,
	personalization *PersonalizationService,
	clock Clock,
) *ContentService {
	return &ContentService{
		catalog:             catalog,
		store:               store,
		moments:             moments,
		swaps:               swaps,
		challenges:          challenges,
		subscriptionService: subscriptionService,
		personalization:     personalization,
		clock:               clock,
	}
}

func (s *ContentService) Catalog() *content.Catalog {
	return s.catalog
}

// programDay counts calendar days since the stored start date. No start
// date means today is day 0.
func (s *ContentService) programDay(ctx context.Context) (int, error) {
	raw, err := kv.GetString(ctx, s.store, kv.KeyMomentStartDate)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}

	start, err := dates.Parse(raw, s.clock.Loc)
	if err != nil {
		slog.Warn("unreadable moment start date, using day 0", "value", raw, "error", err)
		return 0, nil
	}
	return max(0, dates.DaysBetween(start, s.clock.Today())), nil
}

func (s *ContentService) TodaysMoment(ctx context.Context) (*TodaysMoments, error) {
	day, err := s.programDay(ctx)
	if err != nil {
		return nil, err
	}

	r := content.Rotate(day, len(s.catalog.Moments))

	today, err := s.momentView(ctx, s.catalog.Moments[r.Today])
	if err != nil {
		return nil, err
	}
	result := &TodaysMoments{Day: r.Day, Today: today}

	if r.HasYesterday {
		yesterday, err := s.momentView(ctx, s.catalog.Moments[r.Yesterday])
		if err != nil {
			return nil, err
		}
		result.Yesterday = &yesterday
	}

	return result, nil
}

func (s *ContentService) Moment(ctx context.Context, momentID string) (MomentView, error) {
	m, ok := s.catalog.Moment(momentID)
	if !ok {
		return MomentView{}, fmt.Errorf("%w: moment %s", ErrContentNotFound, momentID)
	}
	return s.momentView(ctx, m)
}

func (s *ContentService) momentView(ctx context.Context, m content.Moment) (MomentView, error) {
	state, err := s.moments.ByID(ctx, m.ID)
	if err != nil {
		return MomentView{}, err
	}
	return MomentView{Moment: m, State: *state}, nil
}

// MomentArchive lists the moments shown so far, newest first.
func (s *ContentService) MomentArchive(ctx context.Context) ([]MomentView, error) {
	day, err := s.programDay(ctx)
	if err != nil {
		return nil, err
	}

	states, err := s.momentStates(ctx)
	if err != nil {
		return nil, err
	}

	n := min(day+1, len(s.catalog.Moments))
	seen := make(map[int]bool, n)
	archive := make([]MomentView, 0, n)
	for d := day; d >= 0 && len(archive) < n; d-- {
		i := content.Index(d, len(s.catalog.Moments))
		if seen[i] {
			continue
		}
		seen[i] = true
		m := s.catalog.Moments[i]
		archive = append(archive, MomentView{Moment: m, State: states.get(m.ID)})
	}
	return archive, nil
}

func (s *ContentService) SavedMoments(ctx context.Context) ([]MomentView, error) {
	states, err := s.momentStates(ctx)
	if err != nil {
		return nil, err
	}

	saved := []MomentView{}
	for _, m := range s.catalog.Moments {
		if st := states.get(m.ID); st.IsSaved {
			saved = append(saved, MomentView{Moment: m, State: st})
		}
	}
	return saved, nil
}

type momentStateIndex map[string]*model.MomentState

func (idx momentStateIndex) get(id string) model.MomentState {
	if st, ok := idx[id]; ok {
		return *st
	}
	return model.MomentState{MomentID: id}
}

func (s *ContentService) momentStates(ctx context.Context) (momentStateIndex, error) {
	states, err := s.moments.All(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(momentStateIndex, len(states))
	for _, st := range states {
		idx[st.MomentID] = st
	}
	return idx, nil
}

// MarkMomentRead reports true only for the first read.
func (s *ContentService) MarkMomentRead(ctx context.Context, momentID string) (bool, error) {
	if _, ok := s.catalog.Moment(momentID); !ok {
		return false, fmt.Errorf("%w: moment %s", ErrContentNotFound, momentID)
	}
	return s.moments.MarkRead(ctx, momentID, s.clock.Now().UTC())
}

// ToggleMomentSaved flips the bookmark and returns the new value.
func (s *ContentService) ToggleMomentSaved(ctx context.Context, momentID string) (bool, error) {
	view, err := s.Moment(ctx, momentID)
	if err != nil {
		return false, err
	}

	saved := !view.State.IsSaved
	err = s.moments.SetSaved(ctx, momentID, saved)
	if err != nil {
		return view.State.IsSaved, err
	}
	return saved, nil
}

// RateMoment stores the vote and nudges the moment's category score.
func (s *ContentService) RateMoment(ctx context.Context, momentID string, helpful bool) error {
	m, ok := s.catalog.Moment(momentID)
	if !ok {
		return fmt.Errorf("%w: moment %s", ErrContentNotFound, momentID)
	}

	err := s.moments.SetHelpful(ctx, momentID, helpful)
	if err != nil {
		return err
	}

	if helpful {
		return s.personalization.Boost(ctx, m.Category, rateHelpfulBoost)
	}
	return s.personalization.Penalize(ctx, m.Category, rateUnhelpfulDrop)
}

func (s *ContentService) swapStates(ctx context.Context) (map[string]*model.SwapState, error) {
	states, err := s.swaps.All(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*model.SwapState, len(states))
	for _, st := range states {
		idx[st.SwapID] = st
	}
	return idx, nil
}

// Swaps lists swaps not yet adopted, favourite categories first. An empty
// category means all categories.
func (s *ContentService) Swaps(ctx context.Context, category string) ([]SwapView, error) {
	states, err := s.swapStates(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := s.personalization.Scores(ctx)
	if err != nil {
		return nil, err
	}

	views := []SwapView{}
	for _, sw := range s.catalog.Swaps {
		if category != "" && sw.Category != category {
			continue
		}
		if st, ok := states[sw.ID]; ok && st.IsAdopted {
			continue
		}
		views = append(views, SwapView{Swap: sw, State: model.SwapState{SwapID: sw.ID}})
	}

	SortByPreference(views, scores, func(v SwapView) string { return v.Category })
	return views, nil
}

func (s *ContentService) AdoptedSwaps(ctx context.Context) ([]SwapView, error) {
	states, err := s.swapStates(ctx)
	if err != nil {
		return nil, err
	}

	views := []SwapView{}
	for _, sw := range s.catalog.Swaps {
		if st, ok := states[sw.ID]; ok && st.IsAdopted {
			views = append(views, SwapView{Swap: sw, State: *st})
		}
	}
	return views, nil
}

// AdoptSwap reports true only the first time a swap is adopted.
func (s *ContentService) AdoptSwap(ctx context.Context, swapID string) (bool, error) {
	sw, ok := s.catalog.Swap(swapID)
	if !ok {
		return false, fmt.Errorf("%w: swap %s", ErrContentNotFound, swapID)
	}

	newly, err := s.swaps.Adopt(ctx, swapID, s.clock.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to adopt swap: %w", err)
	}
	if newly {
		if err := s.personalization.Boost(ctx, sw.Category, adoptedSwapBoost); err != nil {
			slog.Warn("failed to boost category", "category", sw.Category, "error", err)
		}
	}
	return newly, nil
}

// AdoptedSavingsEstimate sums the monthly saving of every adopted swap.
func (s *ContentService) AdoptedSavingsEstimate(ctx context.Context) (decimal.Decimal, error) {
	adopted, err := s.AdoptedSwaps(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, v := range adopted {
		total = total.Add(v.PotentialMonthlySaving)
	}
	return total, nil
}

func (s *ContentService) Challenges(ctx context.Context) ([]ChallengeView, error) {
	active, err := s.ActiveChallenge(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ChallengeView, 0, len(s.catalog.Challenges))
	for _, c := range s.catalog.Challenges {
		v := ChallengeView{Challenge: c}
		if active != nil && active.ChallengeID == c.ID {
			v.State = active
		}
		views = append(views, v)
	}
	return views, nil
}

// ActiveChallenge returns nil when no challenge is running.
func (s *ContentService) ActiveChallenge(ctx context.Context) (*model.ChallengeState, error) {
	state, err := s.challenges.Active(ctx)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		return nil, nil
	}
	return state, err
}

func (s *ContentService) StartChallenge(ctx context.Context, challengeID string) (*model.ChallengeState, error) {
	c, ok := s.catalog.Challenge(challengeID)
	if !ok {
		return nil, fmt.Errorf("%w: challenge %s", ErrContentNotFound, challengeID)
	}
	if c.IsPremium {
		if err := s.subscriptionService.RequireFeature(ctx, model.FeaturePremiumContent); err != nil {
			return nil, err
		}
	}

	active, err := s.ActiveChallenge(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrChallengeActive
	}

	state := &model.ChallengeState{
		ID:          uuid.New().String(),
		ChallengeID: c.ID,
		Status:      model.ChallengeStatusActive,
		CheckIns:    make(model.CheckIns, c.CheckInCount()),
		StartedAt:   s.clock.Now().UTC(),
	}

	err = s.challenges.Create(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to start challenge: %w", err)
	}

	slog.Info("challenge started", "challenge_id", c.ID)
	return state, nil
}

// CheckInChallenge marks one check-in of the active challenge. The challenge
// completes when every check-in is done.
func (s *ContentService) CheckInChallenge(ctx context.Context, index int) (*CheckInResult, error) {
	state, err := s.ActiveChallenge(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNoActiveChallenge
	}

	if index < 0 || index >= len(state.CheckIns) {
		return nil, fmt.Errorf("%w: check-in %d out of range", validation.ErrInvalid, index)
	}
	if state.CheckIns[index] {
		return nil, ErrAlreadyCheckedIn
	}

	state.CheckIns[index] = true
	completed := state.CheckIns.AllDone()
	if completed {
		now := s.clock.Now().UTC()
		state.Status = model.ChallengeStatusCompleted
		state.CompletedAt = &now
	}

	err = s.challenges.Update(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	if completed {
		slog.Info("challenge completed", "challenge_id", state.ChallengeID)
	}
	return &CheckInResult{State: state, Completed: completed}, nil
}

func (s *ContentService) AbandonChallenge(ctx context.Context) error {
	state, err := s.ActiveChallenge(ctx)
	if err != nil {
		return err
	}
	if state == nil {
		return ErrNoActiveChallenge
	}

	state.Status = model.ChallengeStatusFailed
	return s.challenges.Update(ctx, state)
}

// ReadCount feeds badge aggregates; a read failure counts as zero.
func (s *ContentService) ReadCount(ctx context.Context) int {
	n, err := s.moments.CountRead(ctx)
	if err != nil {
		slog.Warn("failed to count read moments", "error", err)
		return 0
	}
	return n
}

// AdoptedCount feeds badge and score aggregates; a read failure counts as zero.
func (s *ContentService) AdoptedCount(ctx context.Context) int {
	n, err := s.swaps.CountAdopted(ctx)
	if err != nil {
		slog.Warn("failed to count adopted swaps", "error", err)
		return 0
	}
	return n
}
