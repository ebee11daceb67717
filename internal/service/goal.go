package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mumvest/mumvest/internal/dates"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/validation"
	"github.com/shopspring/decimal"
)

var ErrGoalLimitReached = errors.New("free plan goal limit reached")

// EntryChangeHook runs after a savings entry is edited or deleted.
// Completion is never revoked by the ledger itself.
type EntryChangeHook func(ctx context.Context, goal *model.Goal, progress model.GoalProgress)

type CreateGoalInput struct {
	Name              string                  `json:"name"`
	Emoji             string                  `json:"emoji"`
	Type              model.GoalType          `json:"type"`
	TargetAmount      decimal.Decimal         `json:"targetAmount"`
	TargetDate        *time.Time              `json:"targetDate"`
	ReminderFrequency model.ReminderFrequency `json:"reminderFrequency"`
	ReminderDay       *int                    `json:"reminderDay"`
}

// GoalUpdate changes only the non-nil fields. ClearTargetDate drops the
// target date; it wins over TargetDate.
type GoalUpdate struct {
	Name              *string                  `json:"name"`
	Emoji             *string                  `json:"emoji"`
	Type              *model.GoalType          `json:"type"`
	TargetAmount      *decimal.Decimal         `json:"targetAmount"`
	TargetDate        *time.Time               `json:"targetDate"`
	ReminderFrequency *model.ReminderFrequency `json:"reminderFrequency"`
	ReminderDay       *int                     `json:"reminderDay"`
	ClearTargetDate   bool                     `json:"clearTargetDate"`
}

type LogSavingsInput struct {
	GoalID string          `json:"goalId"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

type LogSavingsResult struct {
	Entry         *model.SavingsEntry `json:"entry"`
	Progress      model.GoalProgress  `json:"progress"`
	GoalCompleted bool                `json:"goalCompleted"`
}

type GoalService struct {
	repo                repository.GoalRepository
	entryRepo           repository.SavingsEntryRepository
	subscriptionService *SubscriptionService
	clock               Clock
	onEntryChange       EntryChangeHook
}

func NewGoalService(
	repo repository.GoalRepository,
	entryRepo repository.SavingsEntryRepository,
	subscriptionService *SubscriptionService,
	clock Clock,
) *GoalService {
	return &GoalService{
		repo:                repo,
		entryRepo:           entryRepo,
		subscriptionService: subscriptionService,
		clock:               clock,
	}
}

func (s *GoalService) SetEntryChangeHook(hook EntryChangeHook) {
	s.onEntryChange = hook
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*model.GoalWithProgress, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Type == "" {
		input.Type = model.GoalTypeCustom
	}
	if input.ReminderFrequency == "" {
		input.ReminderFrequency = model.ReminderWeekly
	}

	for _, err := range []error{
		validation.ValidateName(input.Name),
		validation.ValidateAmount(input.TargetAmount),
		validation.ValidateGoalType(input.Type),
		validation.ValidateReminderFrequency(input.ReminderFrequency),
		validation.ValidateReminderDay(input.ReminderFrequency, input.ReminderDay),
	} {
		if err != nil {
			return nil, err
		}
	}

	ok, err := s.CanCreateGoal(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrGoalLimitReached
	}

	emoji := input.Emoji
	if emoji == "" {
		emoji = input.Type.Emoji()
	}

	now := s.clock.Now().UTC()
	goal := &model.Goal{
		ID:                uuid.New().String(),
		Name:              input.Name,
		Emoji:             emoji,
		Type:              input.Type,
		TargetAmount:      input.TargetAmount,
		TargetDate:        input.TargetDate,
		ReminderFrequency: input.ReminderFrequency,
		ReminderDay:       input.ReminderDay,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "goal_id", goal.ID, "type", goal.Type)

	return &model.GoalWithProgress{
		Goal:     goal,
		Progress: model.NewGoalProgress(decimal.Zero, goal.TargetAmount),
	}, nil
}

// CanCreateGoal checks the active goal count against the plan's limit.
func (s *GoalService) CanCreateGoal(ctx context.Context) (bool, error) {
	subscription, err := s.subscriptionService.Subscription(ctx)
	if err != nil {
		return false, err
	}

	limit := subscription.GetGoalLimit()
	if limit == -1 { // -1 means unlimited
		return true, nil
	}

	count, err := s.repo.CountActive(ctx)
	if err != nil {
		return false, err
	}

	return count < limit, nil
}

func (s *GoalService) Goal(ctx context.Context, goalID string) (*model.Goal, error) {
	return s.repo.ByID(ctx, goalID)
}

func (s *GoalService) Goals(ctx context.Context, includeArchived bool) ([]*model.GoalWithProgress, error) {
	goals, err := s.repo.Goals(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	saved := sumByGoal(entries)
	result := make([]*model.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		result = append(result, &model.GoalWithProgress{
			Goal:     g,
			Progress: model.NewGoalProgress(saved[g.ID], g.TargetAmount),
		})
	}

	return result, nil
}

func (s *GoalService) Update(ctx context.Context, goalID string, update GoalUpdate) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validation.ValidateName(name); err != nil {
			return nil, err
		}
		goal.Name = name
	}
	if update.Emoji != nil {
		goal.Emoji = *update.Emoji
	}
	if update.Type != nil {
		if err := validation.ValidateGoalType(*update.Type); err != nil {
			return nil, err
		}
		goal.Type = *update.Type
	}
	if update.TargetAmount != nil {
		if err := validation.ValidateAmount(*update.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *update.TargetAmount
	}
	if update.TargetDate != nil {
		goal.TargetDate = update.TargetDate
	}
	if update.ClearTargetDate {
		goal.TargetDate = nil
	}
	if update.ReminderFrequency != nil {
		if err := validation.ValidateReminderFrequency(*update.ReminderFrequency); err != nil {
			return nil, err
		}
		goal.ReminderFrequency = *update.ReminderFrequency
		// A stored day that does not fit the new frequency is dropped.
		if update.ReminderDay == nil && validation.ValidateReminderDay(goal.ReminderFrequency, goal.ReminderDay) != nil {
			goal.ReminderDay = nil
		}
	}
	if update.ReminderDay != nil {
		goal.ReminderDay = update.ReminderDay
	}
	if err := validation.ValidateReminderDay(goal.ReminderFrequency, goal.ReminderDay); err != nil {
		return nil, err
	}

	goal.UpdatedAt = s.clock.Now().UTC()
	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	// A lowered target can complete the goal.
	if update.TargetAmount != nil {
		progress, err := s.GoalProgress(ctx, goalID)
		if err != nil {
			return nil, err
		}
		if _, err := s.markCompletedIfReached(ctx, goal, progress); err != nil {
			return nil, err
		}
	}

	return goal, nil
}

func (s *GoalService) Archive(ctx context.Context, goalID string) error {
	return s.repo.Archive(ctx, goalID)
}

// Delete removes the goal and all of its savings entries.
func (s *GoalService) Delete(ctx context.Context, goalID string) error {
	err := s.repo.Delete(ctx, goalID)
	if err != nil {
		return err
	}
	slog.Info("goal deleted", "goal_id", goalID)
	return nil
}

func (s *GoalService) LogSavings(ctx context.Context, input LogSavingsInput) (*LogSavingsResult, error) {
	input.Note = strings.TrimSpace(input.Note)
	for _, err := range []error{
		validation.ValidateAmount(input.Amount),
		validation.ValidateMethod(input.Method),
		validation.ValidateNote(input.Note),
	} {
		if err != nil {
			return nil, err
		}
	}

	goal, err := s.repo.ByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}

	entry := &model.SavingsEntry{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		Amount:    input.Amount,
		Method:    input.Method,
		Note:      input.Note,
		CreatedAt: s.clock.Now().UTC(),
	}

	err = s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log savings: %w", err)
	}

	progress, err := s.GoalProgress(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	completed, err := s.markCompletedIfReached(ctx, goal, progress)
	if err != nil {
		return nil, err
	}

	return &LogSavingsResult{Entry: entry, Progress: progress, GoalCompleted: completed}, nil
}

// markCompletedIfReached reports true only the first time a goal completes.
func (s *GoalService) markCompletedIfReached(ctx context.Context, goal *model.Goal, progress model.GoalProgress) (bool, error) {
	if goal.IsCompleted || !progress.Reached() {
		return false, nil
	}

	now := s.clock.Now().UTC()
	newly, err := s.repo.MarkCompleted(ctx, goal.ID, now)
	if err != nil {
		return false, fmt.Errorf("failed to mark goal completed: %w", err)
	}
	if newly {
		goal.IsCompleted = true
		goal.CompletedAt = &now
		slog.Info("goal completed", "goal_id", goal.ID)
	}
	return newly, nil
}

func (s *GoalService) UpdateSavingsEntry(ctx context.Context, entryID string, amount decimal.Decimal) (*model.SavingsEntry, error) {
	if err := validation.ValidateAmount(amount); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.ByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	err = s.entryRepo.UpdateAmount(ctx, entryID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update savings entry: %w", err)
	}
	entry.Amount = amount

	s.entryChanged(ctx, entry.GoalID)
	return entry, nil
}

func (s *GoalService) DeleteSavingsEntry(ctx context.Context, entryID string) error {
	entry, err := s.entryRepo.ByID(ctx, entryID)
	if err != nil {
		return err
	}

	err = s.entryRepo.Delete(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete savings entry: %w", err)
	}

	s.entryChanged(ctx, entry.GoalID)
	return nil
}

func (s *GoalService) entryChanged(ctx context.Context, goalID string) {
	if s.onEntryChange == nil {
		return
	}

	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		slog.Warn("entry change hook skipped", "goal_id", goalID, "error", err)
		return
	}
	progress, err := s.GoalProgress(ctx, goalID)
	if err != nil {
		slog.Warn("entry change hook skipped", "goal_id", goalID, "error", err)
		return
	}
	s.onEntryChange(ctx, goal, progress)
}

func (s *GoalService) Entries(ctx context.Context, goalID string) ([]*model.SavingsEntry, error) {
	if _, err := s.repo.ByID(ctx, goalID); err != nil {
		return nil, err
	}
	return s.entryRepo.ByGoal(ctx, goalID)
}

func (s *GoalService) AllEntries(ctx context.Context) ([]*model.SavingsEntry, error) {
	return s.entryRepo.All(ctx)
}

func (s *GoalService) GoalProgress(ctx context.Context, goalID string) (model.GoalProgress, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return model.GoalProgress{}, err
	}

	entries, err := s.entryRepo.ByGoal(ctx, goalID)
	if err != nil {
		return model.GoalProgress{}, err
	}

	return model.NewGoalProgress(sumEntries(entries), goal.TargetAmount), nil
}

func (s *GoalService) TotalSaved(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.entryRepo.All(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sumEntries(entries), nil
}

// GoalsWithSavings counts goals holding a positive saved amount.
func (s *GoalService) GoalsWithSavings(ctx context.Context) (int, error) {
	entries, err := s.entryRepo.All(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, total := range sumByGoal(entries) {
		if total.IsPositive() {
			n++
		}
	}
	return n, nil
}

// WeeklySummary compares the current Monday-start week with the one before.
func (s *GoalService) WeeklySummary(ctx context.Context) (*model.WeeklySummary, error) {
	entries, err := s.entryRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	thisWeek := dates.StartOfWeek(s.clock.Today())
	lastWeek := thisWeek.AddDate(0, 0, -7)

	summary := &model.WeeklySummary{TotalSaved: decimal.Zero}
	previous := decimal.Zero
	byGoal := map[string]decimal.Decimal{}

	for _, e := range entries {
		at := e.CreatedAt.In(s.clock.Loc)
		switch {
		case !at.Before(thisWeek):
			summary.TotalSaved = summary.TotalSaved.Add(e.Amount)
			summary.EntryCount++
			byGoal[e.GoalID] = byGoal[e.GoalID].Add(e.Amount)
		case !at.Before(lastWeek):
			previous = previous.Add(e.Amount)
		}
	}

	if previous.IsPositive() {
		summary.ComparedToLastWeek = summary.TotalSaved.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	topID := ""
	for id, total := range byGoal {
		if topID == "" || total.GreaterThan(byGoal[topID]) || (total.Equal(byGoal[topID]) && id < topID) {
			topID = id
		}
	}
	if topID != "" {
		goal, err := s.repo.ByID(ctx, topID)
		if err != nil && !errors.Is(err, repository.ErrGoalNotFound) {
			return nil, err
		}
		if goal != nil {
			summary.TopGoal = goal.Name
		}
	}

	return summary, nil
}

// ProjectedCompletion extrapolates the average daily rate since the oldest
// entry. It returns nil when there is not enough history or nothing remains.
func (s *GoalService) ProjectedCompletion(ctx context.Context, goalID string) (*time.Time, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ByGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 {
		return nil, nil
	}

	saved := sumEntries(entries)
	remaining := goal.TargetAmount.Sub(saved)
	if !remaining.IsPositive() {
		return nil, nil
	}

	oldest := entries[0].CreatedAt
	for _, e := range entries[1:] {
		if e.CreatedAt.Before(oldest) {
			oldest = e.CreatedAt
		}
	}

	now := s.clock.Today()
	days := dates.DaysBetween(oldest.In(s.clock.Loc), now)
	if days <= 0 {
		return nil, nil
	}

	rate := saved.Div(decimal.NewFromInt(int64(days)))
	if !rate.IsPositive() {
		return nil, nil
	}

	daysNeeded := remaining.Div(rate).Ceil().IntPart()
	projected := dates.AddDays(now, int(daysNeeded))
	return &projected, nil
}

func sumEntries(entries []*model.SavingsEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func sumByGoal(entries []*model.SavingsEntry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		totals[e.GoalID] = totals[e.GoalID].Add(e.Amount)
	}
	return totals
}
