package routes

import (
	"net/http"
	"time"

	"github.com/mumvest/mumvest/internal/app"
	"github.com/mumvest/mumvest/internal/handler"
	"github.com/mumvest/mumvest/internal/middleware"
	"github.com/mumvest/mumvest/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.DB)
	dashboard := handler.NewDashboardHandler(app.ProgressService, app.GamificationService)
	goal := handler.NewGoalHandler(app.GoalService, app.ProgressService)
	content := handler.NewContentHandler(app.ContentService, app.ProgressService)
	lesson := handler.NewLessonHandler(app.LessonService, app.ProgressService)
	insights := handler.NewInsightsHandler(app.InsightsService)
	profile := handler.NewProfileHandler(app.UserService)
	settings := handler.NewSettingsHandler(app.UserService, app.PersonalizationService)
	billing := handler.NewBillingHandler(app.SubscriptionService)
	account := handler.NewAccountHandler(app.ExportService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", home.Health)

	// ============================================================================
	// ONBOARDING & PROFILE
	// ============================================================================

	mux.HandleFunc("GET /api/onboarding", profile.OnboardingStatus)
	mux.HandleFunc("POST /api/onboarding", profile.CompleteOnboarding)
	mux.HandleFunc("GET /api/profile", profile.Profile)
	mux.HandleFunc("PATCH /api/profile/name", profile.UpdateName)

	// Settings
	mux.HandleFunc("PUT /api/settings/currency", settings.UpdateCurrency)
	mux.HandleFunc("PUT /api/settings/notification-time", settings.UpdateNotificationTime)
	mux.HandleFunc("POST /api/settings/notifications/toggle", settings.ToggleNotifications)
	mux.HandleFunc("GET /api/settings/preferences", settings.Preferences)

	// ============================================================================
	// GOALS LEDGER
	// ============================================================================

	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("GET /api/goals/{id}", goal.Show)
	mux.HandleFunc("PATCH /api/goals/{id}", goal.Update)
	mux.HandleFunc("POST /api/goals/{id}/archive", goal.Archive)
	mux.HandleFunc("DELETE /api/goals/{id}", goal.Delete)
	mux.HandleFunc("GET /api/goals/{id}/entries", goal.Entries)
	mux.HandleFunc("POST /api/goals/{id}/entries", goal.LogSavings)
	mux.HandleFunc("PATCH /api/entries/{id}", goal.UpdateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", goal.DeleteEntry)
	mux.HandleFunc("GET /api/savings/weekly", goal.WeeklySummary)
	mux.HandleFunc("GET /api/savings/methods", goal.Methods)

	// ============================================================================
	// GAMIFICATION
	// ============================================================================

	mux.HandleFunc("GET /api/dashboard", dashboard.Dashboard)
	mux.HandleFunc("GET /api/gamification", dashboard.Gamification)
	mux.HandleFunc("GET /api/badges", dashboard.Badges)
	mux.HandleFunc("POST /api/share", dashboard.Share)

	// ============================================================================
	// CONTENT
	// ============================================================================

	// Money moments
	mux.HandleFunc("GET /api/moments/today", content.TodaysMoment)
	mux.HandleFunc("GET /api/moments", content.MomentArchive)
	mux.HandleFunc("GET /api/moments/saved", content.SavedMoments)
	mux.HandleFunc("GET /api/moments/{id}", content.Moment)
	mux.HandleFunc("POST /api/moments/{id}/read", content.ReadMoment)
	mux.HandleFunc("POST /api/moments/{id}/save", content.ToggleSaved)
	mux.HandleFunc("POST /api/moments/{id}/rate", content.RateMoment)

	// Smart swaps
	mux.HandleFunc("GET /api/swaps", content.Swaps)
	mux.HandleFunc("GET /api/swaps/adopted", content.AdoptedSwaps)
	mux.HandleFunc("POST /api/swaps/{id}/adopt", content.AdoptSwap)

	// Challenges
	mux.HandleFunc("GET /api/challenges", content.Challenges)
	mux.HandleFunc("GET /api/challenges/active", content.ActiveChallenge)
	mux.HandleFunc("DELETE /api/challenges/active", content.AbandonChallenge)
	mux.HandleFunc("POST /api/challenges/active/check-ins", content.CheckIn)
	mux.HandleFunc("POST /api/challenges/{id}/start", content.StartChallenge)

	// Lessons
	mux.HandleFunc("GET /api/lessons", lesson.List)
	mux.HandleFunc("GET /api/lessons/levels", lesson.Levels)
	mux.HandleFunc("GET /api/lessons/{id}", lesson.Show)
	mux.HandleFunc("POST /api/lessons/{id}/complete", lesson.Complete)

	// ============================================================================
	// INSIGHTS & SUBSCRIPTION
	// ============================================================================

	mux.HandleFunc("GET /api/insights/breakdown", insights.Breakdown)
	mux.HandleFunc("GET /api/insights", middleware.RequireFeature(model.FeatureInsights)(insights.Insights))

	mux.HandleFunc("GET /api/subscription", billing.Subscription)
	mux.HandleFunc("POST /api/subscription/unlock", billing.Unlock)
	mux.HandleFunc("POST /api/subscription/downgrade", billing.Downgrade)

	// ============================================================================
	// DATA
	// ============================================================================

	rateLimiter := middleware.RateLimit(3, 15*time.Minute)

	mux.HandleFunc("GET /api/export", middleware.RequireFeature(model.FeatureExport)(account.Export))
	mux.HandleFunc("POST /api/backup", rateLimiter(account.Backup))
	mux.HandleFunc("GET /api/stats", account.Stats)
	mux.HandleFunc("POST /api/reset", rateLimiter(account.Reset))

	// 404
	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Entitlement(app.SubscriptionService),
	)
}
