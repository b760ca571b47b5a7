// Package app assembles use cases, handlers and middleware into one fasthttp handler.
package app

import (
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/pprofhandler"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/dashboard/api/handler"
	"github.com/fastygo/dashboard/internal/config"
	"github.com/fastygo/dashboard/internal/metrics"
	"github.com/fastygo/dashboard/internal/middleware"
	"github.com/fastygo/dashboard/internal/router"
	"github.com/fastygo/dashboard/pkg/httpcontext"
	"github.com/fastygo/dashboard/pkg/password"
	"github.com/fastygo/dashboard/pkg/token"
	"github.com/fastygo/dashboard/repository"
	"github.com/fastygo/dashboard/usecase"
	analyticsUC "github.com/fastygo/dashboard/usecase/analytics"
	authUC "github.com/fastygo/dashboard/usecase/auth"
	goalUC "github.com/fastygo/dashboard/usecase/goal"
	habitUC "github.com/fastygo/dashboard/usecase/habit"
	layoutUC "github.com/fastygo/dashboard/usecase/layout"
	profileUC "github.com/fastygo/dashboard/usecase/profile"
	taskUC "github.com/fastygo/dashboard/usecase/task"
)

// Repositories is the storage a deployment provides. Sessions may be nil.
type Repositories struct {
	Users     repository.UserRepository
	Sessions  repository.SessionRepository
	Tasks     repository.TaskRepository
	Habits    repository.HabitRepository
	Goals     repository.GoalRepository
	Layouts   repository.LayoutRepository
	Analytics repository.AnalyticsRepository
}

type Options struct {
	Clock   usecase.Clock
	Metrics *metrics.HTTP
	Health  apiHandler.StatusSource
	Pprof   bool
}

// NewHandler wires the full HTTP surface.
func NewHandler(cfg *config.Config, repos Repositories, opts Options, logger *zap.Logger) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = usecase.SystemClock
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	authUseCase := authUC.New(repos.Users, repos.Sessions, hasher, tokens, logger)
	profileUseCase := profileUC.New(repos.Users, logger)
	taskUseCase := taskUC.New(repos.Tasks, clock, logger)
	habitUseCase := habitUC.New(repos.Habits, logger)
	goalUseCase := goalUC.New(repos.Goals, logger)
	layoutUseCase := layoutUC.New(repos.Layouts, logger)
	analyticsUseCase := analyticsUC.New(repos.Analytics, clock, cfg.Location(), logger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, logger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, logger),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, logger),
		Habit:     apiHandler.NewHabitHandler(habitUseCase, ctxAdapter, logger),
		Goal:      apiHandler.NewGoalHandler(goalUseCase, ctxAdapter, logger),
		Layout:    apiHandler.NewLayoutHandler(layoutUseCase, ctxAdapter, logger),
		Analytics: apiHandler.NewAnalyticsHandler(analyticsUseCase, ctxAdapter, logger),
		Health:    apiHandler.NewHealthHandler(opts.Health, ctxAdapter, logger),
	}
	if opts.Metrics != nil {
		handlers.Metrics = opts.Metrics.Handler()
	}
	if opts.Pprof {
		handlers.Pprof = pprofhandler.PprofHandler
	}

	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitRPS, cfg.Auth.RateLimitBurst, logger)
	r := router.New(handlers, router.Middlewares{
		Auth:      middleware.JWTAuth(authUseCase, ctxAdapter, logger),
		RateLimit: limiter.Handler,
	})

	cors := middleware.NewCORS(cfg.CORS.AllowedOrigins)
	instrument := middleware.Instrument(opts.Metrics, logger)
	return instrument(cors.Handler(r.Handler))
}

