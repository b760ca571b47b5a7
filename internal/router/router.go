package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/dashboard/api/handler"
)

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Profile   *apiHandler.ProfileHandler
	Task      *apiHandler.TaskHandler
	Habit     *apiHandler.HabitHandler
	Goal      *apiHandler.GoalHandler
	Layout    *apiHandler.LayoutHandler
	Analytics *apiHandler.AnalyticsHandler
	Health    *apiHandler.HealthHandler
	// Metrics and Pprof are mounted only when set.
	Metrics fasthttp.RequestHandler
	Pprof   fasthttp.RequestHandler
}

type Middlewares struct {
	Auth      Middleware
	RateLimit Middleware
}

func New(handlers Handlers, mw Middlewares) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	protected := mw.Auth
	limited := mw.RateLimit
	if limited == nil {
		limited = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r.GET("/health", handlers.Health.Check)
	if handlers.Metrics != nil {
		r.GET("/metrics", handlers.Metrics)
	}
	if handlers.Pprof != nil {
		r.GET("/debug/pprof/{profile:*}", handlers.Pprof)
	}

	// Auth routes
	r.POST("/auth/register", limited(handlers.Auth.Register))
	r.POST("/auth/login", limited(handlers.Auth.Login))
	r.POST("/auth/refresh", protected(handlers.Auth.Refresh))
	r.POST("/auth/logout", protected(handlers.Auth.Logout))

	// Protected routes
	r.GET("/me", protected(handlers.Profile.Me))

	r.GET("/tasks", protected(handlers.Task.GetTasks))
	r.POST("/tasks", protected(handlers.Task.CreateTask))
	r.GET("/tasks/{id}", protected(handlers.Task.GetTask))
	r.PUT("/tasks/{id}", protected(handlers.Task.UpdateTask))
	r.DELETE("/tasks/{id}", protected(handlers.Task.DeleteTask))

	r.GET("/habits", protected(handlers.Habit.GetHabits))
	r.POST("/habits", protected(handlers.Habit.CreateHabit))
	r.GET("/habits/{id}", protected(handlers.Habit.GetHabit))
	r.PUT("/habits/{id}", protected(handlers.Habit.UpdateHabit))
	r.DELETE("/habits/{id}", protected(handlers.Habit.DeleteHabit))
	r.POST("/habits/{id}/logs", protected(handlers.Habit.LogHabit))

	r.GET("/goals", protected(handlers.Goal.GetGoals))
	r.POST("/goals", protected(handlers.Goal.CreateGoal))
	r.GET("/goals/{id}", protected(handlers.Goal.GetGoal))
	r.PUT("/goals/{id}", protected(handlers.Goal.UpdateGoal))
	r.DELETE("/goals/{id}", protected(handlers.Goal.DeleteGoal))

	r.GET("/layout", protected(handlers.Layout.GetLayout))
	r.PUT("/layout", protected(handlers.Layout.PutLayout))

	r.GET("/analytics/weekly", protected(handlers.Analytics.Weekly))

	return r
}
