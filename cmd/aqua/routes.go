package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getactivity "aqua-backend/http-server/activity/get"
	calchandler "aqua-backend/http-server/calculator"
	generate_excel "aqua-backend/http-server/generate-report/generate-excel"
	recordoutput "aqua-backend/http-server/output/record"
	upparameters "aqua-backend/http-server/parameters/update"
	planestimate "aqua-backend/http-server/planning/estimate"
	getplans "aqua-backend/http-server/plans/get"
	saveplan "aqua-backend/http-server/plans/save"
	delproject "aqua-backend/http-server/projects/del"
	getprojects "aqua-backend/http-server/projects/get"
	saveproject "aqua-backend/http-server/projects/save"
	getsteps "aqua-backend/http-server/steps/get"
	getstocks "aqua-backend/http-server/stocks/get"
	getworkers "aqua-backend/http-server/workers/get"
	saveworker "aqua-backend/http-server/workers/save"
	"aqua-backend/internal/config"
	"aqua-backend/internal/service/calculator"
	"aqua-backend/internal/service/production"
	"aqua-backend/internal/service/report"
	"aqua-backend/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage,
	productionService *production.Service, calculatorService *calculator.Service, reportService *report.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Step catalog with effective (override-merged) parameters.
	router.Get("/api/steps", getsteps.GetSteps(log, storage))
	router.Put("/api/parameters/{stepID}", upparameters.UpdateParameter(log, storage))

	// Projects and their per-step progress.
	router.Get("/api/projects", getprojects.GetProjects(log, storage))
	router.Get("/api/projects/{id}", getprojects.GetProject(log, storage))
	router.Post("/api/projects", saveproject.SaveProject(log, storage))
	router.Delete("/api/projects/{id}", delproject.DeleteProject(log, storage))

	// Shop-floor output recording: one atomic write across progress, stock
	// and the activity log.
	router.Post("/api/output", recordoutput.RecordOutput(log, productionService))

	// Daily planning wizard and saved plans.
	router.Post("/api/planning/estimate", planestimate.Estimate(log, storage))
	router.Post("/api/plans", saveplan.SavePlan(log, storage))
	router.Get("/api/plans", getplans.GetPlans(log, storage))

	// Global semi-finished stock ledger.
	router.Get("/api/stocks", getstocks.GetStocks(log, storage))

	// Worker roster and activity history.
	router.Get("/api/workers/all", getworkers.GetWorkers(log, storage))
	router.Post("/api/workers", saveworker.SaveWorker(log, storage))
	router.Get("/api/activity", getactivity.GetActivities(log, storage))

	// Reference calculator.
	router.Post("/api/calculator", calchandler.CalculateEstimates(log, calculatorService))

	// Excel export of the activity history.
	router.Get("/api/report/excel", generate_excel.GenerateActivityExcel(log, reportService))

	return router
}
