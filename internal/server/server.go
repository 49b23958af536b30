package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/solostack/mentordesk/internal/assistant"
	assistantdomain "github.com/solostack/mentordesk/internal/assistant/domain"
	"github.com/solostack/mentordesk/internal/call"
	calldomain "github.com/solostack/mentordesk/internal/call/domain"
	"github.com/solostack/mentordesk/internal/community"
	communitydomain "github.com/solostack/mentordesk/internal/community/domain"
	"github.com/solostack/mentordesk/internal/config"
	"github.com/solostack/mentordesk/internal/lead"
	leaddomain "github.com/solostack/mentordesk/internal/lead/domain"
	"github.com/solostack/mentordesk/internal/note"
	notedomain "github.com/solostack/mentordesk/internal/note/domain"
	"github.com/solostack/mentordesk/internal/observability"
	obsmiddleware "github.com/solostack/mentordesk/internal/observability/logger"
	obsmetrics "github.com/solostack/mentordesk/internal/observability/metrics"
	obstracing "github.com/solostack/mentordesk/internal/observability/tracing"
	"github.com/solostack/mentordesk/internal/overview"
	overviewdomain "github.com/solostack/mentordesk/internal/overview/domain"
	"github.com/solostack/mentordesk/internal/providers/blob"
	"github.com/solostack/mentordesk/internal/providers/chat"
	"github.com/solostack/mentordesk/internal/providers/pdf"
	"github.com/solostack/mentordesk/internal/ratelimit"
	"github.com/solostack/mentordesk/internal/revenue"
	revenuedomain "github.com/solostack/mentordesk/internal/revenue/domain"
	"github.com/solostack/mentordesk/internal/settings"
	settingsdomain "github.com/solostack/mentordesk/internal/settings/domain"
	"github.com/solostack/mentordesk/internal/student"
	studentdomain "github.com/solostack/mentordesk/internal/student/domain"
	"github.com/solostack/mentordesk/internal/task"
	taskdomain "github.com/solostack/mentordesk/internal/task/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	student.Module,
	lead.Module,
	task.Module,
	note.Module,
	call.Module,
	community.Module,
	settings.Module,
	revenue.Module,
	overview.Module,
	assistant.Module,
	pdf.Module,
	chat.Module,
	blob.Module,
	ratelimit.Module,
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB

	studentSvc   studentdomain.Service
	leadSvc      leaddomain.Service
	taskSvc      taskdomain.Service
	noteSvc      notedomain.Service
	callSvc      calldomain.Service
	communitySvc communitydomain.Service
	settingsSvc  settingsdomain.Service
	revenueSvc   revenuedomain.Service
	overviewSvc  overviewdomain.Service
	assistantSvc assistantdomain.Service

	uploads          blob.Provider
	assistantLimiter *ratelimit.AssistantLimiter
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config
	DB  *gorm.DB

	StudentSvc   studentdomain.Service
	LeadSvc      leaddomain.Service
	TaskSvc      taskdomain.Service
	NoteSvc      notedomain.Service
	CallSvc      calldomain.Service
	CommunitySvc communitydomain.Service
	SettingsSvc  settingsdomain.Service
	RevenueSvc   revenuedomain.Service
	OverviewSvc  overviewdomain.Service
	AssistantSvc assistantdomain.Service

	Uploads          blob.Provider
	AssistantLimiter *ratelimit.AssistantLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		db:               p.DB,
		studentSvc:       p.StudentSvc,
		leadSvc:          p.LeadSvc,
		taskSvc:          p.TaskSvc,
		noteSvc:          p.NoteSvc,
		callSvc:          p.CallSvc,
		communitySvc:     p.CommunitySvc,
		settingsSvc:      p.SettingsSvc,
		revenueSvc:       p.RevenueSvc,
		overviewSvc:      p.OverviewSvc,
		assistantSvc:     p.AssistantSvc,
		uploads:          p.Uploads,
		assistantLimiter: p.AssistantLimiter,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
	s.RegisterFileRoutes()
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Students --------
	api.GET("/students", s.ListStudents)
	api.POST("/students", s.CreateStudent)
	api.GET("/students/:id", s.GetStudentByID)
	api.PATCH("/students/:id", s.UpdateStudent)
	api.DELETE("/students/:id", s.DeleteStudent)
	api.POST("/students/:id/payments", s.RecordStudentPayment)
	api.GET("/students/:id/payments", s.ListStudentPayments)

	// -------- Leads --------
	api.GET("/leads", s.ListLeads)
	api.POST("/leads", s.CreateLead)
	api.GET("/leads/:id", s.GetLeadByID)
	api.PATCH("/leads/:id", s.UpdateLead)
	api.DELETE("/leads/:id", s.DeleteLead)
	api.POST("/leads/:id/move", s.MoveLead)

	// -------- Tasks --------
	api.GET("/tasks", s.ListTasks)
	api.POST("/tasks", s.CreateTask)
	api.PATCH("/tasks/:id", s.UpdateTask)
	api.DELETE("/tasks/:id", s.DeleteTask)
	api.POST("/tasks/:id/toggle", s.ToggleTask)

	// -------- Notes --------
	api.GET("/notes", s.ListNotes)
	api.POST("/notes", s.CreateNote)
	api.GET("/notes/:id", s.GetNoteByID)
	api.PATCH("/notes/:id", s.UpdateNote)
	api.DELETE("/notes/:id", s.DeleteNote)

	// -------- Calls --------
	api.GET("/calls", s.ListCalls)
	api.POST("/calls", s.CreateCall)
	api.PATCH("/calls/:id", s.UpdateCall)
	api.DELETE("/calls/:id", s.DeleteCall)

	// -------- Community --------
	api.GET("/community/annual-members", s.ListAnnualMembers)
	api.POST("/community/annual-members", s.CreateAnnualMember)
	api.DELETE("/community/annual-members/:id", s.DeleteAnnualMember)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)

	// -------- Revenue --------
	api.GET("/revenue/:month", s.GetRevenueBreakdown)
	api.PUT("/revenue/:month", s.UpsertMonthlyRevenue)
	api.GET("/revenue/:month/report.pdf", s.GetRevenueReport)

	// -------- Overview --------
	api.GET("/overview", s.GetOverview)

	// -------- Assistant --------
	api.POST("/assistant/chat", s.AssistantRateLimit(), s.AssistantChat)
	api.GET("/assistant/history", s.AssistantHistory)

	// -------- Uploads --------
	api.POST("/uploads", s.UploadFile)
}

func (s *Server) RegisterFileRoutes() {
	if s.cfg.UploadDir != "" {
		s.engine.Static("/files", s.cfg.UploadDir)
	}
}
