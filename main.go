package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusdesk/app/config"
	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/routes/announcements"
	"campusdesk/app/routes/attendance"
	"campusdesk/app/routes/auth"
	"campusdesk/app/routes/classes"
	"campusdesk/app/routes/dashboard"
	"campusdesk/app/routes/departments"
	"campusdesk/app/routes/events"
	"campusdesk/app/routes/exams"
	"campusdesk/app/routes/fees"
	"campusdesk/app/routes/homework"
	"campusdesk/app/routes/idcards"
	"campusdesk/app/routes/library"
	"campusdesk/app/routes/students"
	"campusdesk/app/routes/subjects"
	"campusdesk/app/routes/teachers"
	"campusdesk/app/routes/timetable"
	"campusdesk/app/routes/users"
	"campusdesk/app/services"
	"campusdesk/app/templates"
)

const shutdownTimeout = 10 * time.Second

// customErrorHandler renders the error pages, or JSON for clients that asked for it.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	var renderErr error
	switch code {
	case fiber.StatusNotFound:
		renderErr = c.Status(code).Render("errors/404", fiber.Map{
			"Title":       "Page Not Found - Campus Desk",
			"CurrentPage": "",
		})
	case fiber.StatusForbidden:
		renderErr = c.Status(code).Render("errors/error", fiber.Map{
			"Title":        "Access Forbidden - Campus Desk",
			"ErrorCode":    code,
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": err.Error(),
		})
	case fiber.StatusInternalServerError:
		renderErr = c.Status(code).Render("errors/error", fiber.Map{
			"Title":        "Server Error - Campus Desk",
			"ErrorCode":    code,
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		renderErr = c.Status(code).Render("errors/error", fiber.Map{
			"Title":        "Error - Campus Desk",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
	if renderErr != nil {
		logger.L().Error("render error page", zap.Error(renderErr))
		return c.Status(code).SendString(err.Error())
	}
	return nil
}

func newViews(cfg *config.Config) *html.Engine {
	var engine *html.Engine
	if cfg.TemplateReload {
		engine = html.New("./app/templates", ".html")
		engine.Reload(true)
	} else {
		engine = html.NewFileSystem(http.FS(templates.FS), ".html")
	}
	engine.AddFuncMap(helpers.TemplateFuncs())
	return engine
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		logger.Init(false)
		logger.L().Fatal("load config", zap.Error(err))
	}
	if _, err := logger.Init(cfg.IsProduction()); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	loc := cfg.Location()
	time.Local = loc
	log.Info("application time zone set", zap.String("timezone", loc.String()))

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	auth.Configure(cfg.SecretKey, cfg.IsProduction())
	helpers.ConfigureSessions(cfg.IsProduction())

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("create upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	scheduler, err := services.StartScheduler(db, cfg.OverdueSchedule, loc)
	if err != nil {
		log.Fatal("start scheduler", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		Views:             newViews(cfg),
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
		BodyLimit:         cfg.MaxUploadBytes(),
		JSONEncoder:       sonic.Marshal,
		JSONDecoder:       sonic.Unmarshal,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())
	app.Use(compress.New())

	app.Static("/uploads", cfg.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app, db)
	users.SetupUsersRoutes(app, db)
	dashboard.SetupDashboardRoutes(app, db)
	students.SetupStudentsRoutes(app, db)
	teachers.SetupTeachersRoutes(app, db)
	classes.SetupClassesRoutes(app, db)
	subjects.SetupSubjectsRoutes(app, db)
	departments.SetupDepartmentsRoutes(app, db)
	exams.SetupExamRoutes(app, db)
	attendance.SetupAttendanceRoutes(app, db)
	fees.SetupFeesRoutes(app, db)
	library.SetupLibraryRoutes(app, db)
	timetable.SetupTimetableRoutes(app, db)
	events.SetupEventsRoutes(app, db)
	announcements.SetupAnnouncementRoutes(app, db)
	homework.SetupHomeworkRoutes(app, db)
	idcards.SetupIDCardRoutes(app, db)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
