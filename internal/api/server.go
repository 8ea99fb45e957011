package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ignaguri/oktoberfest-attendance-sub000/docs"
	v1 "github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/middleware"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/config"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	festivalHandler := s.initFestivalHandler(db)
	consumptionHandler := s.initConsumptionHandler(db)
	attendanceHandler := s.initAttendanceHandler(db)
	locationHandler := s.initLocationHandler(db)
	groupHandler := s.initGroupHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	wrappedHandler := s.initWrappedHandler(db, redisClient)
	s.MountHandlers(
		authHandler,
		userHandler,
		festivalHandler,
		consumptionHandler,
		attendanceHandler,
		locationHandler,
		groupHandler,
		leaderboardHandler,
		wrappedHandler,
	)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)

	return v1.NewUserHandler(svc)
}

func (s *Server) initFestivalHandler(db *gorm.DB) *v1.FestivalHandler {
	repo := repository.NewFestivalRepository(dao.NewFestivalDAO(db))
	svc := service.NewFestivalService(repo)

	return v1.NewFestivalHandler(svc)
}

func (s *Server) initConsumptionHandler(db *gorm.DB) *v1.ConsumptionHandler {
	attendanceRepo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	festivalRepo := repository.NewFestivalRepository(dao.NewFestivalDAO(db))
	svc := service.NewConsumptionService(attendanceRepo, festivalRepo)

	return v1.NewConsumptionHandler(svc)
}

func (s *Server) initAttendanceHandler(db *gorm.DB) *v1.AttendanceHandler {
	repo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	svc := service.NewAttendanceService(repo)

	return v1.NewAttendanceHandler(svc)
}

func (s *Server) initLocationHandler(db *gorm.DB) *v1.LocationHandler {
	repo := repository.NewLocationRepository(dao.NewLocationDAO(db))
	svc := service.NewLocationService(repo)

	return v1.NewLocationHandler(svc)
}

func (s *Server) initGroupHandler(db *gorm.DB) *v1.GroupHandler {
	repo := repository.NewGroupRepository(dao.NewGroupDAO(db))
	svc := service.NewGroupService(repo)

	return v1.NewGroupHandler(svc)
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	repo := repository.NewLeaderboardRepository(dao.NewLeaderboardDAO(db))
	groupRepo := repository.NewGroupRepository(dao.NewGroupDAO(db))
	svc := service.NewLeaderboardService(repo, groupRepo)

	return v1.NewLeaderboardHandler(svc)
}

func (s *Server) initWrappedHandler(db *gorm.DB, redisClient *redis.Client) *v1.WrappedHandler {
	repo := repository.NewWrappedRepository(dao.NewWrappedDAO(db))
	svc := service.NewWrappedService(repo, redisClient)

	return v1.NewWrappedHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	festivalHandler *v1.FestivalHandler,
	consumptionHandler *v1.ConsumptionHandler,
	attendanceHandler *v1.AttendanceHandler,
	locationHandler *v1.LocationHandler,
	groupHandler *v1.GroupHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	wrappedHandler *v1.WrappedHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)

		authed.GET("/festivals", festivalHandler.HandleListFestivals)
		authed.GET("/festivals/:festivalID", festivalHandler.HandleGetFestival)
		authed.GET("/festivals/:festivalID/tents", festivalHandler.HandleListTents)
		authed.GET("/festivals/:festivalID/wrapped", wrappedHandler.HandleGetWrapped)

		authed.POST("/consumptions", consumptionHandler.HandleLogConsumption)

		authed.GET("/attendances", attendanceHandler.HandleListAttendances)
		authed.DELETE("/attendances/:attendanceID", attendanceHandler.HandleDeleteAttendance)

		authed.POST("/location/sessions", locationHandler.HandleStartSession)
		authed.DELETE("/location/sessions/:sessionID", locationHandler.HandleStopSession)
		authed.PUT("/location/sessions/:sessionID", locationHandler.HandleUpdateLocation)
		authed.GET("/location/nearby", locationHandler.HandleGetNearbyMembers)

		authed.POST("/groups", groupHandler.HandleCreateGroup)
		authed.POST("/groups/join", groupHandler.HandleJoinGroup)
		authed.GET("/groups", groupHandler.HandleListMyGroups)
		authed.GET("/groups/:groupID/members", groupHandler.HandleListGroupMembers)
		authed.GET("/groups/:groupID/leaderboard", leaderboardHandler.HandleGetGroupLeaderboard)

		authed.GET("/leaderboard", leaderboardHandler.HandleGetGlobalLeaderboard)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Festival Attendance API"
	docs.SwaggerInfo.Description = "Attendance, consumption and location tracking for beer festivals."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
