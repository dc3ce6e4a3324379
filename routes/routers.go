package routes

import (
	"net/http"

	"fupa/config"
	"fupa/constants"
	"fupa/controllers"
	middlewares "fupa/middleware"
	"fupa/services"
	"fupa/services/notification"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(app *config.App, svc *Services) {
	router := app.Router
	secret := app.Settings.AccessSecret

	router.Use(middlewares.SessionMiddleware(), middlewares.RequestLogger(), middlewares.ErrorHandler())

	authController := controllers.NewAuthController(svc.Auth)
	userController := controllers.NewUserController(svc.Users)
	attendanceController := controllers.NewAttendanceController(svc.Attendance, svc.Users)
	uploadController := controllers.NewUploadController(svc.Media)
	overrideController := controllers.NewOverrideController(svc.Overrides)
	announcementController := controllers.NewAnnouncementController(svc.Announcements)
	notificationController := controllers.NewNotificationController(svc.Notifications)
	shellController := controllers.NewShellController(svc.Shell, svc.ShellManifest)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.LoginWithGoogle)

	user := v1.Group("", middlewares.AuthMiddleware(secret))
	user.GET("/profile", userController.GetProfile)
	user.PUT("/profile", userController.UpdateProfile)
	user.POST("/img/upload", uploadController.UploadPhoto)

	user.POST("/attendance", attendanceController.Submit)
	user.GET("/attendance/me", attendanceController.Mine)
	user.GET("/attendance/evaluate", attendanceController.Evaluate)

	user.GET("/overrides", overrideController.List)
	user.GET("/overrides/date/:date", overrideController.ForDate)
	user.GET("/announcements", announcementController.List)

	user.GET("/notifications", notificationController.Mine)
	user.PUT("/notifications/:id/read", notificationController.MarkRead)
	user.DELETE("/notifications/:id", notificationController.Delete)

	admin := v1.Group("/admin", middlewares.AuthMiddleware(secret, constants.RoleAdmin))
	admin.GET("/attendance", attendanceController.AdminList)
	admin.GET("/attendance/export", attendanceController.Export)
	admin.DELETE("/attendance/:id", attendanceController.Delete)
	admin.PUT("/attendance/:id/note", attendanceController.SetNote)

	admin.POST("/employees", authController.CreateEmployee)
	admin.GET("/employees", userController.ListEmployees)
	admin.GET("/employees/search", userController.SearchEmployees)

	admin.POST("/overrides", overrideController.Create)
	admin.DELETE("/overrides/:id", overrideController.Delete)
	admin.POST("/announcements", announcementController.Create)
	admin.DELETE("/announcements/:id", announcementController.Delete)
	admin.POST("/notifications", notificationController.Push)

	admin.POST("/shell/install", shellController.Install)
	admin.GET("/shell", shellController.Status)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// ws
	router.GET("/ws", func(c *gin.Context) {
		info, err := services.GetUserFromToken(secret, middlewares.BearerToken(c))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		keys := map[string]interface{}{notification.SessionUserKey: info.UserID}
		if err := app.Melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			app.Logger.Error("websocket %s: %v", info.UserID, err)
		}
	})

	// everything else is the PWA, served through the shell cache
	router.NoRoute(gin.WrapH(svc.Shell))
}
