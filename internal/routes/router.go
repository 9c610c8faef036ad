// internal/routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/00jmdc-SysEng/Attendance/internal/handlers"
	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
	"github.com/00jmdc-SysEng/Attendance/internal/middleware"
)

func NewRouter(db *gorm.DB, svc *ledger.Service, store ledger.Store, jwtSecret string) *gin.Engine {
	r := gin.Default()

	authH := handlers.NewAuthHandler(db, jwtSecret)
	attH := handlers.NewAttendanceHandler(svc)
	adminH := handlers.NewAdminHandler(db, svc, store)

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		api.POST("/register", authH.Register)
		api.POST("/login", authH.Login)
		api.POST("/admin/login", authH.AdminLogin)
		api.POST("/auth/totp/verify", authH.TOTPVerify)
		api.GET("/server-time", attH.ServerTime)
	}

	me := r.Group("/api")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.POST("/clock-in", attH.ClockIn)
		me.POST("/clock-out", attH.ClockOut)
		me.POST("/file-leave", attH.FileLeave)
		me.GET("/logs", attH.MyLogs)
		me.GET("/calendar/:year/:month", attH.Calendar)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.RequireAdmin())
	{
		admin.POST("/totp/setup", authH.TOTPSetup)
		admin.GET("/employees", adminH.ListEmployees)
		admin.PUT("/employees/:id", adminH.UpdateEmployee)
		admin.DELETE("/employees/:id", adminH.DeleteEmployee)
		admin.GET("/overview", adminH.Overview)
		admin.GET("/attendance-logs", adminH.AttendanceLogs)
		admin.GET("/leaves", adminH.Leaves)
		admin.POST("/export/attendance", adminH.ExportAttendance)
		admin.POST("/export/leaves", adminH.ExportLeaves)
		admin.POST("/reports/dtr", adminH.DTRReport)
	}

	return r
}
