package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"go-buffercalc/chem"
	"go-buffercalc/controllers"
	"go-buffercalc/middleware"
	"go-buffercalc/phreeqc"
)

// SetupRouter 配置所有路由
func SetupRouter(db *sql.DB, solver phreeqc.Solver) *gin.Engine {
	r := gin.Default()

	// 创建控制器实例
	bufferController := controllers.NewBufferController(chem.NewCalculator(), solver)
	authController := controllers.NewAuthController(db)
	historyController := controllers.NewHistoryController(db)

	// 公共路由
	public := r.Group("/")
	{
		// 用户认证相关路由
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)

		// 配方与滴定计算路由
		public.POST("/recipe", bufferController.Recipe)
		public.POST("/calculate", bufferController.Calculate)

		// 求解器输入/输出核对与诊断路由
		public.GET("/show_input", bufferController.ShowInput)
		public.GET("/show_output", bufferController.ShowOutput)
		public.GET("/debug", bufferController.Debug)
	}

	// 需要认证的路由
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		// 计算记录相关路由
		protected.POST("/buffer/save", historyController.SaveRecord)
		protected.GET("/buffer/records", historyController.GetRecords)
		protected.GET("/buffer/record", historyController.GetRecord)
	}

	return r
}
