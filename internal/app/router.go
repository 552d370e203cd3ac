package app

import (
	"skillbloom_backend/internal/middleware"
	"skillbloom_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. pods：游客可以体验演示流程
	a.registerPodRoutes(router, c)

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config))
	{
		a.registerUserRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/assessment/personality/questions", c.assessment.PersonalityQuestions)
		public.GET("/assessment/skill/questions/:category", c.assessment.SkillQuestions)

		public.GET("/skill-pods/paths", c.skillPath.ListPaths)
	}
}

func (a *App) registerPodRoutes(router *gin.Engine, c *controllers) {
	pods := router.Group("/api/pods")
	{
		// 可选认证：未登录返回演示数据
		pods.POST("/enroll", middleware.TryAuthMiddleware(a.Config), c.pod.Enroll)
		pods.GET("/progress", middleware.TryAuthMiddleware(a.Config), c.pod.Progress)
		pods.POST("/update", middleware.TryAuthMiddleware(a.Config), c.pod.Update)
		pods.GET("/details/:pod_type", middleware.TryAuthMiddleware(a.Config), c.pod.Details)

		authorized := pods.Group("/")
		authorized.Use(middleware.AuthMiddleware(a.Config))
		{
			authorized.POST("/health/log", c.pod.LogHealth)
			authorized.GET("/health/log", c.pod.HealthLogs)
			authorized.POST("/mental/journal", c.pod.AddJournal)
			authorized.GET("/mental/journal", c.pod.Journal)
		}
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	// 用户资料
	rg.GET("/auth/profile", c.auth.GetProfile)
	rg.PUT("/auth/profile", c.auth.UpdateProfile)

	// 测评
	assessment := rg.Group("/assessment")
	{
		assessment.POST("/personality/submit", c.assessment.SubmitPersonality)
		assessment.POST("/skill/submit", c.assessment.SubmitSkill)
		assessment.GET("/results", c.assessment.Results)
		assessment.POST("/recommend", c.assessment.Recommend)
	}

	// AI 导师
	ai := rg.Group("/ai")
	{
		ai.POST("/chat", c.ai.Chat)
		ai.POST("/recommendation", c.ai.Recommendation)
		ai.GET("/history", c.ai.History)
	}

	// 技能路径
	skillPods := rg.Group("/skill-pods")
	{
		skillPods.POST("/enroll", c.skillPath.Enroll)
		skillPods.GET("/progress/:path_id", c.skillPath.Progress)
		skillPods.POST("/mentor/:path_id", c.skillPath.Mentor)
		skillPods.POST("/assessment/:path_id", c.skillPath.SubmitAssessment)
	}

	// 婴儿监护
	baby := rg.Group("/baby")
	{
		baby.GET("/current", c.baby.Current)
		baby.GET("/history", c.baby.History)
		baby.GET("/stats", c.baby.Stats)
		baby.GET("/profile", c.baby.GetProfile)
		baby.POST("/profile", c.baby.SaveProfile)
		baby.GET("/stream", c.baby.Stream)
	}
}
