package app

import (
	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/docs"
	"github.com/samora254/KitabuNew/internal/config"
	"github.com/samora254/KitabuNew/internal/middleware"
	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/pkg/monitoring"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/user", c.auth.CurrentUser)

	rg.GET("/users/profile", c.user.Profile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)
	rg.GET("/leaderboard", c.user.Leaderboard)

	rg.GET("/subjects", c.content.ListSubjects)
	rg.GET("/subjects/:subjectId", c.content.GetSubject)
	rg.GET("/subjects/:subjectId/strands", c.content.GetStrands)
	rg.GET("/strands/:strandId/topics", c.content.GetTopics)

	rg.GET("/topics/:topicId/flashcards", c.flashcard.TopicFlashcards)
	rg.POST("/flashcards/:flashcardId/progress", c.flashcard.UpdateProgress)
	rg.POST("/topics/:topicId/generate-flashcards", c.flashcard.Generate)

	rg.GET("/topics/:topicId/quizzes", c.quiz.TopicQuizzes)
	rg.GET("/quizzes/:quizId", c.quiz.GetQuiz)
	rg.GET("/quizzes/:quizId/attempts", c.quiz.Attempts)
	rg.POST("/quizzes/:quizId/submit", c.quiz.Submit)
	rg.POST("/topics/:topicId/generate-quiz", c.quiz.Generate)
	rg.POST("/evaluate-answer", c.quiz.EvaluateAnswer)

	rg.GET("/topics/:topicId/homework", c.homework.ByTopic)
	rg.GET("/homework/active", c.homework.Active)
	rg.GET("/homework/:homeworkId", c.homework.Get)
	rg.POST("/homework/:homeworkId/submit", c.homework.Submit)

	rg.GET("/progress", c.progress.List)
	rg.GET("/progress/stats", c.progress.Stats)
	rg.GET("/progress/subjects/:subjectId", c.progress.BySubject)

	rg.GET("/chat/sessions", c.chat.ListSessions)
	rg.POST("/chat/sessions", c.chat.CreateSession)
	rg.GET("/chat/sessions/:sessionId", c.chat.GetSession)
	rg.POST("/chat/sessions/:sessionId/messages", c.chat.PostMessage)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/homework", c.homework.Create)
		teacher.POST("/homework/:homeworkId/grade", c.homework.Grade)
		teacher.GET("/homework/:homeworkId/submissions", c.homework.Submissions)
		teacher.POST("/homework/:homeworkId/attachment", c.homework.UploadAttachment)
	}
}
