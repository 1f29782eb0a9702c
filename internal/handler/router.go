package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"anchor/internal/middleware"
	"anchor/internal/service"
	"anchor/internal/store"
)

// NewRouter assembles the full API surface over a set of stores. Both
// cmd/server and the integration tests build their engine here.
func NewRouter(stores *store.Stores) *gin.Engine {
	authSvc := service.NewAuthService(stores.Users, stores.Caregivers)
	logSvc := service.NewCareLogService(stores.CareLogs, stores.Audit)
	familySvc := service.NewFamilyService(stores.Recipients, stores.Family)
	packSvc := service.NewPackListService(stores.PackLists)

	authH := NewAuthHandler(authSvc)
	logH := NewCareLogHandler(logSvc)
	familyH := NewFamilyHandler(familySvc, authSvc)
	packH := NewPackListHandler(packSvc)
	dashH := NewDashboardHandler(logSvc, familySvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/auth/signup", authH.Signup)
	r.POST("/api/auth/login", authH.Login)
	r.POST("/api/auth/caregiver/login", authH.CaregiverLogin)

	api := r.Group("/api", middleware.JWTAuth())

	api.POST("/care-logs", logH.Create)
	api.GET("/care-logs/caregiver/today", logH.TodayForCaregiver)
	api.GET("/care-logs/recipient/:id/today", logH.TodayForRecipient)
	api.GET("/care-logs/recipient/:id/week", logH.Week)
	api.PATCH("/care-logs/:id", logH.Patch)
	api.POST("/care-logs/:id/submit-section", logH.SubmitSection)
	api.GET("/care-logs/:id/history", logH.History)

	api.POST("/caregivers", familyH.CreateCaregiver)
	api.GET("/caregivers/:id", familyH.Caregiver)
	api.POST("/care-recipients", familyH.CreateRecipient)
	api.GET("/care-recipients/:id", familyH.Recipient)
	api.POST("/family-members", familyH.AddMember)
	api.GET("/family-members", familyH.Members)

	api.POST("/pack-lists", packH.Create)
	api.GET("/pack-lists", packH.List)
	api.PATCH("/pack-lists/:id/items/:itemID", packH.ToggleItem)

	api.GET("/dashboard/recipient/:id", dashH.Day)

	return r
}
