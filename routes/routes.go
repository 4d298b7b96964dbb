package routes

import (
	"net/http"

	"maskon/auth"
	"maskon/herbs"
	"maskon/honey"
	"maskon/meals"
	"maskon/middleware"
	"maskon/personnel"
	"maskon/ratelim"
	"maskon/search"
	"maskon/utils"
	"maskon/workouts"

	"github.com/julienschmidt/httprouter"
)

// NewRouter assembles the full route table. Write access follows role:
// content resources take admin plus the matching specialist role, and
// personnel administration is admin only.
func NewRouter(rl *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(notFound)

	AddAuthRoutes(router, rl)
	AddMealRoutes(router)
	AddHerbRoutes(router)
	AddHoneyRoutes(router)
	AddWorkoutRoutes(router)
	AddPersonnelRoutes(router)
	AddSearchRoutes(router)
	AddUploadRoutes(router)
	AddStaticRoutes(router)

	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "ok"})
	})

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, http.StatusNotFound, "Route "+r.URL.Path+" not found")
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", rl.LimitAuth(auth.Register))
	router.POST("/api/v1/auth/login", rl.LimitAuth(auth.Login))
	router.GET("/api/v1/auth/me", middleware.Authenticate(auth.Me))
}

func AddMealRoutes(router *httprouter.Router) {
	router.GET("/api/v1/meals", meals.GetMeals)
	router.GET("/api/v1/meals/:id", meals.GetMeal)
	router.POST("/api/v1/meals", middleware.Authenticate(middleware.Authorize(meals.CreateMeal, "admin", "nutritionist")))
	router.PUT("/api/v1/meals/:id", middleware.Authenticate(middleware.Authorize(meals.UpdateMeal, "admin", "nutritionist")))
	router.DELETE("/api/v1/meals/:id", middleware.Authenticate(middleware.Authorize(meals.DeleteMeal, "admin")))
}

func AddHerbRoutes(router *httprouter.Router) {
	router.GET("/api/v1/herbs", herbs.GetHerbs)
	router.GET("/api/v1/herbs/:id", herbs.GetHerb)
	router.POST("/api/v1/herbs", middleware.Authenticate(middleware.Authorize(herbs.CreateHerb, "admin", "traditional-healer")))
	router.PUT("/api/v1/herbs/:id", middleware.Authenticate(middleware.Authorize(herbs.UpdateHerb, "admin", "traditional-healer")))
	router.DELETE("/api/v1/herbs/:id", middleware.Authenticate(middleware.Authorize(herbs.DeleteHerb, "admin")))
}

func AddHoneyRoutes(router *httprouter.Router) {
	router.GET("/api/v1/honey", honey.GetHoney)
	router.GET("/api/v1/honey/:id", honey.GetHoneyByID)
	router.POST("/api/v1/honey", middleware.Authenticate(middleware.Authorize(honey.CreateHoney, "admin", "traditional-healer")))
	router.PUT("/api/v1/honey/:id", middleware.Authenticate(middleware.Authorize(honey.UpdateHoney, "admin", "traditional-healer")))
	router.DELETE("/api/v1/honey/:id", middleware.Authenticate(middleware.Authorize(honey.DeleteHoney, "admin")))
	router.POST("/api/v1/honey/:id/reviews", middleware.Authenticate(honey.AddReview))
}

func AddWorkoutRoutes(router *httprouter.Router) {
	router.GET("/api/v1/workouts", workouts.GetWorkouts)
	router.GET("/api/v1/workouts/:id", workouts.GetWorkout)
	router.POST("/api/v1/workouts", middleware.Authenticate(middleware.Authorize(workouts.CreateWorkout, "admin", "fitness-trainer")))
	router.PUT("/api/v1/workouts/:id", middleware.Authenticate(workouts.UpdateWorkout))
	router.DELETE("/api/v1/workouts/:id", middleware.Authenticate(workouts.DeleteWorkout))
	router.POST("/api/v1/workouts/:id/reviews", middleware.Authenticate(workouts.AddReview))
}

func AddPersonnelRoutes(router *httprouter.Router) {
	router.GET("/api/v1/personnel", middleware.Authenticate(middleware.Authorize(personnel.GetPersonnel, "admin")))
	router.GET("/api/v1/personnel/:id", middleware.Authenticate(middleware.Authorize(personnel.GetPerson, "admin")))
	router.POST("/api/v1/personnel", middleware.Authenticate(middleware.Authorize(personnel.CreatePerson, "admin")))
	router.PUT("/api/v1/personnel/:id", middleware.Authenticate(personnel.UpdatePerson))
	router.DELETE("/api/v1/personnel/:id", middleware.Authenticate(middleware.Authorize(personnel.DeletePerson, "admin")))
	router.PUT("/api/v1/personnel/:id/verify", middleware.Authenticate(middleware.Authorize(personnel.VerifyPerson, "admin")))
	router.POST("/api/v1/personnel/:id/reviews", middleware.Authenticate(personnel.AddReview))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/v1/search", search.GlobalSearch)
	router.POST("/api/v1/search/advanced", search.AdvancedSearch)
}

func AddUploadRoutes(router *httprouter.Router) {
	router.POST("/api/v1/upload/images", middleware.Authenticate(uploadImages))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir("public/uploads"))
}
