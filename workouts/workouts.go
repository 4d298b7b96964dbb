package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/mq"
	"maskon/reviews"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errBadTrainer = errors.New("trainer must be a valid id")

// BuildFilter turns list query parameters into a workouts filter.
// Search also reaches into the embedded exercise names.
func BuildFilter(params url.Values) (bson.M, error) {
	query := bson.M{}
	if workoutType := params.Get("type"); workoutType != "" {
		query["type"] = workoutType
	}
	if category := params.Get("category"); category != "" {
		query["category"] = category
	}
	if difficulty := params.Get("difficulty"); difficulty != "" {
		query["difficulty"] = difficulty
	}
	if trainer := params.Get("trainer"); trainer != "" {
		id, err := primitive.ObjectIDFromHex(trainer)
		if err != nil {
			return nil, errBadTrainer
		}
		query["trainer"] = id
	}
	if search := params.Get("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"exercises.name": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	return query, nil
}

func Validate(wk models.Workout) []utils.FieldError {
	var errs []utils.FieldError
	if strings.TrimSpace(wk.Name) == "" {
		errs = append(errs, utils.FieldError{Field: "name", Message: "Workout name is required"})
	}
	if wk.Description == "" {
		errs = append(errs, utils.FieldError{Field: "description", Message: "Description is required"})
	}
	if !models.ValidWorkoutType(wk.Type) {
		errs = append(errs, utils.FieldError{Field: "type", Message: "Type must be one of traditional, modern, hybrid"})
	}
	if !models.ValidWorkoutCategory(wk.Category) {
		errs = append(errs, utils.FieldError{Field: "category", Message: "Category must be one of strength, cardio, flexibility, balance, meditation"})
	}
	if !models.ValidWorkoutDifficulty(wk.Difficulty) {
		errs = append(errs, utils.FieldError{Field: "difficulty", Message: "Difficulty must be one of beginner, intermediate, advanced"})
	}
	if wk.Duration.Value <= 0 {
		errs = append(errs, utils.FieldError{Field: "duration.value", Message: "Duration must be a positive number"})
	}
	if len(wk.Exercises) == 0 {
		errs = append(errs, utils.FieldError{Field: "exercises", Message: "At least one exercise is required"})
	}
	for _, ex := range wk.Exercises {
		if ex.Name == "" || ex.Description == "" {
			errs = append(errs, utils.FieldError{Field: "exercises", Message: "Each exercise needs a name and description"})
			break
		}
	}
	if len(wk.Benefits) == 0 {
		errs = append(errs, utils.FieldError{Field: "benefits", Message: "Benefits are required"})
	}
	return errs
}

func ValidateUpdate(update bson.M) []utils.FieldError {
	var errs []utils.FieldError
	if v, ok := update["name"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			errs = append(errs, utils.FieldError{Field: "name", Message: "Workout name is required"})
		}
	}
	if v, ok := update["type"]; ok {
		if s, _ := v.(string); !models.ValidWorkoutType(s) {
			errs = append(errs, utils.FieldError{Field: "type", Message: "Type must be one of traditional, modern, hybrid"})
		}
	}
	if v, ok := update["category"]; ok {
		if s, _ := v.(string); !models.ValidWorkoutCategory(s) {
			errs = append(errs, utils.FieldError{Field: "category", Message: "Category must be one of strength, cardio, flexibility, balance, meditation"})
		}
	}
	if v, ok := update["difficulty"]; ok {
		if s, _ := v.(string); !models.ValidWorkoutDifficulty(s) {
			errs = append(errs, utils.FieldError{Field: "difficulty", Message: "Difficulty must be one of beginner, intermediate, advanced"})
		}
	}
	return errs
}

// trainerCard resolves one trainer reference to the thin card embedded
// in responses. Missing trainers are not an error; the card stays nil.
func trainerCard(ctx context.Context, id primitive.ObjectID) *models.TrainerCard {
	if id.IsZero() {
		return nil
	}
	var card models.TrainerCard
	err := db.PersonnelCollection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"name": 1, "specialization": 1, "rating": 1})).Decode(&card)
	if err != nil {
		return nil
	}
	return &card
}

// AttachTrainers resolves the trainer cards for a workout list with one
// personnel query instead of one per workout.
func AttachTrainers(ctx context.Context, workouts []models.Workout) {
	ids := make([]primitive.ObjectID, 0, len(workouts))
	seen := make(map[primitive.ObjectID]bool)
	for _, wk := range workouts {
		if !wk.Trainer.IsZero() && !seen[wk.Trainer] {
			seen[wk.Trainer] = true
			ids = append(ids, wk.Trainer)
		}
	}
	if len(ids) == 0 {
		return
	}

	cursor, err := db.PersonnelCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "specialization": 1, "rating": 1}))
	if err != nil {
		return
	}
	var cards []models.TrainerCard
	if err := cursor.All(ctx, &cards); err != nil {
		return
	}

	byID := make(map[primitive.ObjectID]*models.TrainerCard, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}
	for i := range workouts {
		workouts[i].TrainerInfo = byID[workouts[i].Trainer]
	}
}

// GetWorkouts handles GET /api/v1/workouts.
func GetWorkouts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := BuildFilter(r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.WorkoutsCollection.Find(ctx, filter, db.OptionsFindLatest(0))
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	defer cursor.Close(ctx)

	var workouts []models.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		utils.RespondServerError(w)
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	AttachTrainers(ctx, workouts)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(workouts), "data": workouts})
}

// GetWorkout handles GET /api/v1/workouts/:id.
func GetWorkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var workout models.Workout
	if err := db.WorkoutsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
			return
		}
		utils.RespondServerError(w)
		return
	}
	workout.TrainerInfo = trainerCard(ctx, workout.Trainer)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": workout})
}

// CreateWorkout handles POST /api/v1/workouts. The caller becomes the
// trainer unless an admin names somebody else in the payload.
func CreateWorkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := primitive.ObjectIDFromHex(utils.GetUserIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if workout.Trainer.IsZero() || utils.GetUserRoleFromContext(r.Context()) != "admin" {
		workout.Trainer = userID
	}

	if errs := Validate(workout); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	now := time.Now()
	workout.ID = primitive.NewObjectID()
	workout.Rating = 0
	workout.Reviews = []models.Review{}
	workout.TrainerInfo = nil
	workout.CreatedAt = now
	workout.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.WorkoutsCollection.InsertOne(ctx, workout); err != nil {
		utils.RespondServerError(w)
		return
	}
	workout.TrainerInfo = trainerCard(ctx, workout.Trainer)

	mq.Emit("workout-created", mq.Index{EntityType: "workout", EntityId: workout.ID.Hex(), Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": workout})
}

// ownedWorkout loads a workout and checks the caller may modify it:
// either the assigned trainer or an admin.
func ownedWorkout(ctx context.Context, r *http.Request, id primitive.ObjectID) (*models.Workout, int, string) {
	var workout models.Workout
	if err := db.WorkoutsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, http.StatusNotFound, "Workout not found"
		}
		return nil, http.StatusInternalServerError, ""
	}

	userID := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())
	if workout.Trainer.Hex() != userID && role != "admin" {
		return nil, http.StatusForbidden, ""
	}
	return &workout, 0, ""
}

// UpdateWorkout handles PUT /api/v1/workouts/:id. Only the assigned
// trainer or an admin may update.
func UpdateWorkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, status, msg := ownedWorkout(ctx, r, id); status != 0 {
		switch status {
		case http.StatusForbidden:
			utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this workout")
		case http.StatusNotFound:
			utils.RespondWithError(w, http.StatusNotFound, msg)
		default:
			utils.RespondServerError(w)
		}
		return
	}

	var update bson.M
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdAt")
	delete(update, "updatedAt")
	delete(update, "rating")
	delete(update, "reviews")
	delete(update, "trainer")
	delete(update, "trainerInfo")

	if errs := ValidateUpdate(update); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}
	update["updatedAt"] = time.Now()

	var workout models.Workout
	err = db.WorkoutsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&workout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
			return
		}
		utils.RespondServerError(w)
		return
	}
	workout.TrainerInfo = trainerCard(ctx, workout.Trainer)

	mq.Emit("workout-updated", mq.Index{EntityType: "workout", EntityId: workout.ID.Hex(), Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": workout})
}

// DeleteWorkout handles DELETE /api/v1/workouts/:id. Only the assigned
// trainer or an admin may delete.
func DeleteWorkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, status, msg := ownedWorkout(ctx, r, id); status != 0 {
		switch status {
		case http.StatusForbidden:
			utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this workout")
		case http.StatusNotFound:
			utils.RespondWithError(w, http.StatusNotFound, msg)
		default:
			utils.RespondServerError(w)
		}
		return
	}

	if _, err := db.WorkoutsCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondServerError(w)
		return
	}

	mq.Emit("workout-deleted", mq.Index{EntityType: "workout", EntityId: id.Hex(), Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": utils.M{}})
}

// AddReview handles POST /api/v1/workouts/:id/reviews. One review per
// user per workout.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
		return
	}

	userID, err := primitive.ObjectIDFromHex(utils.GetUserIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := reviews.Validate(payload.Rating, payload.Comment); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var workout models.Workout
	err = reviews.Add(ctx, db.WorkoutsCollection, id, userID, payload.Rating, payload.Comment, true, &workout)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Workout not found")
		case errors.Is(err, reviews.ErrDuplicate):
			utils.RespondWithError(w, http.StatusBadRequest, "Workout already reviewed")
		default:
			utils.RespondServerError(w)
		}
		return
	}
	workout.TrainerInfo = trainerCard(ctx, workout.Trainer)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": workout})
}
