package meals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/mq"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildFilter turns list query parameters into a meals filter.
// Search is a case-insensitive substring match on name and description.
func BuildFilter(params url.Values) bson.M {
	query := bson.M{}
	if category := params.Get("category"); category != "" {
		query["category"] = category
	}
	if region := params.Get("region"); region != "" {
		query["region"] = region
	}
	if search := params.Get("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	return query
}

func Validate(m models.Meal) []utils.FieldError {
	var errs []utils.FieldError
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, utils.FieldError{Field: "name", Message: "Meal name is required"})
	}
	if m.Description == "" {
		errs = append(errs, utils.FieldError{Field: "description", Message: "Meal description is required"})
	}
	if len(m.Ingredients) == 0 {
		errs = append(errs, utils.FieldError{Field: "ingredients", Message: "Ingredients are required"})
	}
	if len(m.PreparationSteps) == 0 {
		errs = append(errs, utils.FieldError{Field: "preparationSteps", Message: "Preparation steps are required"})
	}
	if !models.ValidMealCategory(m.Category) {
		errs = append(errs, utils.FieldError{Field: "category", Message: "Category must be one of breakfast, lunch, dinner, snack"})
	}
	if m.Region == "" {
		errs = append(errs, utils.FieldError{Field: "region", Message: "Region is required"})
	}
	if m.PreparationTime <= 0 {
		errs = append(errs, utils.FieldError{Field: "preparationTime", Message: "Preparation time must be a positive number"})
	}
	if m.ServingSize <= 0 {
		errs = append(errs, utils.FieldError{Field: "servingSize", Message: "Serving size must be a positive number"})
	}
	return errs
}

// ValidateUpdate re-checks only the fields present in a partial payload.
func ValidateUpdate(update bson.M) []utils.FieldError {
	var errs []utils.FieldError
	if v, ok := update["name"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			errs = append(errs, utils.FieldError{Field: "name", Message: "Meal name is required"})
		}
	}
	if v, ok := update["category"]; ok {
		if s, _ := v.(string); !models.ValidMealCategory(s) {
			errs = append(errs, utils.FieldError{Field: "category", Message: "Category must be one of breakfast, lunch, dinner, snack"})
		}
	}
	if v, ok := update["preparationTime"]; ok {
		if f, _ := v.(float64); f <= 0 {
			errs = append(errs, utils.FieldError{Field: "preparationTime", Message: "Preparation time must be a positive number"})
		}
	}
	if v, ok := update["servingSize"]; ok {
		if f, _ := v.(float64); f <= 0 {
			errs = append(errs, utils.FieldError{Field: "servingSize", Message: "Serving size must be a positive number"})
		}
	}
	return errs
}

// GetMeals handles GET /api/v1/meals.
func GetMeals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.MealsCollection.Find(ctx, BuildFilter(r.URL.Query()), db.OptionsFindLatest(0))
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	defer cursor.Close(ctx)

	var meals []models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		utils.RespondServerError(w)
		return
	}
	if meals == nil {
		meals = []models.Meal{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(meals), "data": meals})
}

// GetMeal handles GET /api/v1/meals/:id. A malformed id and an absent
// document both answer 404.
func GetMeal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Meal not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var meal models.Meal
	if err := db.MealsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.RespondServerError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": meal})
}

// CreateMeal handles POST /api/v1/meals.
func CreateMeal(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := Validate(meal); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	now := time.Now()
	meal.ID = primitive.NewObjectID()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.MealsCollection.InsertOne(ctx, meal); err != nil {
		utils.RespondServerError(w)
		return
	}

	mq.Emit("meal-created", mq.Index{EntityType: "meal", EntityId: meal.ID.Hex(), Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": meal})
}

// UpdateMeal handles PUT /api/v1/meals/:id as a partial update.
func UpdateMeal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Meal not found")
		return
	}

	var update bson.M
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	stripImmutable(update)

	if errs := ValidateUpdate(update); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var meal models.Meal
	err = db.MealsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("meal-updated", mq.Index{EntityType: "meal", EntityId: meal.ID.Hex(), Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": meal})
}

// DeleteMeal handles DELETE /api/v1/meals/:id.
func DeleteMeal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Meal not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.MealsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Meal not found")
		return
	}

	mq.Emit("meal-deleted", mq.Index{EntityType: "meal", EntityId: id.Hex(), Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": utils.M{}})
}

func stripImmutable(update bson.M) {
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdAt")
	delete(update, "updatedAt")
}
