package personnel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maskon/auth"
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

// BuildFilter turns list query parameters into a personnel filter.
// The location filter matches region or city; search covers name,
// specialization and email. When both are present they combine under
// $and since each is its own $or fan-out.
func BuildFilter(params url.Values) bson.M {
	query := bson.M{}
	if role := params.Get("role"); role != "" {
		query["role"] = role
	}
	if specialization := params.Get("specialization"); specialization != "" {
		query["specialization"] = bson.M{"$regex": specialization, "$options": "i"}
	}
	if verified := params.Get("isVerified"); verified != "" {
		if b, err := strconv.ParseBool(verified); err == nil {
			query["isVerified"] = b
		}
	}

	var clauses []bson.M
	if location := params.Get("location"); location != "" {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"location.region": bson.M{"$regex": location, "$options": "i"}},
			{"location.city": bson.M{"$regex": location, "$options": "i"}},
		}})
	}
	if search := params.Get("search"); search != "" {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"specialization": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}})
	}
	switch len(clauses) {
	case 1:
		query["$or"] = clauses[0]["$or"]
	case 2:
		query["$and"] = clauses
	}
	return query
}

func noPassword() *options.FindOneOptions {
	return options.FindOne().SetProjection(bson.M{"password": 0})
}

// GetPersonnel handles GET /api/v1/personnel. Results are ranked by
// rating, newest first within a tie, and never carry password hashes.
func GetPersonnel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := db.PersonnelCollection.Find(ctx, BuildFilter(r.URL.Query()), opts)
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	defer cursor.Close(ctx)

	var people []models.Personnel
	if err := cursor.All(ctx, &people); err != nil {
		utils.RespondServerError(w)
		return
	}
	if people == nil {
		people = []models.Personnel{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(people), "data": people})
}

// GetPerson handles GET /api/v1/personnel/:id.
func GetPerson(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var person models.Personnel
	if err := db.PersonnelCollection.FindOne(ctx, bson.M{"_id": id}, noPassword()).Decode(&person); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
			return
		}
		utils.RespondServerError(w)
		return
	}
	reviews.AttachReviewers(ctx, person.Reviews)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": person})
}

// CreatePerson handles POST /api/v1/personnel, the admin-only sibling
// of public registration. It answers with the created record rather
// than a token.
func CreatePerson(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload auth.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := auth.ValidateRegister(payload); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	count, err := db.PersonnelCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Personnel already exists")
		return
	}

	person, err := auth.CreatePersonnel(ctx, payload)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Personnel already exists")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("personnel-created", mq.Index{EntityType: "personnel", EntityId: person.ID.Hex(), Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": person})
}

// UpdatePerson handles PUT /api/v1/personnel/:id. Admins may update
// anyone; everybody else only their own record. Password, role and the
// derived review fields are not writable here.
func UpdatePerson(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		return
	}

	userID := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())
	if id.Hex() != userID && role != "admin" {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this personnel")
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
	delete(update, "password")
	delete(update, "rating")
	delete(update, "reviews")
	delete(update, "isVerified")
	if role != "admin" {
		delete(update, "role")
	}

	var errs []utils.FieldError
	if v, ok := update["email"]; ok {
		s, _ := v.(string)
		if !models.ValidEmail(s) {
			errs = append(errs, utils.FieldError{Field: "email", Message: "Please include a valid email"})
		} else {
			update["email"] = strings.ToLower(strings.TrimSpace(s))
		}
	}
	if v, ok := update["role"]; ok {
		if s, _ := v.(string); !models.ValidPersonnelRole(s) {
			errs = append(errs, utils.FieldError{Field: "role", Message: "Role is required"})
		}
	}
	if len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var person models.Personnel
	err = db.PersonnelCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0})).Decode(&person)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Personnel already exists")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("personnel-updated", mq.Index{EntityType: "personnel", EntityId: person.ID.Hex(), Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": person})
}

// DeletePerson handles DELETE /api/v1/personnel/:id. Admin only.
func DeletePerson(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.PersonnelCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		return
	}

	mq.Emit("personnel-deleted", mq.Index{EntityType: "personnel", EntityId: id.Hex(), Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": utils.M{}})
}

// VerifyPerson handles PUT /api/v1/personnel/:id/verify. Admin only.
func VerifyPerson(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var person models.Personnel
	err = db.PersonnelCollection.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0})).Decode(&person)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("personnel-verified", mq.Index{EntityType: "personnel", EntityId: person.ID.Hex(), Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": person})
}

// AddReview handles POST /api/v1/personnel/:id/reviews. One review per
// user, and nobody reviews themselves.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		return
	}

	userID, err := primitive.ObjectIDFromHex(utils.GetUserIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	if userID == id {
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot review yourself")
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

	var person models.Personnel
	err = reviews.Add(ctx, db.PersonnelCollection, id, userID, payload.Rating, payload.Comment, true, &person)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Personnel not found")
		case errors.Is(err, reviews.ErrDuplicate):
			utils.RespondWithError(w, http.StatusBadRequest, "Personnel already reviewed")
		default:
			utils.RespondServerError(w)
		}
		return
	}
	person.Password = ""
	reviews.AttachReviewers(ctx, person.Reviews)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": person})
}
