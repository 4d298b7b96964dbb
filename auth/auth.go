package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type RegisterPayload struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Password       string          `json:"password"`
	PhoneNumber    string          `json:"phoneNumber"`
	Role           string          `json:"role"`
	Specialization string          `json:"specialization"`
	Experience     float64         `json:"experience"`
	Location       models.Location `json:"location"`
	ProfileImage   string          `json:"profileImage"`
}

func ValidateRegister(p RegisterPayload) []utils.FieldError {
	var errs []utils.FieldError
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, utils.FieldError{Field: "name", Message: "Name is required"})
	}
	if !models.ValidEmail(p.Email) {
		errs = append(errs, utils.FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if len(p.Password) < 6 {
		errs = append(errs, utils.FieldError{Field: "password", Message: "Please enter a password with 6 or more characters"})
	}
	if p.PhoneNumber == "" {
		errs = append(errs, utils.FieldError{Field: "phoneNumber", Message: "Phone number is required"})
	}
	if !models.ValidPersonnelRole(p.Role) {
		errs = append(errs, utils.FieldError{Field: "role", Message: "Role is required"})
	}
	if p.Specialization == "" {
		errs = append(errs, utils.FieldError{Field: "specialization", Message: "Specialization is required"})
	}
	if p.Experience <= 0 {
		errs = append(errs, utils.FieldError{Field: "experience", Message: "Experience is required"})
	}
	return errs
}

// CreatePersonnel inserts a personnel record with a hashed password.
// Shared by public registration and the admin personnel endpoint.
func CreatePersonnel(ctx context.Context, p RegisterPayload) (models.Personnel, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Personnel{}, err
	}

	now := time.Now()
	person := models.Personnel{
		Name:           strings.TrimSpace(p.Name),
		Email:          strings.ToLower(strings.TrimSpace(p.Email)),
		Password:       string(hashed),
		PhoneNumber:    p.PhoneNumber,
		Role:           p.Role,
		Specialization: p.Specialization,
		Experience:     p.Experience,
		Location:       p.Location,
		ProfileImage:   p.ProfileImage,
		Rating:         0,
		Reviews:        []models.Review{},
		IsVerified:     false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := db.PersonnelCollection.InsertOne(ctx, person)
	if err != nil {
		return models.Personnel{}, err
	}
	person.ID = res.InsertedID.(primitive.ObjectID)
	person.Password = ""
	return person, nil
}

// Register handles POST /api/v1/auth/register.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateRegister(payload); len(errs) > 0 {
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

	person, err := CreatePersonnel(ctx, payload)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Personnel already exists")
			return
		}
		utils.RespondServerError(w)
		return
	}

	token, err := GenerateToken(person.ID.Hex())
	if err != nil {
		utils.RespondServerError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "token": token})
}

// Login handles POST /api/v1/auth/login.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []utils.FieldError
	if !models.ValidEmail(payload.Email) {
		errs = append(errs, utils.FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if payload.Password == "" {
		errs = append(errs, utils.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var person models.Personnel
	err := db.PersonnelCollection.FindOne(ctx, bson.M{"email": strings.ToLower(payload.Email)}).Decode(&person)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(person.Password), []byte(payload.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := GenerateToken(person.ID.Hex())
	if err != nil {
		utils.RespondServerError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "token": token})
}

// Me handles GET /api/v1/auth/me. Requires Authenticate.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var person models.Personnel
	err = db.PersonnelCollection.FindOne(ctx, bson.M{"_id": objID},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&person)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": person})
}
