package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"maskon/auth"
	"maskon/db"
	"maskon/globals"
	"maskon/models"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// resolveIdentity verifies the token and loads the personnel record it
// names. Any failure collapses to an unauthorized result.
func resolveIdentity(r *http.Request) (models.Personnel, bool) {
	token := bearerToken(r)
	if token == "" {
		return models.Personnel{}, false
	}

	userID, err := auth.ParseToken(token)
	if err != nil {
		return models.Personnel{}, false
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Personnel{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var person models.Personnel
	err = db.PersonnelCollection.FindOne(ctx, bson.M{"_id": objID},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&person)
	if err != nil {
		return models.Personnel{}, false
	}
	return person, true
}

func withIdentity(r *http.Request, person models.Personnel) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, person.ID.Hex())
	ctx = context.WithValue(ctx, globals.UserRoleKey, person.Role)
	return r.WithContext(ctx)
}

// Authenticate rejects requests without a valid bearer token that
// resolves to an existing personnel record.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if bearerToken(r) == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		person, ok := resolveIdentity(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		next(w, withIdentity(r, person), ps)
	}
}

// Authorize runs after Authenticate and rejects identities whose role
// is outside the allowed set.
func Authorize(next httprouter.Handle, roles ...string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role := utils.GetUserRoleFromContext(r.Context())
		for _, allowed := range roles {
			if role == allowed {
				next(w, r, ps)
				return
			}
		}
		utils.RespondWithError(w, http.StatusForbidden,
			fmt.Sprintf("User role %s is not authorized to access this route", role))
	}
}
