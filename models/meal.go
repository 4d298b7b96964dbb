package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ingredient struct {
	Name             string `bson:"name"                       json:"name"`
	Quantity         string `bson:"quantity"                   json:"quantity"`
	NutritionalValue string `bson:"nutritionalValue,omitempty" json:"nutritionalValue,omitempty"`
}

type MealNutrition struct {
	Calories      float64 `bson:"calories,omitempty"      json:"calories,omitempty"`
	Protein       float64 `bson:"protein,omitempty"       json:"protein,omitempty"`
	Carbohydrates float64 `bson:"carbohydrates,omitempty" json:"carbohydrates,omitempty"`
	Fats          float64 `bson:"fats,omitempty"          json:"fats,omitempty"`
	Fiber         float64 `bson:"fiber,omitempty"         json:"fiber,omitempty"`
}

type Meal struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"             json:"id"`
	Name             string             `bson:"name"                      json:"name"`
	Description      string             `bson:"description"               json:"description"`
	Ingredients      []Ingredient       `bson:"ingredients"               json:"ingredients"`
	PreparationSteps []string           `bson:"preparationSteps"          json:"preparationSteps"`
	NutritionalInfo  MealNutrition      `bson:"nutritionalInfo,omitempty" json:"nutritionalInfo,omitempty"`
	Category         string             `bson:"category"                  json:"category"`
	Region           string             `bson:"region"                    json:"region"`
	HealthBenefits   []string           `bson:"healthBenefits,omitempty"  json:"healthBenefits,omitempty"`
	Image            string             `bson:"image,omitempty"           json:"image,omitempty"`
	PreparationTime  float64            `bson:"preparationTime"           json:"preparationTime"`
	ServingSize      float64            `bson:"servingSize"               json:"servingSize"`
	CreatedAt        time.Time          `bson:"createdAt"                 json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"                 json:"updatedAt"`
}

var MealCategories = []string{"breakfast", "lunch", "dinner", "snack"}

func ValidMealCategory(c string) bool {
	for _, v := range MealCategories {
		if v == c {
			return true
		}
	}
	return false
}
