package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HerbUsage struct {
	Condition   string `bson:"condition"             json:"condition"`
	Preparation string `bson:"preparation"           json:"preparation"`
	Dosage      string `bson:"dosage"                json:"dosage"`
	Precautions string `bson:"precautions,omitempty" json:"precautions,omitempty"`
}

type Price struct {
	Amount float64 `bson:"amount" json:"amount"`
	Unit   string  `bson:"unit"   json:"unit"`
}

type Harvesting struct {
	Season        string   `bson:"season,omitempty"        json:"season,omitempty"`
	Method        string   `bson:"method,omitempty"        json:"method,omitempty"`
	BestPractices []string `bson:"bestPractices,omitempty" json:"bestPractices,omitempty"`
}

type Herb struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"               json:"id"`
	Name              string             `bson:"name"                        json:"name"`
	ScientificName    string             `bson:"scientificName,omitempty"    json:"scientificName,omitempty"`
	Description       string             `bson:"description"                 json:"description"`
	Benefits          []string           `bson:"benefits"                    json:"benefits"`
	Usages            []HerbUsage        `bson:"usages,omitempty"            json:"usages,omitempty"`
	SideEffects       []string           `bson:"sideEffects,omitempty"       json:"sideEffects,omitempty"`
	Contraindications []string           `bson:"contraindications,omitempty" json:"contraindications,omitempty"`
	Region            string             `bson:"region"                      json:"region"`
	Availability      string             `bson:"availability"                json:"availability"`
	Price             Price              `bson:"price"                       json:"price"`
	Image             string             `bson:"image,omitempty"             json:"image,omitempty"`
	Category          string             `bson:"category"                    json:"category"`
	Certifications    []Certification    `bson:"certifications,omitempty"    json:"certifications,omitempty"`
	Harvesting        Harvesting         `bson:"harvesting,omitempty"        json:"harvesting,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"                   json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"                   json:"updatedAt"`
}

var (
	HerbCategories     = []string{"medicinal", "culinary", "aromatic", "ceremonial"}
	HerbAvailabilities = []string{"in-stock", "out-of-stock", "seasonal"}
)

func ValidHerbCategory(c string) bool {
	for _, v := range HerbCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidHerbAvailability(a string) bool {
	for _, v := range HerbAvailabilities {
		if v == a {
			return true
		}
	}
	return false
}
