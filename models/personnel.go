package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	Region  string `bson:"region,omitempty"  json:"region,omitempty"`
	City    string `bson:"city,omitempty"    json:"city,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type TimeSlot struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime"   json:"endTime"`
}

type Availability struct {
	Day   string     `bson:"day"   json:"day"`
	Slots []TimeSlot `bson:"slots" json:"slots"`
}

// Personnel is the identity record behind authentication. The password
// hash is tagged json:"-" so it can never leak through a response; read
// paths additionally strip it at the query level.
type Personnel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"            json:"id"`
	Name           string             `bson:"name"                     json:"name"`
	Email          string             `bson:"email"                    json:"email"`
	Password       string             `bson:"password,omitempty"       json:"-"`
	PhoneNumber    string             `bson:"phoneNumber"              json:"phoneNumber"`
	Role           string             `bson:"role"                     json:"role"`
	Specialization string             `bson:"specialization"           json:"specialization"`
	Certifications []Certification    `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Experience     float64            `bson:"experience"               json:"experience"`
	Location       Location           `bson:"location,omitempty"       json:"location,omitempty"`
	Availability   []Availability     `bson:"availability,omitempty"   json:"availability,omitempty"`
	Rating         float64            `bson:"rating"                   json:"rating"`
	Reviews        []Review           `bson:"reviews"                  json:"reviews"`
	IsVerified     bool               `bson:"isVerified"               json:"isVerified"`
	ProfileImage   string             `bson:"profileImage,omitempty"   json:"profileImage,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"                json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"                json:"updatedAt"`
}

var PersonnelRoles = []string{"traditional-healer", "nutritionist", "fitness-trainer", "admin"}

func ValidPersonnelRole(r string) bool {
	for _, v := range PersonnelRoles {
		if v == r {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func ValidEmail(e string) bool {
	return emailPattern.MatchString(e)
}
