package domain

import "time"

// BodyPart is the closed set of muscle groups an exercise can target.
type BodyPart string

const (
	BodyPartChest     BodyPart = "CHEST"
	BodyPartBack      BodyPart = "BACK"
	BodyPartLegs      BodyPart = "LEGS"
	BodyPartAbs       BodyPart = "ABS"
	BodyPartArms      BodyPart = "ARMS"
	BodyPartShoulders BodyPart = "SHOULDERS"
	BodyPartForearms  BodyPart = "FOREARMS"
	BodyPartCalves    BodyPart = "CALVES"
	BodyPartOther     BodyPart = "OTHER"
)

// BodyParts lists every recognized BodyPart in display order.
var BodyParts = []BodyPart{
	BodyPartChest,
	BodyPartBack,
	BodyPartLegs,
	BodyPartAbs,
	BodyPartArms,
	BodyPartShoulders,
	BodyPartForearms,
	BodyPartCalves,
	BodyPartOther,
}

// Valid reports whether b is one of the recognized body parts.
func (b BodyPart) Valid() bool {
	for _, p := range BodyParts {
		if p == b {
			return true
		}
	}
	return false
}

// Exercise is a catalog entry. Names are unique across the catalog and
// entries are never updated or deleted once created.
type Exercise struct {
	ID        string     `bson:"_id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	BodyParts []BodyPart `bson:"bodyParts" json:"bodyParts"`
	CreatedBy *string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"` // nil for seeded entries
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// ExerciseInput is a validated request to create an exercise.
type ExerciseInput struct {
	Name      string
	BodyParts []BodyPart
}
