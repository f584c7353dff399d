package service

import (
	"context"
	"errors"
	"log"

	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
)

// DefaultCatalog is the exercise catalog a fresh installation starts with.
var DefaultCatalog = []domain.ExerciseInput{
	{Name: "ベンチプレス", BodyParts: []domain.BodyPart{domain.BodyPartChest}},
	{Name: "インクラインダンベルプレス", BodyParts: []domain.BodyPart{domain.BodyPartChest}},
	{Name: "ラットプルダウン", BodyParts: []domain.BodyPart{domain.BodyPartBack}},
	{Name: "スクワット", BodyParts: []domain.BodyPart{domain.BodyPartLegs}},
	{Name: "レッグプレス", BodyParts: []domain.BodyPart{domain.BodyPartLegs}},
	{Name: "ショルダープレス", BodyParts: []domain.BodyPart{domain.BodyPartShoulders}},
	{Name: "バイセップカール", BodyParts: []domain.BodyPart{domain.BodyPartArms}},
	{Name: "トライセップスプレスダウン", BodyParts: []domain.BodyPart{domain.BodyPartArms}},
	{Name: "カーフレイズ", BodyParts: []domain.BodyPart{domain.BodyPartCalves}},
	{Name: "クランチ", BodyParts: []domain.BodyPart{domain.BodyPartAbs}},
}

// SeedCatalog creates every catalog entry whose name is not taken yet and
// returns how many it created. Seeded entries have no creator.
func SeedCatalog(ctx context.Context, exercises ExerciseService, catalog []domain.ExerciseInput) (int, error) {
	created := 0
	for _, in := range catalog {
		_, err := exercises.CreateExercise(ctx, nil, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrDuplicateName):
			log.Printf("INFO: Exercise %q already present, skipping", in.Name)
		default:
			return created, err
		}
	}
	return created, nil
}
