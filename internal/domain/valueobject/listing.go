package valueobject

import "github.com/skillswap/skillswap-backend/internal/pkg/apperror"

// Category закрытый список категорий объявлений.
type Category string

const (
	CategoryProgramming Category = "Programming"
	CategoryDesign      Category = "Design"
	CategoryLanguages   Category = "Languages"
	CategoryMusic       Category = "Music"
	CategoryCooking     Category = "Cooking"
	CategoryPhotography Category = "Photography"
	CategoryWriting     Category = "Writing"
	CategoryMarketing   Category = "Marketing"
	CategoryBusiness    Category = "Business"
	CategoryFitness     Category = "Fitness"
	CategoryCrafts      Category = "Crafts"
	CategoryOther       Category = "Other"
)

var categories = []Category{
	CategoryProgramming, CategoryDesign, CategoryLanguages, CategoryMusic,
	CategoryCooking, CategoryPhotography, CategoryWriting, CategoryMarketing,
	CategoryBusiness, CategoryFitness, CategoryCrafts, CategoryOther,
}

// Categories возвращает все допустимые категории.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func NewCategory(category string) (Category, error) {
	c := Category(category)
	if !c.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "Invalid category")
	}
	return c, nil
}

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

func NewLevel(level string) (Level, error) {
	l := Level(level)
	if !l.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "Invalid level")
	}
	return l, nil
}
