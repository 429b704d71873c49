package models

// StepAction represents a cooking technique applied in a recipe step.
type StepAction string

const (
	ActionChop  StepAction = "chop"
	ActionSlice StepAction = "slice"
	ActionMix   StepAction = "mix"
	ActionFry   StepAction = "fry"
	ActionBake  StepAction = "bake"
	ActionGrill StepAction = "grill"
	ActionBoil  StepAction = "boil"
	ActionPlate StepAction = "plate"
)

// CookingStep is one ordered step of a recipe. Steps must be processed in
// sequence per order; a step cannot start before the previous one completed.
type CookingStep struct {
	IngredientIDs []string   `json:"ingredientIds" yaml:"ingredient_ids"`
	EquipmentType StationType `json:"equipmentType" yaml:"equipment_type"`
	Duration      float64    `json:"duration" yaml:"duration"`
	Action        StepAction `json:"action" yaml:"action"`
}

// Recipe holds the ordered steps that produce a dish.
type Recipe struct {
	Steps []CookingStep `json:"steps" yaml:"steps"`
}

// RequiredIngredients returns the distinct ingredient ids the recipe needs,
// in first-use order.
func (r Recipe) RequiredIngredients() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, step := range r.Steps {
		for _, id := range step.IngredientIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Dish is a menu item backed by a recipe.
type Dish struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	BasePrice float64 `json:"basePrice" yaml:"base_price"`
	Recipe    Recipe  `json:"recipe" yaml:"recipe"`
}

// DishOption overrides a default field on a new Dish.
type DishOption func(*Dish)

func WithDishName(name string) DishOption {
	return func(d *Dish) { d.Name = name }
}

func WithBasePrice(p float64) DishOption {
	return func(d *Dish) { d.BasePrice = p }
}

func WithRecipe(r Recipe) DishOption {
	return func(d *Dish) { d.Recipe = r }
}

// NewDish creates a dish with the given id.
func NewDish(id string, opts ...DishOption) *Dish {
	d := &Dish{
		ID:        id,
		Name:      id,
		BasePrice: 10,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
