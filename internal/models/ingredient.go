package models

// IngredientCategory represents the category of an ingredient.
type IngredientCategory string

const (
	CategoryProtein  IngredientCategory = "protein"
	CategoryProduce  IngredientCategory = "produce"
	CategoryDairy    IngredientCategory = "dairy"
	CategoryDryGoods IngredientCategory = "dry_goods"
	CategorySpices   IngredientCategory = "spices"
)

// Ingredient is a stocked item. Quantity never goes negative; it is only
// mutated through the purchase and consume operations.
type Ingredient struct {
	ID       string             `json:"id" yaml:"id"`
	Name     string             `json:"name" yaml:"name"`
	Category IngredientCategory `json:"category" yaml:"category"`
	Quantity int                `json:"quantity" yaml:"quantity"`
	Cost     float64            `json:"cost" yaml:"cost"`
}

// IngredientOption overrides a default field on a new Ingredient.
type IngredientOption func(*Ingredient)

func WithIngredientName(name string) IngredientOption {
	return func(i *Ingredient) { i.Name = name }
}

func InCategory(c IngredientCategory) IngredientOption {
	return func(i *Ingredient) { i.Category = c }
}

func WithQuantity(q int) IngredientOption {
	return func(i *Ingredient) { i.Quantity = q }
}

func WithCost(c float64) IngredientOption {
	return func(i *Ingredient) { i.Cost = c }
}

// NewIngredient creates an ingredient with the given id.
func NewIngredient(id string, opts ...IngredientOption) *Ingredient {
	i := &Ingredient{
		ID:       id,
		Name:     id,
		Category: CategoryProduce,
		Cost:     1,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
