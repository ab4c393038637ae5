package model

// Recipe is the persisted recipe row. Ingredients holds the list joined with ", ".
type Recipe struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Vegetarian   bool   `gorm:"not null" json:"vegetarian"`
	Servings     int    `gorm:"not null" json:"servings"`
	Ingredients  string `gorm:"type:text;not null" json:"ingredients"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
}

// TableName keeps the singular table name used by the SQL migrations.
func (Recipe) TableName() string {
	return "recipe"
}

// Column names used by query construction.
const (
	ColumnName         = "name"
	ColumnVegetarian   = "vegetarian"
	ColumnServings     = "servings"
	ColumnIngredients  = "ingredients"
	ColumnInstructions = "instructions"
)
