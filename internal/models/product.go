package models

// Product represents a product row in the inventory.
type Product struct {
	ID          int      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"type:varchar(100);not null"`
	Description string   `json:"description" gorm:"type:text;not null"`
	Category    Category `json:"category" gorm:"type:varchar(20);not null"`
	Quantity    int      `json:"quantity" gorm:"not null"`
}

// TableName keeps the table name singular and capitalized.
func (Product) TableName() string {
	return "Product"
}

// ProductCreate is the request body for creating a product. Every field is required.
type ProductCreate struct {
	Name        *string   `json:"name" validate:"required,min=3,max=100"`
	Description *string   `json:"description" validate:"required,min=3"`
	Category    *Category `json:"category" validate:"required,category"`
	Quantity    *int      `json:"quantity" validate:"required,gte=0"`
}

// ToProduct builds a new row from a validated payload.
func (p ProductCreate) ToProduct() *Product {
	product := &Product{}
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	return product
}

// ProductUpdate is the request body for a partial update.
// A nil field was not supplied and is left untouched.
type ProductUpdate struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=3"`
	Category    *Category `json:"category,omitempty" validate:"omitempty,category"`
	Quantity    *int      `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

// Changes returns the supplied fields keyed by column name.
func (p ProductUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Category != nil {
		changes["category"] = *p.Category
	}
	if p.Quantity != nil {
		changes["quantity"] = *p.Quantity
	}
	return changes
}

// Apply copies column changes onto the product. Unknown columns are ignored.
func (p *Product) Apply(changes map[string]interface{}) {
	for column, value := range changes {
		switch column {
		case "name":
			p.Name = value.(string)
		case "description":
			p.Description = value.(string)
		case "category":
			p.Category = value.(Category)
		case "quantity":
			p.Quantity = value.(int)
		}
	}
}
