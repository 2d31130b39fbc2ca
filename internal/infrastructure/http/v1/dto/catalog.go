package dto

// CreateRestaurantRequest creates a restaurant.
type CreateRestaurantRequest struct {
	Name    string  `json:"name" binding:"required"`
	Cuisine string  `json:"cuisine" binding:"required"`
	Price   string  `json:"price"`
	Rating  float64 `json:"rating"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CreateMenuRequest adds a meal-typed menu section to a restaurant.
type CreateMenuRequest struct {
	MealType string `json:"mealType" binding:"required"`
}

// CreateItemRequest adds a dish to a menu.
type CreateItemRequest struct {
	Name      string   `json:"name" binding:"required"`
	Recipe    string   `json:"recipe"`
	Allergens []string `json:"allergens"`
}

// ListRestaurantsQuery narrows the restaurant listing.
type ListRestaurantsQuery struct {
	Search  string `form:"search"`
	Cuisine string `form:"cuisine"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}
