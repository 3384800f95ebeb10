package models

// MenuCategory groups catalog entries for display. The set is open: administrative
// sessions may introduce new categories at any time.
type MenuCategory string

// MenuItem is a catalog entry. It never carries a quantity; quantities belong to
// order lines.
type MenuItem struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Category    MenuCategory `json:"category"`
	Available   bool         `json:"is_available"`
}

// Line returns an order line for this menu item at the given quantity, snapshotting
// the current catalog price.
func (m MenuItem) Line(quantity int) OrderItem {
	return OrderItem{
		ID:       m.ID,
		Name:     m.Name,
		Price:    m.Price,
		Quantity: quantity,
	}
}

// DefaultMenu returns the seed catalog written by the seed mode when the shared
// medium holds no menu yet.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: 101, Name: "Butterfly Paneer Crisps", Description: "Golden-fried paneer wrapped in a ribbon of potato, with a ketchup dip.", Price: 180, Category: "Appetizers", Available: true},
		{ID: 103, Name: "Pepper BabyCorn Crunch", Description: "Baby corn coated in cracked black pepper, garlic, and curry leaves.", Price: 150, Category: "Appetizers", Available: true},
		{ID: 109, Name: "Peri Peri Fries", Description: "Golden fries tossed with a bold peri peri spice mix, served with mayo.", Price: 110, Category: "Appetizers", Available: true},
		{ID: 201, Name: "Rustic Manchow", Description: "Hearty Indo-Chinese broth topped with crunchy fried noodles.", Price: 100, Category: "Soulful Soups", Available: true},
		{ID: 301, Name: "Creamy Alfredo Elegance", Description: "Penne in a rich white sauce with garlic, oregano, and cheese.", Price: 140, Category: "Pastas & Spaghetti", Available: true},
		{ID: 401, Name: "Classic Tandoori Roti", Description: "Whole wheat tandoor flatbread.", Price: 30, Category: "Artisan Breads", Available: true},
		{ID: 501, Name: "Dal Makhani Luxe", Description: "Creamy black lentil dal, slow-simmered with butter and spices.", Price: 150, Category: "Signature Curries", Available: true},
		{ID: 506, Name: "Paneer Butter Masala", Description: "Paneer simmered in a velvety tomato-cashew gravy.", Price: 200, Category: "Signature Curries", Available: true},
		{ID: 601, Name: "Royal Veg Biryani", Description: "Aromatic vegetable biryani with saffron and whole garam masala.", Price: 170, Category: "Heritage Rice Bowls", Available: true},
		{ID: 707, Name: "Raw Mango Mojito", Description: "Tangy raw mango with fresh mint, soda, and lime.", Price: 180, Category: "sip sesh", Available: true},
		{ID: 801, Name: "Mimi Doce", Description: "Signature fusion dessert inspired by Mysore Pak.", Price: 130, Category: "Sweets Endings", Available: true},
		{ID: 901, Name: "Regular Coffee", Description: "Light, fresh filter coffee.", Price: 25, Category: "Coffee Classics", Available: true},
	}
}
