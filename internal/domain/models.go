package domain

type Category string

const (
	CategoryMainCourse Category = "main-course"
	CategoryAppetizer  Category = "appetizer"
	CategoryBeverage   Category = "beverage"
	CategoryDessert    Category = "dessert"
)

// Valid reports whether c is one of the four menu categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMainCourse, CategoryAppetizer, CategoryBeverage, CategoryDessert:
		return true
	}
	return false
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

// CartLine is the menu item snapshot taken at add time plus its quantity.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

type Reservation struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Guests    int               `json:"guests"`
	Status    ReservationStatus `json:"status"`
	CreatedAt int64             `json:"createdAt"`
}

type OrderItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int64  `json:"price"`
}

type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	TotalPrice    int64       `json:"totalPrice"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        OrderStatus `json:"status"`
	Date          string      `json:"date"`
	Items         []OrderItem `json:"items"`
}

type PaymentSummary struct {
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

type OperatingHours struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type RestaurantInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Capacity is the persisted seat counter gating new reservations.
type Capacity struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
}

type AdminSession struct {
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}
