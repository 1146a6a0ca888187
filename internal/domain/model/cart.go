package model

type CartStatus string

const (
	CartStatusActive     CartStatus = "active"
	CartStatusCheckedOut CartStatus = "checked_out"
	CartStatusAbandoned  CartStatus = "abandoned"
)

// CartItem はカートの明細。menuIdはカート内で一意。
type CartItem struct {
	MenuID   int `json:"menuId"`
	Quantity int `json:"quantity"`
}

// Cart は carts コレクションの1レコード。キーはid（20文字）。
// 1ユーザーにつきactiveは1つ。
type Cart struct {
	ID        string     `json:"id"`
	UserEmail string     `json:"userEmail"`
	Status    CartStatus `json:"status"`
	Items     []CartItem `json:"items"`
}
