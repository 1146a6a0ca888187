package model

// CartRef はユーザーに紐付くカートのサマリ（id + status）。
type CartRef struct {
	ID     string     `json:"id"`
	Status CartStatus `json:"status"`
}

// User は users コレクションの1レコード。キーはemail（大文字小文字を区別）。
type User struct {
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Address        string    `json:"address"`
	HashedPassword string    `json:"hashedPassword"`
	Carts          []CartRef `json:"carts"`
}

// UserView は外部に返す形。ダイジェストは絶対に含めない。
type UserView struct {
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address"`
	Carts     []CartRef `json:"carts"`
}

// View はhashedPasswordを落とした外部向け表現を作る。
func (u User) View() UserView {
	carts := u.Carts
	if carts == nil {
		carts = []CartRef{}
	}

	return UserView{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		Carts:     carts,
	}
}
