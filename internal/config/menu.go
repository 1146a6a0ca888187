package config

import "app/internal/domain/model"

// menuTable は静的メニュー。価格はセント。
// 注文明細のmenuId検証はこの表が正。
var menuTable = []model.MenuItem{
	{ID: 1, Name: "Margherita", Price: 999},
	{ID: 2, Name: "Pepperoni", Price: 1199},
	{ID: 3, Name: "Quattro Formaggi", Price: 1299},
	{ID: 4, Name: "Hawaiian", Price: 1199},
	{ID: 5, Name: "Veggie Supreme", Price: 1099},
	{ID: 6, Name: "BBQ Chicken", Price: 1299},
	{ID: 7, Name: "Garlic Bread", Price: 499},
	{ID: 8, Name: "Tiramisu", Price: 599},
	{ID: 9, Name: "Cola", Price: 199},
}

// Menu はメニュー表のコピーを返す（呼び出し側で書き換えても影響しない）。
func Menu() []model.MenuItem {
	out := make([]model.MenuItem, len(menuTable))
	copy(out, menuTable)
	return out
}
