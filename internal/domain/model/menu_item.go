package model

// MenuItem は静的メニュー表の1行。プロセス起動時に読み込んだ後は不変。
type MenuItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
