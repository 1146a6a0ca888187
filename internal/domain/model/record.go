package model

import (
	"time"

	"gorm.io/datatypes"
)

// Record はpostgresドライバ用の汎用レコード行。
// (collection, record_key) が複合主キーで、本文はJSONのまま持つ。
type Record struct {
	Collection string         `gorm:"primaryKey;size:64;column:collection" json:"collection"`
	Key        string         `gorm:"primaryKey;size:255;column:record_key" json:"key"`
	Doc        datatypes.JSON `gorm:"not null" json:"doc"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
