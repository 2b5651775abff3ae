package converter

import "time"

// CatalogRedisModel — снимок каталога, хранимый одним ключом.
type CatalogRedisModel struct {
	Version  int                 `json:"v"`
	CachedAt time.Time           `json:"cached_at"`
	Products []ProductRedisModel `json:"products"`
}

type ProductRedisModel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"category_name"`
	Price        int64  `json:"price"`
	ImageKey     string `json:"image_key,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}
