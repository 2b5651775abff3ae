package domain

import "strings"

// ImageRef указывает, откуда брать изображение товара:
// ключ объекта в хранилище (приоритетно) или внешний URL.
type ImageRef struct {
	ObjectKey string
	URL       string
}

// IsEmpty сообщает, что у товара нет изображения.
func (r ImageRef) IsEmpty() bool {
	return strings.TrimSpace(r.ObjectKey) == "" && strings.TrimSpace(r.URL) == ""
}

// Product описывает товар каталога в объёме, нужном визуальному поиску
type Product struct {
	ID           string
	Name         string
	CategoryName string
	Price        int64 // Цена хранится в пайсах
	Image        ImageRef
}

func NewProduct(id, name, categoryName string, price int64, image ImageRef) *Product {
	return &Product{
		ID:           id,
		Name:         name,
		CategoryName: categoryName,
		Price:        price,
		Image:        image,
	}
}
