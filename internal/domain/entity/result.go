package entity

import "time"

// ProcessedImage результат применения фильтра, хранится до скачивания.
type ProcessedImage struct {
	ID        string     // ksuid
	Filter    FilterName // применённый фильтр
	Filename  string     // имя файла для скачивания
	Preview   []byte     // превью результата, PNG
	Result    []byte     // результат в полном разрешении, PNG
	Width     int
	Height    int
	CreatedAt time.Time
}

// Expired сообщает, истёк ли срок хранения результата.
func (p *ProcessedImage) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.CreatedAt) > ttl
}
