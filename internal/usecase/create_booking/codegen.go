package create_booking

import "github.com/google/uuid"

// UUIDCodeGenerator генератор публичных кодов бронирования
type UUIDCodeGenerator struct{}

// NewCode возвращает новый уникальный код
func (g *UUIDCodeGenerator) NewCode() string {
	return uuid.NewString()
}
