package specification

import "gorm.io/gorm"

type ByEventName struct {
	Name string
}

func (s ByEventName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_name = ?", s.Name)
}

type ByEventNames struct {
	Names []string
}

func (s ByEventNames) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_name IN ?", s.Names)
}
