package models

import "time"

// UserData is a row of the userData collection: one encoded record per user.
type UserData struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Data      []byte    `gorm:"column:data;not null"`
	Size      int64     `gorm:"column:size;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the UserData model
func (UserData) TableName() string {
	return "user_data"
}

// SchemaMeta records the schema version of a named local database.
type SchemaMeta struct {
	Name    string `gorm:"column:name;primaryKey"`
	Version int    `gorm:"column:version;not null"`
}

// TableName specifies the table name for the SchemaMeta model
func (SchemaMeta) TableName() string {
	return "schema_meta"
}
