package models

// OptionalText is a reusable named content block selectable per invoice,
// e.g. bank details or a legal disclaimer. Content may contain the
// placeholders {bank_name}, {iban} and {swift}, substituted from the
// company profile at render time.
type OptionalText struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Key            string `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Label          string `gorm:"size:100;not null" json:"label"`
	Content        string `gorm:"type:text;not null" json:"content"`
	DefaultEnabled bool   `gorm:"default:false" json:"default_enabled"`
}
