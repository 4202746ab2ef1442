package models

// CategoryModel groups articles.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"size:191;not null"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;size:191;not null"`
	Description string `json:"description" gorm:"type:text"`

	Articles []ArticleModel `json:"articles,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
