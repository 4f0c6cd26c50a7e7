package domain

// TagColor — цвет тега в HEX. Допустимы только пять значений палитры.
type TagColor string

const (
	TagColorBlue   TagColor = "#0000FF"
	TagColorOrange TagColor = "#FFA500"
	TagColorGreen  TagColor = "#008000"
	TagColorPurple TagColor = "#800080"
	TagColorYellow TagColor = "#FFFF00"
)

func (c TagColor) Valid() bool {
	switch c {
	case TagColorBlue, TagColorOrange, TagColorGreen, TagColorPurple, TagColorYellow:
		return true
	}
	return false
}

type Tag struct {
	ID    int64    `json:"id" gorm:"primaryKey"`
	Name  string   `json:"name" gorm:"size:200;not null;uniqueIndex"`
	Color TagColor `json:"color" gorm:"size:7;not null;uniqueIndex"`
	Slug  string   `json:"slug" gorm:"size:200;not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }
