package domain

import "time"

// Follow — подписка пользователя на автора. Подписка на себя запрещена.
type Follow struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_follow_user_author"`
	AuthorID  int64     `json:"author_id" gorm:"not null;uniqueIndex:idx_follow_user_author"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Follow) TableName() string { return "follows" }
