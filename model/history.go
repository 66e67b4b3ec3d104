package model

// History is the append-only record of a blog post creation.
// Rows are written exactly once; deactivate/delete events broadcast only
// and never touch the stored row.
type History struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string `gorm:"size:100;index" json:"email"`
	PostID    string `gorm:"column:post_id;size:64" json:"postId"`
	Title     string `gorm:"size:50" json:"title"`
	Content   string `gorm:"size:300" json:"content"`
	Status    string `gorm:"size:10" json:"status"`
	EventName string `gorm:"column:event_name;size:20" json:"eventName"`
}

// TableName keeps the legacy table name.
func (History) TableName() string {
	return "history"
}

// PostEvent is the payload published for blog post lifecycle events.
// Key names match what subscribers already consume.
type PostEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	Status    string `json:"status,omitempty"`
	EventName string `json:"event_name"`
}
