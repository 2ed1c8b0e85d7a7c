package domain

import "time"

// Post is a board entry authored by a registered user.
type Post struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Author    string    `json:"author" bson:"author"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PostID    string    `json:"post_id" bson:"post_id"`
	Author    string    `json:"author" bson:"author"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Follow is a directed edge in the follow graph.
type Follow struct {
	Follower  string    `json:"follower" bson:"follower"`
	Followee  string    `json:"followee" bson:"followee"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
