package placeholder

import "retrofire/pkg/decode"

type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Comment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

var postMapping = decode.Mapping[Post]{
	Schema: decode.Schema{
		decode.Int("id").Require(),
		decode.Int("userId"),
		decode.String("title"),
		decode.String("body"),
	},
	Build: func(r decode.Record) Post {
		return Post{
			UserID: r.Int("userId"),
			ID:     r.Int("id"),
			Title:  r.String("title"),
			Body:   r.String("body"),
		}
	},
}

var commentMapping = decode.Mapping[Comment]{
	Schema: decode.Schema{
		decode.Int("id").Require(),
		decode.Int("postId").Require(),
		decode.String("name"),
		decode.String("email"),
		decode.String("body"),
	},
	Build: func(r decode.Record) Comment {
		return Comment{
			PostID: r.Int("postId"),
			ID:     r.Int("id"),
			Name:   r.String("name"),
			Email:  r.String("email"),
			Body:   r.String("body"),
		}
	},
}
