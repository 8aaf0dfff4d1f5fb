package main

import "github.com/alecthomas/kingpin/v2"

func registerCommands(app *kingpin.Application, c *cli) {
	app.Command("posts", "List every post.").
		Action(func(*kingpin.ParseContext) error {
			return run(c, c.api.Posts())
		})

	post := app.Command("post", "Show a single post.")
	postID := post.Arg("id", "Post id.").Required().Int()
	post.Action(func(*kingpin.ParseContext) error {
		return run(c, c.api.FindPost(*postID))
	})

	comments := app.Command("comments", "List the comments of a post.")
	commentsPost := comments.Flag("post-id", "Post id.").Required().Int()
	commentsEmail := comments.Flag("email", "Only comments written from this address.").String()
	comments.Action(func(*kingpin.ParseContext) error {
		if *commentsEmail != "" {
			return run(c, c.api.PostsComments(*commentsPost, *commentsEmail))
		}
		return run(c, c.api.PostComments(*commentsPost))
	})

	create := app.Command("create", "Create a post.")
	createUser := create.Flag("user-id", "Author id.").Required().Int()
	createTitle := create.Flag("title", "Post title.").Required().String()
	createBody := create.Flag("body", "Post body.").String()
	create.Action(func(*kingpin.ParseContext) error {
		return run(c, c.api.CreatePost(*createUser, *createTitle, *createBody))
	})

	update := app.Command("update", "Replace a post.")
	updateID := update.Arg("id", "Post id.").Required().Int()
	updateUser := update.Flag("user-id", "Author id.").Required().Int()
	updateTitle := update.Flag("title", "Post title.").Required().String()
	updateBody := update.Flag("body", "Post body.").String()
	update.Action(func(*kingpin.ParseContext) error {
		return run(c, c.api.UpdatePost(*updateID, *updateUser, *updateTitle, *updateBody))
	})

	del := app.Command("delete", "Delete a post.")
	delID := del.Arg("id", "Post id.").Required().Int()
	del.Action(func(*kingpin.ParseContext) error {
		return run(c, c.api.DeletePost(*delID))
	})
}
