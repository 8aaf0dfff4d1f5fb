// Package placeholder is a typed client for a JSONPlaceholder style posts
// and comments API built on remote.Base.
package placeholder

import (
	"strconv"
	"strings"

	"retrofire/pkg/remote"
	"retrofire/pkg/request"
)

const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

type API struct {
	base    *remote.Base
	baseURL string
}

// New returns an API rooted at baseURL. An empty baseURL selects
// DefaultBaseURL.
func New(base *remote.Base, baseURL string) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &API{base: base, baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *API) endpoint(parts ...string) request.Builder {
	return request.NewBuilder(a.baseURL + "/" + strings.Join(parts, "/"))
}

func (a *API) Posts() *remote.Call[[]Post] {
	d, err := a.endpoint("posts").Build()
	if err != nil {
		return remote.Rejected[[]Post](err)
	}
	return remote.List(a.base, d, postMapping)
}

func (a *API) FindPost(id int) *remote.Call[Post] {
	d, err := a.endpoint("posts", strconv.Itoa(id)).Build()
	if err != nil {
		return remote.Rejected[Post](err)
	}
	return remote.Single(a.base, d, postMapping)
}

// PostComments lists the comments attached to postID.
func (a *API) PostComments(postID int) *remote.Call[[]Comment] {
	d, err := a.endpoint("comments").
		WithQueryParameters(map[string]string{"postId": strconv.Itoa(postID)}).
		Build()
	if err != nil {
		return remote.Rejected[[]Comment](err)
	}
	return remote.List(a.base, d, commentMapping)
}

// PostsComments narrows PostComments to comments written from email.
func (a *API) PostsComments(postID int, email string) *remote.Call[[]Comment] {
	d, err := a.endpoint("comments").
		WithQueryParameters(map[string]string{"postId": strconv.Itoa(postID)}).
		WithQueryParameters(map[string]string{"email": email}).
		Build()
	if err != nil {
		return remote.Rejected[[]Comment](err)
	}
	return remote.List(a.base, d, commentMapping)
}

func (a *API) CreatePost(userID int, title, body string) *remote.Call[Post] {
	d, err := a.endpoint("posts").
		WithMethod(request.POST).
		WithBodyParameters(map[string]any{"userId": userID, "title": title, "body": body}).
		Build()
	if err != nil {
		return remote.Rejected[Post](err)
	}
	return remote.Single(a.base, d, postMapping)
}

func (a *API) UpdatePost(id, userID int, title, body string) *remote.Call[Post] {
	d, err := a.endpoint("posts", strconv.Itoa(id)).
		WithMethod(request.PUT).
		WithBodyParameters(map[string]any{"userId": userID, "title": title, "body": body}).
		Build()
	if err != nil {
		return remote.Rejected[Post](err)
	}
	return remote.Single(a.base, d, postMapping)
}

// DeletePost succeeds with true when the server acknowledges the delete.
func (a *API) DeletePost(id int) *remote.Call[bool] {
	d, err := a.endpoint("posts", strconv.Itoa(id)).WithMethod(request.DELETE).Build()
	if err != nil {
		return remote.Rejected[bool](err)
	}
	return remote.Status(a.base, d)
}
