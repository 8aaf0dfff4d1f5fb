package placeholder_test

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"

	"github.com/onsi/gomega/ghttp"

	"retrofire/pkg/config"
	"retrofire/pkg/placeholder"
	"retrofire/pkg/pool"
	"retrofire/pkg/restypool"
)

const (
	fixturePosts           = 100
	fixtureCommentsPerPost = 5
)

func fixturePost(id int) placeholder.Post {
	return placeholder.Post{
		UserID: (id-1)/10 + 1,
		ID:     id,
		Title:  fmt.Sprintf("post %d", id),
		Body:   fmt.Sprintf("body of post %d", id),
	}
}

func fixtureComment(id int) placeholder.Comment {
	email := fmt.Sprintf("reader%d@example.com", id)
	if id == 6 {
		email = "Presley.Mueller@myrl.com"
	}
	return placeholder.Comment{
		PostID: (id-1)/fixtureCommentsPerPost + 1,
		ID:     id,
		Name:   fmt.Sprintf("comment %d", id),
		Email:  email,
		Body:   fmt.Sprintf("body of comment %d", id),
	}
}

// routeFixtures serves the read-only part of the API on server.
func routeFixtures(server *ghttp.Server) {
	server.RouteToHandler(http.MethodGet, "/posts", func(w http.ResponseWriter, r *http.Request) {
		posts := make([]placeholder.Post, 0, fixturePosts)
		for id := 1; id <= fixturePosts; id++ {
			posts = append(posts, fixturePost(id))
		}
		ghttp.RespondWithJSONEncoded(http.StatusOK, posts)(w, r)
	})

	server.RouteToHandler(http.MethodGet, regexp.MustCompile(`^/posts/\d+$`), func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.URL.Path[len("/posts/"):])
		if id < 1 || id > fixturePosts {
			ghttp.RespondWith(http.StatusNotFound, `{}`)(w, r)
			return
		}
		ghttp.RespondWithJSONEncoded(http.StatusOK, fixturePost(id))(w, r)
	})

	server.RouteToHandler(http.MethodGet, "/comments", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		comments := []placeholder.Comment{}
		for id := 1; id <= fixturePosts*fixtureCommentsPerPost; id++ {
			c := fixtureComment(id)
			if q.Has("postId") && strconv.Itoa(c.PostID) != q.Get("postId") {
				continue
			}
			if q.Has("email") && c.Email != q.Get("email") {
				continue
			}
			comments = append(comments, c)
		}
		ghttp.RespondWithJSONEncoded(http.StatusOK, comments)(w, r)
	})
}

// recorder collects continuation results from completion goroutines.
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
	errs   []error
}

func (r *recorder[T]) success(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) failed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func (r *recorder[T]) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

func mustPool() pool.Client {
	cfg := config.DefaultConfig()
	cfg.Size = 1
	return restypool.New(cfg)
}
