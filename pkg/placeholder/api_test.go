package placeholder_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"retrofire/pkg/config"
	"retrofire/pkg/decode"
	"retrofire/pkg/placeholder"
	"retrofire/pkg/remote"
)

var _ = Describe("API", func() {
	for _, transport := range []string{config.TransportResty, config.TransportFiber} {
		Context("over "+transport, func() {
			var (
				server *ghttp.Server
				base   *remote.Base
				api    *placeholder.API
			)

			BeforeEach(func() {
				server = ghttp.NewServer()
				routeFixtures(server)

				cfg := config.DefaultConfig()
				cfg.Transport = transport
				cfg.Size = 2

				var err error
				base, err = remote.NewBaseFromConfig(cfg)
				Expect(err).NotTo(HaveOccurred())
				api = placeholder.New(base, server.URL()+"/")
			})

			AfterEach(func() {
				base.Close()
				server.Close()
			})

			It("does not send anything until the call is triggered", func() {
				c := api.FindPost(1)
				Consistently(server.ReceivedRequests, "50ms").Should(BeEmpty())
				Expect(c.State()).To(Equal(remote.Unstarted))

				c.Call()
				Eventually(server.ReceivedRequests).Should(HaveLen(1))
			})

			It("finds a single post", func() {
				rec := &recorder[placeholder.Post]{}
				api.FindPost(1).OnSuccess(rec.success).OnFailed(rec.failed).Call()

				Eventually(rec.Values).Should(HaveLen(1))
				Expect(rec.Values()[0].ID).To(Equal(1))
				Expect(rec.Values()[0]).To(Equal(fixturePost(1)))
				Expect(rec.Errors()).To(BeEmpty())
			})

			It("lists all posts", func() {
				rec := &recorder[[]placeholder.Post]{}
				api.Posts().OnSuccess(rec.success).OnFailed(rec.failed).Call()

				Eventually(rec.Values).Should(HaveLen(1))
				posts := rec.Values()[0]
				Expect(posts).To(HaveLen(100))
				Expect(posts[0].ID).To(Equal(1))
			})

			It("lists the comments of a post", func() {
				rec := &recorder[[]placeholder.Comment]{}
				api.PostComments(1).OnSuccess(rec.success).OnFailed(rec.failed).Call()

				Eventually(rec.Values).Should(HaveLen(1))
				comments := rec.Values()[0]
				Expect(comments).To(HaveLen(5))
				Expect(comments[0].ID).To(Equal(1))
				for _, c := range comments {
					Expect(c.PostID).To(Equal(1))
				}
			})

			It("filters comments by post and email", func() {
				comments, err := api.PostsComments(2, "Presley.Mueller@myrl.com").Call().Wait(context.Background())
				Expect(err).NotTo(HaveOccurred())
				Expect(comments).To(HaveLen(1))
				Expect(comments[0].ID).To(Equal(6))
			})

			It("creates a post from body parameters", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodPost, "/posts"),
					ghttp.VerifyJSONRepresenting(map[string]any{"userId": 1, "title": "foo", "body": "bar"}),
					ghttp.RespondWith(http.StatusCreated, `{"id":101,"userId":1,"title":"foo","body":"bar"}`),
				))

				post, err := api.CreatePost(1, "foo", "bar").Call().Wait(context.Background())
				Expect(err).NotTo(HaveOccurred())
				Expect(post).To(Equal(placeholder.Post{UserID: 1, ID: 101, Title: "foo", Body: "bar"}))
			})

			It("reports a missing post as an ErrorResponse", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodPut, "/posts/102292"),
					ghttp.VerifyJSONRepresenting(map[string]any{"userId": 1, "title": "foo", "body": "bar"}),
					ghttp.RespondWith(http.StatusNotFound, `{}`),
				))

				rec := &recorder[placeholder.Post]{}
				api.UpdatePost(102292, 1, "foo", "bar").OnSuccess(rec.success).OnFailed(rec.failed).Call()

				Eventually(rec.Errors).Should(HaveLen(1))
				Expect(rec.Values()).To(BeEmpty())

				var er *remote.ErrorResponse
				Expect(errors.As(rec.Errors()[0], &er)).To(BeTrue())
				Expect(er.StatusCode).To(Equal(404))
				Expect(er.URL).To(Equal(server.URL() + "/posts/102292"))
				Expect(er.DetailMessage).To(Equal(""))
			})

			It("updates a post with only the editable fields in the body", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodPut, "/posts/1"),
					ghttp.VerifyJSONRepresenting(map[string]any{"userId": 2, "title": "new", "body": "text"}),
					ghttp.RespondWith(http.StatusOK, `{"id":1,"userId":2,"title":"new","body":"text"}`),
				))

				post, err := api.UpdatePost(1, 2, "new", "text").Call().Wait(context.Background())
				Expect(err).NotTo(HaveOccurred())
				Expect(post).To(Equal(placeholder.Post{UserID: 2, ID: 1, Title: "new", Body: "text"}))
			})

			It("deletes a post", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodDelete, "/posts/1"),
					ghttp.RespondWith(http.StatusOK, `{}`),
				))

				ok, err := api.DeletePost(1).Call().Wait(context.Background())
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
			})

			It("fails the whole list when one element does not decode", func() {
				server.RouteToHandler(http.MethodGet, "/posts",
					ghttp.RespondWith(http.StatusOK, `[{"id":1,"title":"ok"},{"id":"two"}]`))

				rec := &recorder[[]placeholder.Post]{}
				api.Posts().OnSuccess(rec.success).OnFailed(rec.failed).Call()

				Eventually(rec.Errors).Should(HaveLen(1))
				Expect(rec.Values()).To(BeEmpty())

				var de *decode.Error
				Expect(errors.As(rec.Errors()[0], &de)).To(BeTrue())
				Expect(de.Index).To(Equal(1))
				Expect(errors.Is(de, decode.ErrType)).To(BeTrue())
			})
		})
	}

	Context("when the server is unreachable", func() {
		It("reports a TransportError", func() {
			server := ghttp.NewServer()
			url := server.URL()
			server.Close()

			base := remote.NewBase(mustPool())
			defer base.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := placeholder.New(base, url).FindPost(1).Call().Wait(ctx)

			var te *remote.TransportError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.URL).To(Equal(url + "/posts/1"))
		})
	})

	Context("with an empty base URL", func() {
		It("targets the public placeholder service without dispatching", func() {
			c := placeholder.New(remote.NewBase(mustPool()), "").FindPost(1)
			Expect(c.Request().URL()).To(Equal(placeholder.DefaultBaseURL + "/posts/1"))
			Expect(c.State()).To(Equal(remote.Unstarted))
		})
	})

	Context("with a base URL that is not absolute", func() {
		It("rejects every call through the failure continuation", func() {
			rec := &recorder[[]placeholder.Post]{}
			placeholder.New(remote.NewBase(mustPool()), "not a url").Posts().
				OnSuccess(rec.success).OnFailed(rec.failed).Call()

			Eventually(rec.Errors).Should(HaveLen(1))
			Expect(rec.Values()).To(BeEmpty())
		})
	})
})
