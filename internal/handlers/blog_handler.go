package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/arifdn/inkpot/backend/internal/models"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const blogPageSize = 5

// BlogHandler handles HTTP requests related to blogs
type BlogHandler struct {
	blogRepository         repositories.BlogRepository
	userRepository         repositories.UserRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repositories.BlogRepository, userRepo repositories.UserRepository, commentRepo repositories.CommentRepository, notifRepo repositories.NotificationRepository) *BlogHandler {
	return &BlogHandler{
		blogRepository:         blogRepo,
		userRepository:         userRepo,
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterBlogRoutes registers blog-related routes
func (h *BlogHandler) RegisterBlogRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/create-blog", h.CreateBlog, requireAuth)
	e.POST("/latest-blogs", h.GetLatestBlogs)
	e.POST("/all-latest-blogs-count", h.GetAllLatestBlogsCount)
	e.GET("/trending-blogs", h.GetTrendingBlogs)
	e.POST("/search-blogs", h.SearchBlogs)
	e.POST("/search-blogs-count", h.GetSearchBlogsCount)
	e.POST("/get-blog", h.GetBlog)
	e.POST("/like-blog", h.LikeBlog, requireAuth)
	e.POST("/isliked-by-user", h.IsLikedByUser, requireAuth)
	e.POST("/user-written-blogs", h.GetUserWrittenBlogs, requireAuth)
	e.POST("/user-written-blogs-count", h.GetUserWrittenBlogsCount, requireAuth)
	e.POST("/delete-blog", h.DeleteBlog, requireAuth)
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// generateBlogID slugifies the title and appends a random suffix so two blogs
// with the same title get distinct ids.
func generateBlogID(title string) string {
	slug := nonAlphanumeric.ReplaceAllString(title, " ")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return strings.TrimSpace(slug) + uuid.NewString()
}

// enrichBlogs joins author info into blogs, caching repeated authors.
func (h *BlogHandler) enrichBlogs(ctx context.Context, blogs []models.Blog) []models.BlogView {
	enriched := make([]models.BlogView, len(blogs))
	authorCache := make(map[primitive.ObjectID]models.UserPreview)

	for i, b := range blogs {
		enriched[i] = models.BlogView{Blog: b}
		if author, ok := authorCache[b.Author]; ok {
			enriched[i].Author = author
			continue
		}
		user, err := h.userRepository.GetUserByID(ctx, b.Author)
		if err == nil {
			preview := user.ToPreview()
			authorCache[b.Author] = preview
			enriched[i].Author = preview
		}
	}
	return enriched
}

// CreateBlog creates a new blog or, when an id is supplied, updates an
// existing one.
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	authorID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if len(req.Title) == 0 {
		return echo.NewHTTPError(http.StatusForbidden,
			"You must provide a title to publish/save draft of the blog")
	}

	// drafts may be incomplete, published blogs may not
	if !req.Draft {
		if len(req.Des) == 0 || len(req.Des) > 200 {
			return echo.NewHTTPError(http.StatusForbidden,
				"You must provide a blog description under 200 characters to publish it")
		}
		if len(req.Banner) == 0 {
			return echo.NewHTTPError(http.StatusForbidden,
				"You must provide a blog banner to publish the blog")
		}
		if len(req.Content.Blocks) == 0 {
			return echo.NewHTTPError(http.StatusForbidden,
				"You must provide a blog content to publish the blog")
		}
		if len(req.Tags) == 0 || len(req.Tags) > 10 {
			return echo.NewHTTPError(http.StatusForbidden,
				"You must provide tags (Max:10) to publish the blog")
		}
	}

	tags := make([]string, len(req.Tags))
	for i, tag := range req.Tags {
		tags[i] = strings.ToLower(tag)
	}

	ctx := c.Request().Context()

	if req.ID != "" {
		err := h.blogRepository.UpdateBlog(ctx, req.ID, repositories.BlogUpdate{
			Title:   req.Title,
			Banner:  req.Banner,
			Des:     req.Des,
			Content: []models.BlogContent{req.Content},
			Tags:    tags,
			Draft:   req.Draft,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"id": req.ID})
	}

	blog := &models.Blog{
		BlogID:  generateBlogID(req.Title),
		Title:   req.Title,
		Banner:  req.Banner,
		Des:     req.Des,
		Content: []models.BlogContent{req.Content},
		Tags:    tags,
		Author:  authorID,
		Draft:   req.Draft,
	}
	if err := h.blogRepository.CreateBlog(ctx, blog); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postsDelta := int64(1)
	if req.Draft {
		postsDelta = 0
	}
	if err := h.userRepository.AttachBlog(ctx, authorID, blog.ID, postsDelta); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update total posts number")
	}

	return c.JSON(http.StatusOK, echo.Map{"id": blog.BlogID})
}

// GetLatestBlogs returns a page of published blogs, newest first
func (h *BlogHandler) GetLatestBlogs(c echo.Context) error {
	var req models.PageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Page < 1 {
		req.Page = 1
	}

	ctx := c.Request().Context()
	blogs, err := h.blogRepository.GetLatest(ctx, (req.Page-1)*blogPageSize, blogPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"blogs": h.enrichBlogs(ctx, blogs)})
}

// GetAllLatestBlogsCount returns the count of published blogs
func (h *BlogHandler) GetAllLatestBlogsCount(c echo.Context) error {
	count, err := h.blogRepository.CountPublished(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"totalDocs": count})
}

// GetTrendingBlogs returns the top five blogs by reads, likes, recency
func (h *BlogHandler) GetTrendingBlogs(c echo.Context) error {
	ctx := c.Request().Context()
	blogs, err := h.blogRepository.GetTrending(ctx, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"blogs": h.enrichBlogs(ctx, blogs)})
}

func (h *BlogHandler) searchFilter(req models.SearchBlogsRequest) repositories.BlogSearchFilter {
	filter := repositories.BlogSearchFilter{
		Tag:           req.Tag,
		Query:         req.Query,
		EliminateBlog: req.EliminateBlog,
	}
	if req.Author != "" {
		if author, err := primitive.ObjectIDFromHex(req.Author); err == nil {
			filter.Author = author
		}
	}
	return filter
}

// SearchBlogs returns a page of blogs matching a tag, title query or author
func (h *BlogHandler) SearchBlogs(c echo.Context) error {
	var req models.SearchBlogsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Page < 1 {
		req.Page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 2
	}

	ctx := c.Request().Context()
	blogs, err := h.blogRepository.Search(ctx, h.searchFilter(req), (req.Page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"blogs": h.enrichBlogs(ctx, blogs)})
}

// GetSearchBlogsCount returns the count of blogs matching the search criteria
func (h *BlogHandler) GetSearchBlogsCount(c echo.Context) error {
	var req models.SearchBlogsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	count, err := h.blogRepository.CountSearch(c.Request().Context(), h.searchFilter(req))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"totalDocs": count})
}

// GetBlog returns one blog by slug id, bumping read counters unless the
// client is opening it for editing.
func (h *BlogHandler) GetBlog(c echo.Context) error {
	var req models.GetBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	blog, err := h.blogRepository.GetByBlogID(ctx, req.BlogID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var readsDelta int64 = 1
	if req.Mode == "edit" {
		readsDelta = 0
	}
	if readsDelta != 0 {
		if err := h.blogRepository.IncrementReads(ctx, req.BlogID, readsDelta); err != nil {
			log.Printf("Error incrementing blog reads: %v", err)
		}
		if err := h.userRepository.IncrementTotalReads(ctx, blog.Author, readsDelta); err != nil {
			log.Printf("Error incrementing author reads: %v", err)
		}
	}

	if blog.Draft && !req.Draft {
		return echo.NewHTTPError(http.StatusInternalServerError, "you can't access draft blog")
	}

	view := models.BlogView{Blog: *blog}
	if author, err := h.userRepository.GetUserByID(ctx, blog.Author); err == nil {
		view.Author = author.ToPreview()
	}

	return c.JSON(http.StatusOK, echo.Map{"blog": view})
}

// LikeBlog toggles the caller's like on a blog. The current state is derived
// from like-notification existence rather than a client-reported flag, but the
// check and the counter update are still separate writes.
func (h *BlogHandler) LikeBlog(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.LikeBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blogID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid blog id")
	}

	ctx := c.Request().Context()

	blog, err := h.blogRepository.GetByID(ctx, blogID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked, err := h.notificationRepository.LikeExists(ctx, userID, blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	delta := int64(1)
	if liked {
		delta = -1
	}
	if err := h.blogRepository.IncrementLikes(ctx, blogID, delta); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if liked {
		if err := h.notificationRepository.DeleteLike(ctx, userID, blogID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"liked_by_user": false})
	}

	notification := &models.Notification{
		Type:            models.NotificationLike,
		Blog:            blogID,
		NotificationFor: blog.Author,
		User:            userID,
	}
	if err := h.notificationRepository.CreateNotification(ctx, notification); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked_by_user": true})
}

// IsLikedByUser reports whether the caller currently likes the blog
func (h *BlogHandler) IsLikedByUser(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.LikeBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blogID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid blog id")
	}

	liked, err := h.notificationRepository.LikeExists(c.Request().Context(), userID, blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"result": liked})
}

// GetUserWrittenBlogs returns a page of the caller's blogs for the dashboard
func (h *BlogHandler) GetUserWrittenBlogs(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UserWrittenBlogsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Page < 1 {
		req.Page = 1
	}

	skip := (req.Page-1)*blogPageSize - req.DeletedDocCount
	if skip < 0 {
		skip = 0
	}

	blogs, err := h.blogRepository.FindByAuthor(c.Request().Context(), userID, req.Draft, req.Query, skip, blogPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"blogs": blogs})
}

// GetUserWrittenBlogsCount counts the caller's blogs for the dashboard
func (h *BlogHandler) GetUserWrittenBlogsCount(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UserWrittenBlogsCountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	count, err := h.blogRepository.CountByAuthor(c.Request().Context(), userID, req.Draft, req.Query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"totalDocs": count})
}

// DeleteBlog removes a blog and best-effort cleans up its comments,
// notifications and the author's references. Cleanup failures are logged,
// not surfaced.
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.DeleteBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	blog, err := h.blogRepository.GetByBlogID(ctx, req.BlogID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if blog.Author != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to delete this blog")
	}

	if _, err := h.blogRepository.DeleteBlog(ctx, req.BlogID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notificationRepository.DeleteByBlog(ctx, blog.ID); err != nil {
		log.Printf("Error deleting blog notifications: %v", err)
	}
	if err := h.commentRepository.DeleteByBlogID(ctx, blog.ID); err != nil {
		log.Printf("Error deleting blog comments: %v", err)
	}
	if err := h.userRepository.DetachBlog(ctx, userID, blog.ID); err != nil {
		log.Printf("Error detaching blog from user: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "done"})
}
