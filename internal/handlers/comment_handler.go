package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/arifdn/inkpot/backend/internal/models"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const commentPageSize = 5

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	blogRepository         repositories.BlogRepository
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, blogRepo repositories.BlogRepository, notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		blogRepository:         blogRepo,
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/add-comment", h.AddComment, requireAuth)
	e.POST("/get-blog-comments", h.GetBlogComments)
	e.POST("/get-replies", h.GetReplies)
	e.POST("/delete-comment", h.DeleteComment, requireAuth)
}

// enrichComments joins author info into comments, caching repeated authors.
func (h *CommentHandler) enrichComments(ctx context.Context, comments []models.Comment) []models.CommentView {
	enriched := make([]models.CommentView, len(comments))
	authorCache := make(map[primitive.ObjectID]models.UserPreview)

	for i, cm := range comments {
		enriched[i] = models.CommentView{Comment: cm}
		if author, ok := authorCache[cm.CommentedBy]; ok {
			enriched[i].CommentedBy = author
			continue
		}
		user, err := h.userRepository.GetUserByID(ctx, cm.CommentedBy)
		if err == nil {
			preview := user.ToPreview()
			authorCache[cm.CommentedBy] = preview
			enriched[i].CommentedBy = preview
		}
	}
	return enriched
}

// AddComment inserts a comment or reply, bumps the blog's tallies and fans
// out a notification. The insert must succeed; every later step is
// best-effort and only logged on failure.
func (h *CommentHandler) AddComment(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if len(req.Comment) == 0 {
		return echo.NewHTTPError(http.StatusForbidden, "Write something to leave a comment...")
	}

	blogID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid blog id")
	}
	blogAuthor, err := primitive.ObjectIDFromHex(req.BlogAuthor)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid blog author id")
	}

	comment := &models.Comment{
		BlogID:      blogID,
		BlogAuthor:  blogAuthor,
		Comment:     req.Comment,
		CommentedBy: userID,
	}

	var parentID primitive.ObjectID
	if req.ReplyingTo != "" {
		parentID, err = primitive.ObjectIDFromHex(req.ReplyingTo)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parent comment id")
		}
		comment.Parent = parentID
		comment.IsReply = true
	}

	ctx := c.Request().Context()

	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	parentDelta := int64(1)
	if comment.IsReply {
		parentDelta = 0
	}
	if err := h.blogRepository.AttachComment(ctx, blogID, comment.ID, parentDelta); err != nil {
		log.Printf("Error while creating a comment: %v", err)
	}

	notification := &models.Notification{
		Type:            models.NotificationComment,
		Blog:            blogID,
		NotificationFor: blogAuthor,
		User:            userID,
		Comment:         comment.ID,
	}

	if comment.IsReply {
		notification.Type = models.NotificationReply
		notification.RepliedOnComment = parentID

		// a reply notifies the parent comment's author, not the blog author
		parent, err := h.commentRepository.AddChild(ctx, parentID, comment.ID)
		if err != nil {
			log.Printf("Error updating parent comment: %v", err)
		} else {
			notification.NotificationFor = parent.CommentedBy
		}

		if req.NotificationID != "" {
			if notifID, err := primitive.ObjectIDFromHex(req.NotificationID); err == nil {
				if err := h.notificationRepository.SetReply(ctx, notifID, comment.ID); err != nil {
					log.Printf("Error attaching reply to notification: %v", err)
				}
			}
		}
	}

	if err := h.notificationRepository.CreateNotification(ctx, notification); err != nil {
		log.Printf("Error creating notification: %v", err)
	}

	return c.JSON(http.StatusOK, models.AddCommentResponse{
		Comment:     comment.Comment,
		CommentedAt: comment.CommentedAt,
		ID:          comment.ID,
		UserID:      userID.Hex(),
		Children:    comment.Children,
	})
}

// GetBlogComments returns a page of a blog's top-level comments
func (h *CommentHandler) GetBlogComments(c echo.Context) error {
	var req models.GetBlogCommentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blogID, err := primitive.ObjectIDFromHex(req.BlogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid blog id")
	}

	ctx := c.Request().Context()
	comments, err := h.commentRepository.GetBlogComments(ctx, blogID, req.Skip, commentPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichComments(ctx, comments))
}

// GetReplies resolves a page of one comment's children
func (h *CommentHandler) GetReplies(c echo.Context) error {
	var req models.GetRepliesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	commentID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment id")
	}

	ctx := c.Request().Context()

	parent, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	replies, err := h.commentRepository.GetByIDs(ctx, parent.Children, req.Skip, commentPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"replies": h.enrichComments(ctx, replies)})
}

// DeleteComment removes a comment and cascades through its replies. Only the
// comment's author or the blog's author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.DeleteCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	commentID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment id")
	}

	ctx := c.Request().Context()

	comment, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if userID != comment.CommentedBy && userID != comment.BlogAuthor {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to delete this comment")
	}

	h.deleteCommentCascade(ctx, commentID)

	return c.JSON(http.StatusOK, echo.Map{"status": "Done"})
}

// deleteCommentCascade deletes one comment, detaches it from its parent,
// cleans up its notifications and counters, then recurses into its children.
// The steps are independent writes; a failed step is logged and the cascade
// continues, so a partial failure can leave stale counters behind.
func (h *CommentHandler) deleteCommentCascade(ctx context.Context, id primitive.ObjectID) {
	comment, err := h.commentRepository.DeleteComment(ctx, id)
	if err != nil {
		log.Printf("Error deleting comment %s: %v", id.Hex(), err)
		return
	}

	if !comment.Parent.IsZero() {
		if err := h.commentRepository.RemoveChild(ctx, comment.Parent, id); err != nil {
			log.Printf("Error removing comment from parent: %v", err)
		}
	}

	if err := h.notificationRepository.DeleteByComment(ctx, id); err != nil {
		log.Printf("Error deleting comment notification: %v", err)
	}
	if err := h.notificationRepository.ClearReply(ctx, id); err != nil {
		log.Printf("Error clearing reply notification: %v", err)
	}

	parentDelta := int64(1)
	if !comment.Parent.IsZero() {
		parentDelta = 0
	}
	if err := h.blogRepository.DetachComment(ctx, comment.BlogID, id, parentDelta); err != nil {
		log.Printf("Error updating blog counters: %v", err)
	}

	for _, child := range comment.Children {
		h.deleteCommentCascade(ctx, child)
	}
}
