package handlers

// In-memory repository fakes so the handler tests run without MongoDB. Each
// fake mirrors the query semantics of its Mongo counterpart, including
// mongo.ErrNoDocuments on single-document misses.

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arifdn/inkpot/backend/internal/models"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.JoinedAt = time.Now()
	if user.Blogs == nil {
		user.Blogs = []primitive.ObjectID{}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.PersonalInfo.Email == email {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.PersonalInfo.Username == username {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetUserByUsername(ctx, username)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) SearchUsers(_ context.Context, query string, limit int64) ([]models.User, error) {
	var matched []models.User
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.PersonalInfo.Username), strings.ToLower(query)) {
			matched = append(matched, *user)
		}
		if int64(len(matched)) == limit {
			break
		}
	}
	return matched, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	if user, ok := r.users[id]; ok {
		user.PersonalInfo.Password = hash
	}
	return nil
}

func (r *fakeUserRepo) UpdateProfileImg(_ context.Context, id primitive.ObjectID, url string) error {
	if user, ok := r.users[id]; ok {
		user.PersonalInfo.ProfileImg = url
	}
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, username, bio string, links models.SocialLinks) error {
	if user, ok := r.users[id]; ok {
		user.PersonalInfo.Username = username
		user.PersonalInfo.Bio = bio
		user.SocialLinks = links
	}
	return nil
}

func (r *fakeUserRepo) AttachBlog(_ context.Context, userID, blogID primitive.ObjectID, postsDelta int64) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	user.Blogs = append(user.Blogs, blogID)
	user.AccountInfo.TotalPosts += postsDelta
	return nil
}

func (r *fakeUserRepo) DetachBlog(_ context.Context, userID, blogID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	for i, id := range user.Blogs {
		if id == blogID {
			user.Blogs = append(user.Blogs[:i], user.Blogs[i+1:]...)
			break
		}
	}
	user.AccountInfo.TotalPosts--
	return nil
}

func (r *fakeUserRepo) IncrementTotalReads(_ context.Context, userID primitive.ObjectID, delta int64) error {
	if user, ok := r.users[userID]; ok {
		user.AccountInfo.TotalReads += delta
	}
	return nil
}

type fakeBlogRepo struct {
	blogs map[primitive.ObjectID]*models.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[primitive.ObjectID]*models.Blog)}
}

func (r *fakeBlogRepo) CreateBlog(_ context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	blog.PublishedAt = time.Now()
	if blog.Comments == nil {
		blog.Comments = []primitive.ObjectID{}
	}
	r.blogs[blog.ID] = blog
	return nil
}

func (r *fakeBlogRepo) UpdateBlog(_ context.Context, blogID string, update repositories.BlogUpdate) error {
	for _, blog := range r.blogs {
		if blog.BlogID == blogID {
			blog.Title = update.Title
			blog.Banner = update.Banner
			blog.Des = update.Des
			blog.Content = update.Content
			blog.Tags = update.Tags
			blog.Draft = update.Draft
			return nil
		}
	}
	return fmt.Errorf("blog not found")
}

func (r *fakeBlogRepo) GetByBlogID(_ context.Context, blogID string) (*models.Blog, error) {
	for _, blog := range r.blogs {
		if blog.BlogID == blogID {
			return blog, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBlogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return blog, nil
}

func (r *fakeBlogRepo) published() []models.Blog {
	var blogs []models.Blog
	for _, blog := range r.blogs {
		if !blog.Draft {
			blogs = append(blogs, *blog)
		}
	}
	return blogs
}

func pageBlogs(blogs []models.Blog, skip, limit int64) []models.Blog {
	if skip >= int64(len(blogs)) {
		return nil
	}
	blogs = blogs[skip:]
	if limit < int64(len(blogs)) {
		blogs = blogs[:limit]
	}
	return blogs
}

func (r *fakeBlogRepo) GetLatest(_ context.Context, skip, limit int64) ([]models.Blog, error) {
	blogs := r.published()
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].PublishedAt.After(blogs[j].PublishedAt) })
	return pageBlogs(blogs, skip, limit), nil
}

func (r *fakeBlogRepo) CountPublished(_ context.Context) (int64, error) {
	return int64(len(r.published())), nil
}

func (r *fakeBlogRepo) GetTrending(_ context.Context, limit int64) ([]models.Blog, error) {
	blogs := r.published()
	sort.Slice(blogs, func(i, j int) bool {
		a, b := blogs[i], blogs[j]
		if a.Activity.TotalReads != b.Activity.TotalReads {
			return a.Activity.TotalReads > b.Activity.TotalReads
		}
		if a.Activity.TotalLikes != b.Activity.TotalLikes {
			return a.Activity.TotalLikes > b.Activity.TotalLikes
		}
		return a.PublishedAt.After(b.PublishedAt)
	})
	return pageBlogs(blogs, 0, limit), nil
}

func matchesSearch(blog models.Blog, filter repositories.BlogSearchFilter) bool {
	if blog.Draft {
		return false
	}
	switch {
	case filter.Tag != "":
		if filter.EliminateBlog != "" && blog.BlogID == filter.EliminateBlog {
			return false
		}
		for _, tag := range blog.Tags {
			if tag == filter.Tag {
				return true
			}
		}
		return false
	case filter.Query != "":
		return strings.Contains(strings.ToLower(blog.Title), strings.ToLower(filter.Query))
	case !filter.Author.IsZero():
		return blog.Author == filter.Author
	}
	return true
}

func (r *fakeBlogRepo) Search(_ context.Context, filter repositories.BlogSearchFilter, skip, limit int64) ([]models.Blog, error) {
	var blogs []models.Blog
	for _, blog := range r.blogs {
		if matchesSearch(*blog, filter) {
			blogs = append(blogs, *blog)
		}
	}
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].PublishedAt.After(blogs[j].PublishedAt) })
	return pageBlogs(blogs, skip, limit), nil
}

func (r *fakeBlogRepo) CountSearch(ctx context.Context, filter repositories.BlogSearchFilter) (int64, error) {
	filter.EliminateBlog = ""
	blogs, err := r.Search(ctx, filter, 0, int64(len(r.blogs)))
	return int64(len(blogs)), err
}

func (r *fakeBlogRepo) FindByAuthor(_ context.Context, author primitive.ObjectID, draft bool, query string, skip, limit int64) ([]models.Blog, error) {
	var blogs []models.Blog
	for _, blog := range r.blogs {
		if blog.Author == author && blog.Draft == draft &&
			strings.Contains(strings.ToLower(blog.Title), strings.ToLower(query)) {
			blogs = append(blogs, *blog)
		}
	}
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].PublishedAt.After(blogs[j].PublishedAt) })
	return pageBlogs(blogs, skip, limit), nil
}

func (r *fakeBlogRepo) CountByAuthor(ctx context.Context, author primitive.ObjectID, draft bool, query string) (int64, error) {
	blogs, err := r.FindByAuthor(ctx, author, draft, query, 0, int64(len(r.blogs)))
	return int64(len(blogs)), err
}

func (r *fakeBlogRepo) IncrementReads(ctx context.Context, blogID string, delta int64) error {
	blog, err := r.GetByBlogID(ctx, blogID)
	if err == nil {
		blog.Activity.TotalReads += delta
	}
	return nil
}

func (r *fakeBlogRepo) IncrementLikes(_ context.Context, id primitive.ObjectID, delta int64) error {
	if blog, ok := r.blogs[id]; ok {
		blog.Activity.TotalLikes += delta
	}
	return nil
}

func (r *fakeBlogRepo) AttachComment(_ context.Context, blogID, commentID primitive.ObjectID, parentDelta int64) error {
	blog, ok := r.blogs[blogID]
	if !ok {
		return nil
	}
	blog.Comments = append(blog.Comments, commentID)
	blog.Activity.TotalComments++
	blog.Activity.TotalParentComments += parentDelta
	return nil
}

func (r *fakeBlogRepo) DetachComment(_ context.Context, blogID, commentID primitive.ObjectID, parentDelta int64) error {
	blog, ok := r.blogs[blogID]
	if !ok {
		return nil
	}
	for i, id := range blog.Comments {
		if id == commentID {
			blog.Comments = append(blog.Comments[:i], blog.Comments[i+1:]...)
			break
		}
	}
	blog.Activity.TotalComments--
	blog.Activity.TotalParentComments -= parentDelta
	return nil
}

func (r *fakeBlogRepo) DeleteBlog(ctx context.Context, blogID string) (*models.Blog, error) {
	blog, err := r.GetByBlogID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	delete(r.blogs, blog.ID)
	return blog, nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[primitive.ObjectID]*models.Comment)}
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CommentedAt = time.Now()
	if comment.Children == nil {
		comment.Children = []primitive.ObjectID{}
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return comment, nil
}

func sortNewestFirst(comments []models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CommentedAt.After(comments[j].CommentedAt)
	})
}

func pageComments(comments []models.Comment, skip, limit int64) []models.Comment {
	if skip >= int64(len(comments)) {
		return nil
	}
	comments = comments[skip:]
	if limit < int64(len(comments)) {
		comments = comments[:limit]
	}
	return comments
}

func (r *fakeCommentRepo) GetBlogComments(_ context.Context, blogID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	var comments []models.Comment
	for _, comment := range r.comments {
		if comment.BlogID == blogID && !comment.IsReply {
			comments = append(comments, *comment)
		}
	}
	sortNewestFirst(comments)
	return pageComments(comments, skip, limit), nil
}

func (r *fakeCommentRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	var comments []models.Comment
	for _, id := range ids {
		if comment, ok := r.comments[id]; ok {
			comments = append(comments, *comment)
		}
	}
	sortNewestFirst(comments)
	return pageComments(comments, skip, limit), nil
}

func (r *fakeCommentRepo) AddChild(_ context.Context, parentID, childID primitive.ObjectID) (*models.Comment, error) {
	parent, ok := r.comments[parentID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	before := *parent
	parent.Children = append(parent.Children, childID)
	return &before, nil
}

func (r *fakeCommentRepo) RemoveChild(_ context.Context, parentID, childID primitive.ObjectID) error {
	parent, ok := r.comments[parentID]
	if !ok {
		return nil
	}
	for i, id := range parent.Children {
		if id == childID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteComment(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.comments, id)
	return comment, nil
}

func (r *fakeCommentRepo) DeleteByBlogID(_ context.Context, blogID primitive.ObjectID) error {
	for id, comment := range r.comments {
		if comment.BlogID == blogID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) LikeExists(_ context.Context, userID, blogID primitive.ObjectID) (bool, error) {
	for _, n := range r.notifications {
		if n.User == userID && n.Blog == blogID && n.Type == models.NotificationLike {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) DeleteLike(_ context.Context, userID, blogID primitive.ObjectID) error {
	for i, n := range r.notifications {
		if n.User == userID && n.Blog == blogID && n.Type == models.NotificationLike {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) SetReply(_ context.Context, notificationID, commentID primitive.ObjectID) error {
	for _, n := range r.notifications {
		if n.ID == notificationID {
			n.Reply = commentID
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByComment(_ context.Context, commentID primitive.ObjectID) error {
	for i, n := range r.notifications {
		if n.Comment == commentID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) ClearReply(_ context.Context, commentID primitive.ObjectID) error {
	for _, n := range r.notifications {
		if n.Reply == commentID {
			n.Reply = primitive.NilObjectID
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByBlog(_ context.Context, blogID primitive.ObjectID) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.Blog != blogID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func inFeed(n *models.Notification, userID primitive.ObjectID, filter string) bool {
	if n.NotificationFor != userID || n.User == userID {
		return false
	}
	if filter != "" && filter != "all" && n.Type != filter {
		return false
	}
	return true
}

func (r *fakeNotificationRepo) HasUnseen(_ context.Context, userID primitive.ObjectID) (bool, error) {
	for _, n := range r.notifications {
		if inFeed(n, userID, "all") && !n.Seen {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) GetNotifications(_ context.Context, userID primitive.ObjectID, filter string, skip, limit int64) ([]models.Notification, error) {
	var feed []models.Notification
	for _, n := range r.notifications {
		if inFeed(n, userID, filter) {
			feed = append(feed, *n)
		}
	}
	sort.Slice(feed, func(i, j int) bool { return feed[i].CreatedAt.After(feed[j].CreatedAt) })
	if skip >= int64(len(feed)) {
		return nil, nil
	}
	feed = feed[skip:]
	if limit < int64(len(feed)) {
		feed = feed[:limit]
	}
	return feed, nil
}

func (r *fakeNotificationRepo) MarkSeen(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		for _, n := range r.notifications {
			if n.ID == id {
				n.Seen = true
			}
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountNotifications(_ context.Context, userID primitive.ObjectID, filter string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if inFeed(n, userID, filter) {
			count++
		}
	}
	return count, nil
}
