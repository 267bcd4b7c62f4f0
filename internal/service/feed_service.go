package service

import (
	"context"
	"time"

	"yatube/internal/cache"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

// FeedService assembles the read-side pages: the index feed, group and
// profile feeds, the personalized following feed, and post detail.
type FeedService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	perPage  int
	indexTTL time.Duration
}

// FeedPage is a single page of a post feed.
type FeedPage struct {
	Posts []models.Post   `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// GroupPage is a group's description plus one page of its posts.
type GroupPage struct {
	Group models.Group `json:"group"`
	FeedPage
}

// ProfilePage is an author's profile plus one page of their posts. Following
// reflects the viewing user specifically; anonymous viewers always see false.
type ProfilePage struct {
	Author     models.User `json:"author"`
	PostsCount int64       `json:"posts_count"`
	Followers  int64       `json:"followers"`
	Following  bool        `json:"following"`
	IsOwner    bool        `json:"is_owner"`
	FeedPage
}

// PostPage is a single post with its comments and the author's post count.
type PostPage struct {
	Post             models.Post      `json:"post"`
	Comments         []models.Comment `json:"comments"`
	AuthorPostsCount int64            `json:"author_posts_count"`
	IsAuthor         bool             `json:"is_author"`
}

func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	perPage int,
	indexTTL time.Duration,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		perPage:     perPage,
		indexTTL:    indexTTL,
	}
}

// Index returns one page of the sitewide feed. Pages are served from Redis
// for a short TTL, so fresh posts may take up to that long to appear. Writes
// never invalidate; only expiry or an explicit cache clear does.
func (s *FeedService) Index(ctx context.Context, rawPage string) (*FeedPage, error) {
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	page := pagination.New(total, s.perPage).Resolve(rawPage)

	result := &FeedPage{}
	hit, err := cache.Aside(ctx, cache.IndexPageKey(page.Number), result, s.indexTTL, func() error {
		posts, err := s.postRepo.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		result.Posts = posts
		result.Page = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hit {
		middleware.FeedCacheHits.WithLabelValues("hit").Inc()
	} else {
		middleware.FeedCacheHits.WithLabelValues("miss").Inc()
	}
	return result, nil
}

// GroupFeed returns one page of the group's posts, newest first.
func (s *FeedService) GroupFeed(ctx context.Context, slug, rawPage string) (*GroupPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	page := pagination.New(total, s.perPage).Resolve(rawPage)

	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	return &GroupPage{
		Group:    *group,
		FeedPage: FeedPage{Posts: posts, Page: page},
	}, nil
}

// ProfileFeed returns the author's profile page as seen by viewerID.
// viewerID 0 means an anonymous viewer.
func (s *FeedService) ProfileFeed(ctx context.Context, username, rawPage string, viewerID uint) (*ProfilePage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	page := pagination.New(total, s.perPage).Resolve(rawPage)

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfilePage{
		Author:     *author,
		PostsCount: total,
		Followers:  followers,
		Following:  following,
		IsOwner:    viewerID == author.ID,
		FeedPage:   FeedPage{Posts: posts, Page: page},
	}, nil
}

// FollowingFeed returns one page of posts by the authors userID follows.
// A reader following nobody gets a single empty page.
func (s *FeedService) FollowingFeed(ctx context.Context, userID uint, rawPage string) (*FeedPage, error) {
	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	page := pagination.New(total, s.perPage).Resolve(rawPage)

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	return &FeedPage{Posts: posts, Page: page}, nil
}

// PostDetail returns the post with its comments, newest first.
func (s *FeedService) PostDetail(ctx context.Context, postID, viewerID uint) (*PostPage, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorTotal, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Post:             *post,
		Comments:         comments,
		AuthorPostsCount: authorTotal,
		IsAuthor:         viewerID != 0 && viewerID == post.AuthorID,
	}, nil
}

// ClearIndexCache drops every cached index feed page immediately.
func (s *FeedService) ClearIndexCache(ctx context.Context) error {
	return cache.InvalidateIndex(ctx)
}
