package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/helpers"
)

// In-memory repositories backing the service tests. They honor the same
// contracts as the Postgres implementations: nil for missing rows,
// repository.ErrDuplicate on uniqueness violations, repository.ErrNotFound
// on zero-row deletes.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("u%d", r.seq)
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = r.nextID()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) IsPrivate(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	return u.IsPrivate, nil
}

func (r *memUserRepo) SetPrivate(_ context.Context, id string, private bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsPrivate = private
	return nil
}

func (r *memUserRepo) SetProfilePicture(_ context.Context, id, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	u.ProfilePicture = key
	return key, nil
}

func (r *memUserRepo) GetRecommendedPaginated(_ context.Context, userID string, p pagination.Offset) ([]entity.UserView, error) {
	// Recommendation joins are exercised against Postgres; tests that reach
	// this path only need a deterministic page.
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.UserView
	for _, u := range sortedUsers(r.users) {
		if u.ID == userID {
			continue
		}
		out = append(out, u.View())
	}
	return page(out, p), nil
}

func (r *memUserRepo) GetByUsernamePaginated(_ context.Context, username string, p pagination.Cursor) ([]entity.UserView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.UserView
	for _, u := range sortedUsers(r.users) {
		if strings.Contains(u.Username, username) {
			out = append(out, u.View())
		}
	}
	return cursorPage(out, userViewID, p), nil
}

func sortedUsers(m map[string]*entity.User) []*entity.User {
	out := make([]*entity.User, 0, len(m))
	for _, u := range m {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func page(views []entity.UserView, p pagination.Offset) []entity.UserView {
	if p.Skip >= len(views) {
		return nil
	}
	views = views[p.Skip:]
	if p.Limit > 0 && len(views) > p.Limit {
		views = views[:p.Limit]
	}
	return views
}

// cursorPage applies keyset semantics over rows already in page order,
// mirroring the Postgres repositories: the cursor row itself is excluded,
// After continues forward from it, Before collects the rows immediately
// preceding it, an unknown cursor yields an empty page, and limit caps the
// page either way.
func cursorPage[T any](rows []T, id func(T) string, p pagination.Cursor) []T {
	idx := func(want string) int {
		for i := range rows {
			if id(rows[i]) == want {
				return i
			}
		}
		return -1
	}
	switch {
	case p.After != "":
		i := idx(p.After)
		if i < 0 {
			return nil
		}
		rows = rows[i+1:]
	case p.Before != "":
		i := idx(p.Before)
		if i < 0 {
			return nil
		}
		rows = rows[:i]
		if p.Limit > 0 && len(rows) > p.Limit {
			rows = rows[len(rows)-p.Limit:]
		}
		return rows
	}
	if p.Limit > 0 && len(rows) > p.Limit {
		rows = rows[:p.Limit]
	}
	return rows
}

func postID(p entity.Post) string { return p.ID }

func userViewID(v entity.UserView) string { return v.ID }

type memFollowRepo struct {
	mu    sync.Mutex
	pairs map[[2]string]bool
	users *memUserRepo
}

func newMemFollowRepo(users *memUserRepo) *memFollowRepo {
	return &memFollowRepo{pairs: make(map[[2]string]bool), users: users}
}

func (r *memFollowRepo) CheckFollow(_ context.Context, followerID, followedID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[[2]string{followerID, followedID}], nil
}

func (r *memFollowRepo) Follow(_ context.Context, followerID, followedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{followerID, followedID}
	if r.pairs[key] {
		return repository.ErrDuplicate
	}
	r.pairs[key] = true
	return nil
}

func (r *memFollowRepo) Unfollow(_ context.Context, followerID, followedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{followerID, followedID}
	if !r.pairs[key] {
		return repository.ErrNotFound
	}
	delete(r.pairs, key)
	return nil
}

func (r *memFollowRepo) GetFollowing(ctx context.Context, followerID string) ([]entity.UserView, error) {
	r.mu.Lock()
	var ids []string
	for key, ok := range r.pairs {
		if ok && key[0] == followerID {
			ids = append(ids, key[1])
		}
	}
	r.mu.Unlock()
	sort.Strings(ids)
	var out []entity.UserView
	for _, id := range ids {
		u, err := r.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			out = append(out, u.View())
		}
	}
	return out, nil
}

type memPostRepo struct {
	mu    sync.Mutex
	seq   int
	posts map[string]*entity.Post
	users *memUserRepo

	follows   *memFollowRepo
	reactions *memReactionRepo
}

func newMemPostRepo(users *memUserRepo) *memPostRepo {
	return &memPostRepo{posts: make(map[string]*entity.Post), users: users}
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	for pid, p := range r.posts {
		if p.ParentID == id {
			delete(r.posts, pid)
		}
	}
	return nil
}

func (r *memPostRepo) extend(ctx context.Context, p *entity.Post) (entity.ExtendedPost, error) {
	ep := entity.ExtendedPost{Post: *p}
	u, err := r.users.GetByID(ctx, p.AuthorID)
	if err != nil {
		return ep, err
	}
	if u != nil {
		ep.Author = u.View()
	}
	if r.reactions != nil {
		ep.QtyLikes, ep.QtyRetweets = r.reactions.counts(p.ID)
	}
	r.mu.Lock()
	for _, other := range r.posts {
		if other.ParentID == p.ID {
			ep.QtyComments++
		}
	}
	r.mu.Unlock()
	return ep, nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id string) (*entity.ExtendedPost, error) {
	r.mu.Lock()
	p, ok := r.posts[id]
	if !ok {
		r.mu.Unlock()
		return nil, nil
	}
	cp := *p
	r.mu.Unlock()
	ep, err := r.extend(ctx, &cp)
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

func (r *memPostRepo) list(filter func(*entity.Post) bool) []entity.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Post
	for _, p := range r.posts {
		if filter(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memPostRepo) extendAll(ctx context.Context, posts []entity.Post) ([]entity.ExtendedPost, error) {
	out := make([]entity.ExtendedPost, 0, len(posts))
	for i := range posts {
		ep, err := r.extend(ctx, &posts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, nil
}

func (r *memPostRepo) visible(ctx context.Context, viewerID, authorID string) bool {
	if viewerID == authorID {
		return true
	}
	private, _ := r.users.IsPrivate(ctx, authorID)
	if !private {
		return true
	}
	if r.follows == nil {
		return false
	}
	ok, _ := r.follows.CheckFollow(ctx, viewerID, authorID)
	return ok
}

func (r *memPostRepo) GetFeedPaginated(ctx context.Context, viewerID string, p pagination.Cursor) ([]entity.ExtendedPost, error) {
	posts := r.list(func(p *entity.Post) bool { return p.Type == entity.PostTypePost })
	var filtered []entity.Post
	for _, post := range posts {
		if r.visible(ctx, viewerID, post.AuthorID) {
			filtered = append(filtered, post)
		}
	}
	return r.extendAll(ctx, cursorPage(filtered, postID, p))
}

func (r *memPostRepo) GetByAuthor(ctx context.Context, authorID string, t entity.PostType) ([]entity.ExtendedPost, error) {
	posts := r.list(func(p *entity.Post) bool { return p.AuthorID == authorID && p.Type == t })
	return r.extendAll(ctx, posts)
}

func (r *memPostRepo) GetCommentsPaginated(ctx context.Context, parentID string, p pagination.Cursor) ([]entity.ExtendedPost, error) {
	posts := r.list(func(p *entity.Post) bool { return p.ParentID == parentID })
	return r.extendAll(ctx, cursorPage(posts, postID, p))
}

func (r *memPostRepo) GetReactedPaginated(ctx context.Context, userID string, t entity.ReactionType, p pagination.Cursor) ([]entity.ExtendedPost, error) {
	if r.reactions == nil {
		return nil, nil
	}
	ids := r.reactions.reactedPostIDs(userID, t)
	posts := r.list(func(p *entity.Post) bool {
		for _, id := range ids {
			if p.ID == id {
				return true
			}
		}
		return false
	})
	return r.extendAll(ctx, cursorPage(posts, postID, p))
}

type reactionKey struct {
	userID string
	postID string
	t      entity.ReactionType
}

type memReactionRepo struct {
	mu  sync.Mutex
	set map[reactionKey]bool
}

func newMemReactionRepo() *memReactionRepo {
	return &memReactionRepo{set: make(map[reactionKey]bool)}
}

func (r *memReactionRepo) Check(_ context.Context, userID, postID string, t entity.ReactionType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set[reactionKey{userID, postID, t}], nil
}

func (r *memReactionRepo) Create(_ context.Context, userID, postID string, t entity.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reactionKey{userID, postID, t}
	if r.set[key] {
		return repository.ErrDuplicate
	}
	r.set[key] = true
	return nil
}

func (r *memReactionRepo) Delete(_ context.Context, userID, postID string, t entity.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reactionKey{userID, postID, t}
	if !r.set[key] {
		return repository.ErrNotFound
	}
	delete(r.set, key)
	return nil
}

func (r *memReactionRepo) counts(postID string) (likes, retweets int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, ok := range r.set {
		if !ok || key.postID != postID {
			continue
		}
		if key.t == entity.ReactionLike {
			likes++
		} else {
			retweets++
		}
	}
	return likes, retweets
}

func (r *memReactionRepo) reactedPostIDs(userID string, t entity.ReactionType) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for key, ok := range r.set {
		if ok && key.userID == userID && key.t == t {
			out = append(out, key.postID)
		}
	}
	sort.Strings(out)
	return out
}

type memMessageRepo struct {
	mu   sync.Mutex
	seq  int
	msgs []entity.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = fmt.Sprintf("m%d", r.seq)
	m.CreatedAt = time.Now()
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *memMessageRepo) GetHistory(_ context.Context, userID, otherUserID string) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Message
	for _, m := range r.msgs {
		if (m.SenderID == userID && m.ReceiverID == otherUserID) ||
			(m.SenderID == otherUserID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeStorage returns predictable URLs and counts signing calls.
type fakeStorage struct {
	mu       sync.Mutex
	getCalls int
	putCalls int
}

func (s *fakeStorage) SignedGetURL(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return "https://signed.example.com/get/" + key, nil
}

func (s *fakeStorage) SignedPutURL(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putCalls++
	return "https://signed.example.com/put/" + key, nil
}

// fixture wires the full service graph over the in-memory repositories.
type fixture struct {
	users     *memUserRepo
	follows   *memFollowRepo
	posts     *memPostRepo
	reactions *memReactionRepo
	messages  *memMessageRepo
	storage   *fakeStorage

	authSvc     *AuthService
	userSvc     *UserService
	postSvc     *PostService
	commentSvc  *CommentService
	reactionSvc *ReactionService
	followSvc   *FollowService
	messageSvc  *MessageService
}

func newFixture() *fixture {
	users := newMemUserRepo()
	follows := newMemFollowRepo(users)
	reactions := newMemReactionRepo()
	posts := newMemPostRepo(users)
	posts.follows = follows
	posts.reactions = reactions
	messages := newMemMessageRepo()
	storage := &fakeStorage{}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	visibility := NewVisibilityPolicy(users, follows)
	pages := PageLimits{Default: 50, Max: 100}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	postSvc := NewPostService(posts, visibility, storage, pages, logger)

	return &fixture{
		users:       users,
		follows:     follows,
		posts:       posts,
		reactions:   reactions,
		messages:    messages,
		storage:     storage,
		authSvc:     NewAuthService(users, jwt, nil, nil, "users", logger),
		userSvc:     NewUserService(users, follows, visibility, storage, nil, "users", pages, logger),
		postSvc:     postSvc,
		commentSvc:  NewCommentService(posts, visibility, postSvc, storage, pages, logger),
		reactionSvc: NewReactionService(reactions, posts, visibility, storage, pages, logger),
		followSvc:   NewFollowService(follows, users, logger),
		messageSvc:  NewMessageService(messages, follows, users, logger),
	}
}

// seedUser registers a user directly in the store.
func (f *fixture) seedUser(t *testing.T, username string, private bool) string {
	t.Helper()
	u := &entity.User{
		Email:     username + "@example.com",
		Username:  username,
		Password:  "x",
		Name:      strings.ToUpper(username[:1]) + username[1:],
		IsPrivate: private,
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u.ID
}

// seedPost creates a top-level post for the author.
func (f *fixture) seedPost(t *testing.T, authorID, content string) string {
	t.Helper()
	p := &entity.Post{AuthorID: authorID, Content: content, Type: entity.PostTypePost, Images: []string{}}
	if err := f.posts.Create(context.Background(), p); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p.ID
}

// mutualFollow links both directions.
func (f *fixture) mutualFollow(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	if err := f.follows.Follow(ctx, a, b); err != nil {
		t.Fatalf("follow %s->%s: %v", a, b, err)
	}
	if err := f.follows.Follow(ctx, b, a); err != nil {
		t.Fatalf("follow %s->%s: %v", b, a, err)
	}
}

type publishedJob struct {
	Body any
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []publishedJob
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, publishedJob{Body: body})
	return nil
}
