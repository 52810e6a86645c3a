// Package memory provides a mutex-guarded in-memory Repository
// implementation. It backs the service tests and local development
// without a database, while honoring the same error contract as the
// PostgreSQL implementation, including guarded status updates.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

type store struct {
	mu sync.Mutex

	users         map[uint]*models.User
	orders        map[uint]*models.RepairOrder
	comments      map[uint]*models.Comment
	categories    map[uint]*models.Category
	announcements map[uint]*models.Announcement

	nextUserID         uint
	nextOrderID        uint
	nextImageID        uint
	nextCommentID      uint
	nextCategoryID     uint
	nextAnnouncementID uint
}

// Repository implements repositories.Repository over process memory.
type Repository struct {
	s *store
}

func NewRepository() *Repository {
	return &Repository{s: &store{
		users:         make(map[uint]*models.User),
		orders:        make(map[uint]*models.RepairOrder),
		comments:      make(map[uint]*models.Comment),
		categories:    make(map[uint]*models.Category),
		announcements: make(map[uint]*models.Announcement),
	}}
}

func (r *Repository) User() repositories.UserRepository                 { return &userStore{s: r.s} }
func (r *Repository) RepairOrder() repositories.RepairOrderRepository   { return &orderStore{s: r.s} }
func (r *Repository) Comment() repositories.CommentRepository           { return &commentStore{s: r.s} }
func (r *Repository) Category() repositories.CategoryRepository         { return &categoryStore{s: r.s} }
func (r *Repository) Announcement() repositories.AnnouncementRepository { return &announcementStore{s: r.s} }

// WithTransaction runs fn against the same store. Writes are not rolled
// back on error; the single mutex already serializes the guarded status
// updates that the services rely on for correctness.
func (r *Repository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *Repository) Ping(_ context.Context) error { return nil }
func (r *Repository) Close() error                 { return nil }

// AddCategory inserts a category directly, bypassing the read-only
// CategoryRepository surface. Used to stand in for the bootstrap seed.
func (r *Repository) AddCategory(category *models.Category) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCategoryID++
	category.ID = r.s.nextCategoryID
	cp := *category
	r.s.categories[category.ID] = &cp
}

// ===== USERS =====

type userStore struct {
	s *store
}

func (u *userStore) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	u.s.nextUserID++
	user.ID = u.s.nextUserID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	u.s.users[user.ID] = &cp
	return nil
}

func (u *userStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (u *userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, user := range u.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userStore) List(_ context.Context) ([]*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	users := make([]*models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (u *userStore) Update(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	existing, ok := u.s.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Name = user.Name
	existing.Role = user.Role
	existing.Phone = user.Phone
	existing.Email = user.Email
	existing.Avatar = user.Avatar
	existing.Password = user.Password
	existing.UpdatedAt = time.Now()
	return nil
}

func (u *userStore) Delete(_ context.Context, id uint) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(u.s.users, id)
	return nil
}

func (u *userStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, user := range u.s.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// ===== REPAIR ORDERS =====

type orderStore struct {
	s *store
}

func (o *orderStore) Create(_ context.Context, order *models.RepairOrder) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	o.s.nextOrderID++
	order.ID = o.s.nextOrderID
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Images {
		o.s.nextImageID++
		order.Images[i].ID = o.s.nextImageID
		order.Images[i].RepairOrderID = order.ID
	}
	cp := o.clone(order)
	o.s.orders[order.ID] = cp
	return nil
}

func (o *orderStore) GetByID(_ context.Context, id uint) (*models.RepairOrder, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	order, ok := o.s.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := o.clone(order)
	o.resolve(cp)
	return cp, nil
}

func (o *orderStore) List(_ context.Context, filters repositories.RepairOrderFilters) ([]*models.RepairOrder, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	var orders []*models.RepairOrder
	for _, order := range o.s.orders {
		if filters.StudentID != nil && order.StudentID != *filters.StudentID {
			continue
		}
		if filters.RepairmanID != nil && (order.RepairmanID == nil || *order.RepairmanID != *filters.RepairmanID) {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		cp := o.clone(order)
		o.resolve(cp)
		orders = append(orders, cp)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (o *orderStore) UpdateStatusFrom(_ context.Context, order *models.RepairOrder, from models.OrderStatus) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	existing, ok := o.s.orders[order.ID]
	if !ok || existing.Status != from {
		return repositories.ErrStaleStatus
	}
	existing.Status = order.Status
	existing.RepairmanID = order.RepairmanID
	existing.CompletedAt = order.CompletedAt
	existing.UpdatedAt = time.Now()
	return nil
}

func (o *orderStore) clone(order *models.RepairOrder) *models.RepairOrder {
	cp := *order
	if order.RepairmanID != nil {
		id := *order.RepairmanID
		cp.RepairmanID = &id
	}
	if order.CompletedAt != nil {
		t := *order.CompletedAt
		cp.CompletedAt = &t
	}
	if order.AppointmentTime != nil {
		t := *order.AppointmentTime
		cp.AppointmentTime = &t
	}
	cp.Images = append([]models.RepairImage(nil), order.Images...)
	cp.Student, cp.Repairman, cp.Category = nil, nil, nil
	return &cp
}

// resolve mirrors the batched preloads of the database implementation.
func (o *orderStore) resolve(order *models.RepairOrder) {
	if u, ok := o.s.users[order.StudentID]; ok {
		cp := *u
		order.Student = &cp
	}
	if order.RepairmanID != nil {
		if u, ok := o.s.users[*order.RepairmanID]; ok {
			cp := *u
			order.Repairman = &cp
		}
	}
	if c, ok := o.s.categories[order.CategoryID]; ok {
		cp := *c
		order.Category = &cp
	}
}

// ===== COMMENTS =====

type commentStore struct {
	s *store
}

func (c *commentStore) Create(_ context.Context, comment *models.Comment) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, existing := range c.s.comments {
		if existing.RepairOrderID == comment.RepairOrderID {
			return repositories.ErrDuplicate
		}
	}
	c.s.nextCommentID++
	comment.ID = c.s.nextCommentID
	comment.CreatedAt = time.Now()
	cp := *comment
	c.s.comments[comment.ID] = &cp
	return nil
}

func (c *commentStore) GetByOrderID(_ context.Context, orderID uint) (*models.Comment, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, comment := range c.s.comments {
		if comment.RepairOrderID == orderID {
			cp := *comment
			if u, ok := c.s.users[comment.StudentID]; ok {
				ucp := *u
				cp.Student = &ucp
			}
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (c *commentStore) ExistsByOrderID(_ context.Context, orderID uint) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, comment := range c.s.comments {
		if comment.RepairOrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

// ===== CATEGORIES =====

type categoryStore struct {
	s *store
}

func (c *categoryStore) GetByID(_ context.Context, id uint) (*models.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	category, ok := c.s.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *category
	return &cp, nil
}

func (c *categoryStore) List(_ context.Context) ([]*models.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	categories := make([]*models.Category, 0, len(c.s.categories))
	for _, category := range c.s.categories {
		cp := *category
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// ===== ANNOUNCEMENTS =====

type announcementStore struct {
	s *store
}

func (a *announcementStore) Create(_ context.Context, announcement *models.Announcement) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.nextAnnouncementID++
	announcement.ID = a.s.nextAnnouncementID
	now := time.Now()
	announcement.CreatedAt = now
	announcement.UpdatedAt = now
	cp := *announcement
	a.s.announcements[announcement.ID] = &cp
	return nil
}

func (a *announcementStore) GetByID(_ context.Context, id uint) (*models.Announcement, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	announcement, ok := a.s.announcements[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *announcement
	if u, ok := a.s.users[announcement.CreatedBy]; ok {
		ucp := *u
		cp.Author = &ucp
	}
	return &cp, nil
}

func (a *announcementStore) List(_ context.Context) ([]*models.Announcement, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	announcements := make([]*models.Announcement, 0, len(a.s.announcements))
	for _, announcement := range a.s.announcements {
		cp := *announcement
		if u, ok := a.s.users[announcement.CreatedBy]; ok {
			ucp := *u
			cp.Author = &ucp
		}
		announcements = append(announcements, &cp)
	}
	sort.Slice(announcements, func(i, j int) bool { return announcements[i].ID > announcements[j].ID })
	return announcements, nil
}

func (a *announcementStore) Update(_ context.Context, announcement *models.Announcement) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	existing, ok := a.s.announcements[announcement.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Title = announcement.Title
	existing.Content = announcement.Content
	existing.UpdatedAt = time.Now()
	return nil
}

func (a *announcementStore) Delete(_ context.Context, id uint) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.announcements[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(a.s.announcements, id)
	return nil
}
