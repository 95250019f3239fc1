package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"drivehub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryNodeRepository is an in-memory NodeRepository used by tests and
// local development. It mirrors the Mongo implementation's contract,
// including idempotent hard deletes and folders-first child ordering.
type MemoryNodeRepository struct {
	mu    sync.RWMutex
	nodes map[primitive.ObjectID]*models.Node
}

func NewMemoryNodeRepository() *MemoryNodeRepository {
	return &MemoryNodeRepository{nodes: make(map[primitive.ObjectID]*models.Node)}
}

func (r *MemoryNodeRepository) Create(ctx context.Context, node *models.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if node.ID.IsZero() {
		node.ID = primitive.NewObjectID()
	}
	if node.SharedWith == nil {
		node.SharedWith = []models.ShareEntry{}
	}
	clone := *node
	r.nodes[node.ID] = &clone
	return nil
}

func (r *MemoryNodeRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, ok := r.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *node
	return &clone, nil
}

func (r *MemoryNodeRepository) ListChildren(ctx context.Context, parent *primitive.ObjectID, visibleTo primitive.ObjectID, activeOnly bool) ([]models.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var children []models.Node
	for _, node := range r.nodes {
		if !sameParent(node.ParentID, parent) {
			continue
		}
		if activeOnly && node.IsDeleted {
			continue
		}
		if !visibleTo.IsZero() && !visible(node, visibleTo) {
			continue
		}
		children = append(children, *node)
	}

	sort.Slice(children, func(i, j int) bool {
		if children[i].IsFolder != children[j].IsFolder {
			return children[i].IsFolder
		}
		return strings.Compare(children[i].Name, children[j].Name) < 0
	})
	return children, nil
}

func (r *MemoryNodeRepository) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	return r.patch(id, func(n *models.Node) { n.Name = name })
}

func (r *MemoryNodeRepository) SetStarred(ctx context.Context, id primitive.ObjectID, starred bool) error {
	return r.patch(id, func(n *models.Node) { n.Starred = starred })
}

func (r *MemoryNodeRepository) SetShares(ctx context.Context, id primitive.ObjectID, shares []models.ShareEntry) error {
	cloned := make([]models.ShareEntry, len(shares))
	copy(cloned, shares)
	return r.patch(id, func(n *models.Node) { n.SharedWith = cloned })
}

func (r *MemoryNodeRepository) SetSummary(ctx context.Context, id primitive.ObjectID, summary *models.Summary) error {
	return r.patch(id, func(n *models.Node) { n.Summary = summary })
}

func (r *MemoryNodeRepository) MarkDeleted(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.patch(id, func(n *models.Node) {
		n.IsDeleted = true
		deletedAt := at
		n.DeletedAt = &deletedAt
	})
}

func (r *MemoryNodeRepository) ClearDeleted(ctx context.Context, id primitive.ObjectID) error {
	return r.patch(id, func(n *models.Node) {
		n.IsDeleted = false
		n.DeletedAt = nil
	})
}

func (r *MemoryNodeRepository) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.nodes, id)
	return nil
}

func (r *MemoryNodeRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID, deleted bool) ([]models.Node, error) {
	return r.filter(func(n *models.Node) bool {
		return n.OwnerID == owner && n.IsDeleted == deleted
	}), nil
}

func (r *MemoryNodeRepository) FindSharedWith(ctx context.Context, user primitive.ObjectID) ([]models.Node, error) {
	return r.filter(func(n *models.Node) bool {
		if n.IsDeleted {
			return false
		}
		_, shared := n.SharedPermission(user)
		return shared
	}), nil
}

func (r *MemoryNodeRepository) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Node, error) {
	return r.filter(func(n *models.Node) bool {
		return n.IsDeleted && n.DeletedAt != nil && !n.DeletedAt.After(cutoff)
	}), nil
}

func (r *MemoryNodeRepository) patch(id primitive.ObjectID, apply func(*models.Node)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[id]
	if !ok {
		return ErrNotFound
	}
	apply(node)
	node.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryNodeRepository) filter(keep func(*models.Node) bool) []models.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Node
	for _, node := range r.nodes {
		if keep(node) {
			result = append(result, *node)
		}
	}
	return result
}

func sameParent(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func visible(node *models.Node, user primitive.ObjectID) bool {
	if node.OwnerID == user {
		return true
	}
	_, shared := node.SharedPermission(user)
	return shared
}

// MemoryUserRepository is an in-memory UserRepository for tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}
