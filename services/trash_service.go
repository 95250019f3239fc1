package services

import (
	"context"
	"log"
	"sort"
	"time"

	"drivehub/models"
	"drivehub/repository"
	"drivehub/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrashService runs the soft-delete/restore/purge lifecycle over subtrees
// and builds the trash listing. Cascades walk the tree with an explicit
// worklist of node ids so arbitrarily deep trees cannot exhaust the call
// stack. Every node write is independent; a failure mid-cascade aborts the
// remaining work and leaves the already-written nodes as they are.
type TrashService struct {
	nodes  repository.NodeRepository
	blobs  storage.BlobStore
	access *AccessService
}

func NewTrashService(nodes repository.NodeRepository, blobs storage.BlobStore, access *AccessService) *TrashService {
	return &TrashService{
		nodes:  nodes,
		blobs:  blobs,
		access: access,
	}
}

// SoftDelete moves a node and, for folders, its entire subtree to the
// trash. Owners and editors may trash; already-trashed descendants are
// marked again without error so a partially trashed subtree converges.
func (s *TrashService) SoftDelete(ctx context.Context, requester, nodeID primitive.ObjectID) error {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return err
	}
	if err := s.access.Authorize(requester, node, VerbTrash); err != nil {
		return err
	}

	now := time.Now()
	worklist := []primitive.ObjectID{node.ID}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		current, err := s.nodes.Get(ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				continue
			}
			return upstream("soft delete lookup", err)
		}

		if err := s.nodes.MarkDeleted(ctx, id, now); err != nil {
			return upstream("soft delete", err)
		}

		if current.IsFolder {
			// activeOnly=false so trashed children are revisited idempotently
			children, err := s.nodes.ListChildren(ctx, &id, primitive.NilObjectID, false)
			if err != nil {
				return upstream("soft delete children", err)
			}
			for _, child := range children {
				worklist = append(worklist, child.ID)
			}
		}
	}

	return nil
}

// Restore brings a trashed node back, and for folders walks the subtree
// restoring the descendants the requester owns. Nodes owned by someone
// else are left untouched and their subtrees are not entered.
func (s *TrashService) Restore(ctx context.Context, requester, nodeID primitive.ObjectID) error {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return err
	}
	if err := s.access.Authorize(requester, node, VerbRestore); err != nil {
		return err
	}

	worklist := []primitive.ObjectID{node.ID}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		current, err := s.nodes.Get(ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				continue
			}
			return upstream("restore lookup", err)
		}
		if current.OwnerID != requester {
			continue
		}

		if err := s.nodes.ClearDeleted(ctx, id); err != nil {
			return upstream("restore", err)
		}

		if current.IsFolder {
			children, err := s.nodes.ListChildren(ctx, &id, primitive.NilObjectID, false)
			if err != nil {
				return upstream("restore children", err)
			}
			for _, child := range children {
				worklist = append(worklist, child.ID)
			}
		}
	}

	return nil
}

// Purge permanently removes a node and all of its descendants. Children go
// before their parents so an interruption never leaves a parent record
// whose blobs or children are already gone from under it. File blobs are
// deleted from the store before the node record.
func (s *TrashService) Purge(ctx context.Context, requester, nodeID primitive.ObjectID) error {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return err
	}
	if err := s.access.Authorize(requester, node, VerbPurge); err != nil {
		return err
	}

	ordered, err := s.collectSubtree(ctx, node.ID)
	if err != nil {
		return err
	}

	// Reverse BFS order: every node is removed before its parent.
	for i := len(ordered) - 1; i >= 0; i-- {
		if err := s.purgeNode(ctx, &ordered[i]); err != nil {
			return err
		}
	}

	return nil
}

// EmptyTrash purges every trashed node owned by the requester. The set is
// flat: softDelete already pushed the deleted flag through whole subtrees,
// so each record can be removed on its own, in any order, tolerating
// parents or children that an earlier iteration already purged.
func (s *TrashService) EmptyTrash(ctx context.Context, requester primitive.ObjectID) (int, error) {
	trashed, err := s.nodes.FindByOwner(ctx, requester, true)
	if err != nil {
		return 0, upstream("empty trash query", err)
	}

	purged := 0
	for i := range trashed {
		if err := s.purgeNode(ctx, &trashed[i]); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

// GetTrash returns the requester's top-level trashed nodes, newest first.
// A trashed node is top-level when its parent is the root, is itself not
// trashed, or no longer exists; descendants buried under a trashed folder
// stay out of the listing.
func (s *TrashService) GetTrash(ctx context.Context, requester primitive.ObjectID) ([]models.Node, error) {
	trashed, err := s.nodes.FindByOwner(ctx, requester, true)
	if err != nil {
		return nil, upstream("trash query", err)
	}

	trashedSet := make(map[primitive.ObjectID]bool, len(trashed))
	for _, node := range trashed {
		trashedSet[node.ID] = true
	}

	topLevel := make([]models.Node, 0, len(trashed))
	for _, node := range trashed {
		if node.ParentID == nil {
			topLevel = append(topLevel, node)
			continue
		}
		if trashedSet[*node.ParentID] {
			continue
		}
		parent, err := s.nodes.Get(ctx, *node.ParentID)
		if err == repository.ErrNotFound {
			// Parent purged out from under it; surface the orphan.
			topLevel = append(topLevel, node)
			continue
		}
		if err != nil {
			return nil, upstream("trash parent lookup", err)
		}
		if !parent.IsDeleted {
			topLevel = append(topLevel, node)
		}
	}

	sort.Slice(topLevel, func(i, j int) bool {
		a, b := topLevel[i].DeletedAt, topLevel[j].DeletedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	return topLevel, nil
}

// PurgeExpired removes every node trashed before the cutoff, regardless of
// owner. Used by the background cleanup job.
func (s *TrashService) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	expired, err := s.nodes.FindDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, upstream("expired trash query", err)
	}

	purged := 0
	for i := range expired {
		if err := s.purgeNode(ctx, &expired[i]); err != nil {
			log.Printf("Trash cleanup: failed to purge node %s: %v", expired[i].ID.Hex(), err)
			continue
		}
		purged++
	}
	return purged, nil
}

// collectSubtree returns the node and all descendants in BFS order
// (parents before children).
func (s *TrashService) collectSubtree(ctx context.Context, rootID primitive.ObjectID) ([]models.Node, error) {
	root, err := s.nodes.Get(ctx, rootID)
	if err != nil {
		return nil, err
	}

	ordered := []models.Node{*root}
	queue := []primitive.ObjectID{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		children, err := s.nodes.ListChildren(ctx, &id, primitive.NilObjectID, false)
		if err != nil {
			return nil, upstream("purge children lookup", err)
		}
		for _, child := range children {
			ordered = append(ordered, child)
			if child.IsFolder {
				queue = append(queue, child.ID)
			}
		}
	}
	return ordered, nil
}

// purgeNode removes one record, deleting the backing blob first for files.
// The record may already be gone when flat purges overlap; that counts as
// done.
func (s *TrashService) purgeNode(ctx context.Context, node *models.Node) error {
	if !node.IsFolder && node.StorageKey != "" {
		if err := s.blobs.Delete(node.StorageKey); err != nil {
			return upstream("blob delete", err)
		}
	}
	if err := s.nodes.HardDelete(ctx, node.ID); err != nil {
		return upstream("node delete", err)
	}
	return nil
}
