package tree

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fap/internal/ferrors"
	"fap/internal/hostbridge"
)

// elementInfo is the enrichment data collected for one element-tree
// node during the pre-order walk, kept around only long enough to
// resolve ancestor fallbacks.
type elementInfo struct {
	typeName    string
	key         string
	hasNodeRef  bool
	nodeRef     hostbridge.NodeID
	parentIndex int
}

// Indexer produces and caches snapshots of the host's accessibility
// tree, enriched with element-tree type names and keys. It is the only
// owner of the tree snapshot and cache; other components read through
// its exported methods.
type Indexer struct {
	host           hostbridge.Port
	cacheTTL       time.Duration
	cacheSizeLimit int

	mu       sync.Mutex
	cached   *Snapshot
	cachedAt time.Time
	previous *Snapshot
}

// NewIndexer constructs an indexer around host, with the given
// resilience-cache freshness window and element count cap.
func NewIndexer(host hostbridge.Port, cacheTTL time.Duration, cacheSizeLimit int) *Indexer {
	return &Indexer{
		host:           host,
		cacheTTL:       cacheTTL,
		cacheSizeLimit: cacheSizeLimit,
	}
}

// Snapshot walks the host's accessibility and element trees and
// returns the current indexed snapshot, substituting the resilience
// cache when the live walk is empty and the cache is still fresh.
func (idx *Indexer) Snapshot(ctx context.Context) (*Snapshot, error) {
	elements, byNodeID, err := idx.walkAccessibility(ctx)
	if err != nil {
		return nil, ferrors.Wrap(err, ferrors.CodeHostInspection, "failed to walk accessibility tree")
	}

	if err := idx.enrichFromElements(ctx, byNodeID); err != nil {
		return nil, ferrors.Wrap(err, ferrors.CodeHostInspection, "failed to walk element tree")
	}

	for _, e := range elements {
		e.contentHash = e.computeContentHash()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(elements) > 0 {
		snapshot := idx.buildSnapshot(elements, false, 0)
		idx.storeCacheLocked(snapshot)

		return snapshot, nil
	}

	if idx.cached != nil {
		age := time.Since(idx.cachedAt)
		if age <= idx.cacheTTL {
			return idx.buildSnapshot(idx.cached.Elements, true, age.Seconds()), nil
		}
	}

	return idx.buildSnapshot(nil, false, 0), nil
}

// Diff returns a fresh snapshot's difference against the snapshot
// taken by the previous Diff call (calls to Snapshot do not move it),
// then advances the stored "previous" pointer to the fresh snapshot.
func (idx *Indexer) Diff(ctx context.Context) (*Diff, error) {
	snapshot, err := idx.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	idx.mu.Lock()
	prev := idx.previous
	idx.previous = snapshot
	idx.mu.Unlock()

	return computeDiff(prev, snapshot), nil
}

func (idx *Indexer) buildSnapshot(elements []*IndexedElement, cached bool, ageSeconds float64) *Snapshot {
	byID := make(map[string]*IndexedElement, len(elements))
	for _, e := range elements {
		byID[e.FapID] = e
	}

	return &Snapshot{
		Elements:              elements,
		ByID:                  byID,
		LastResponseWasCached: cached,
		CacheAgeSeconds:       ageSeconds,
	}
}

// storeCacheLocked replaces the resilience cache with a non-empty live
// snapshot, enforcing the size cap by retaining elements in traversal
// (i.e. most-recently-walked) order up to the limit.
func (idx *Indexer) storeCacheLocked(snapshot *Snapshot) {
	elements := snapshot.Elements
	if idx.cacheSizeLimit > 0 && len(elements) > idx.cacheSizeLimit {
		elements = elements[len(elements)-idx.cacheSizeLimit:]
	}

	idx.cached = idx.buildSnapshot(elements, false, 0)
	idx.cachedAt = time.Now()
}

// walkAccessibility performs step 1 of the snapshot: pre-order walk of
// the accessibility tree, assigning a sequential fap_id to every
// visible node and composing its global rect.
func (idx *Indexer) walkAccessibility(ctx context.Context) ([]*IndexedElement, map[hostbridge.NodeID]*IndexedElement, error) {
	var elements []*IndexedElement

	byNodeID := make(map[hostbridge.NodeID]*IndexedElement)

	err := idx.host.TraverseAccessibility(ctx, func(node *hostbridge.AccessibilityNode, _ hostbridge.Transform, index, parentIndex int) error {
		parentFapID := ""
		if parentIndex != -1 {
			parentFapID = fmt.Sprintf("e%d", parentIndex)
		}

		elem := &IndexedElement{
			FapID:                fmt.Sprintf("e%d", index),
			AccessibilityNodeRef: node.ID,
			ParentFapID:          parentFapID,
			Label:                node.Label,
			Value:                node.Value,
			Hint:                 node.Hint,
			Tooltip:              node.Tooltip,
			Rect:                 rectFrom(node.Rect),
			Actions:              node.Actions.Names(),
			Metadata:             node.Metadata,
			IsPlaceholder:        node.IsPlaceholder,
			PlaceholderReason:    node.PlaceholderReason,
			IsInteractable:       len(node.Actions.Names()) > 0,
			IsButton:             node.Flags.Has(hostbridge.FlagIsButton),
			IsTextField:          node.Flags.Has(hostbridge.FlagIsTextField),
		}

		elements = append(elements, elem)
		byNodeID[node.ID] = elem

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return elements, byNodeID, nil
}

// enrichFromElements performs step 2: walk the element tree, and for
// every element correlated to an accessibility node, fill in its type
// name and key, falling back to ancestor elements per spec §4.C.
func (idx *Indexer) enrichFromElements(ctx context.Context, byNodeID map[hostbridge.NodeID]*IndexedElement) error {
	var infos []elementInfo

	err := idx.host.TraverseElements(ctx, func(elem *hostbridge.Element, _, parentIndex int) error {
		infos = append(infos, elementInfo{
			typeName:    elem.TypeName,
			key:         unwrapKey(elem.Key),
			hasNodeRef:  elem.HasNodeRef,
			nodeRef:     elem.NodeRef,
			parentIndex: parentIndex,
		})

		return nil
	})
	if err != nil {
		return err
	}

	for _, info := range infos {
		if !info.hasNodeRef {
			continue
		}

		indexed, found := byNodeID[info.nodeRef]
		if !found {
			continue
		}

		typeName, key := info.typeName, info.key

		for ancestor := info.parentIndex; (typeName == "" || key == "") && ancestor != -1; ancestor = infos[ancestor].parentIndex {
			candidate := infos[ancestor]
			if typeName == "" && candidate.typeName != "" {
				typeName = candidate.typeName
			}

			if key == "" && candidate.key != "" {
				key = candidate.key
			}

			if key != "" {
				break
			}
		}

		indexed.TypeName = typeName
		indexed.Key = key
	}

	return nil
}
