package tree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"fap/internal/hostbridge"
)

// RectJSON is the wire shape of an element's global rect.
type RectJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func rectFrom(r hostbridge.Rect) RectJSON {
	return RectJSON{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// IndexedElement is the tree indexer's per-snapshot record correlating
// an accessibility node with its enrichment data and derived
// capabilities. See spec §3 for field semantics.
type IndexedElement struct {
	FapID                string            `json:"id"`
	AccessibilityNodeRef hostbridge.NodeID `json:"-"`
	ParentFapID          string            `json:"-"`
	TypeName             string            `json:"type,omitempty"`
	Key                  string            `json:"key,omitempty"`
	Label                string            `json:"label,omitempty"`
	Value                string            `json:"value,omitempty"`
	Hint                 string            `json:"hint,omitempty"`
	Tooltip              string            `json:"-"`
	Rect                 RectJSON          `json:"rect"`
	Actions              []string          `json:"actions"`
	Metadata             map[string]string `json:"metadata,omitempty"`
	IsPlaceholder        bool              `json:"isPlaceholder"`
	PlaceholderReason    string            `json:"placeholderReason,omitempty"`
	IsInteractable       bool              `json:"isInteractable"`
	IsButton             bool              `json:"-"`
	IsTextField          bool              `json:"-"`

	// contentHash is a digest over every serialized field except
	// FapID, used to decide membership in a getTreeDiff "updated" set
	// without a full field-by-field comparison on every poll.
	contentHash uint64
}

// computeContentHash derives a digest over e's serialized fields
// (everything but the snapshot-local FapID) so two elements from
// different snapshots can be compared for "did anything visible
// change" cheaply.
func (e *IndexedElement) computeContentHash() uint64 {
	var b strings.Builder

	b.WriteString(e.TypeName)
	b.WriteByte('\x00')
	b.WriteString(e.Key)
	b.WriteByte('\x00')
	b.WriteString(e.Label)
	b.WriteByte('\x00')
	b.WriteString(e.Value)
	b.WriteByte('\x00')
	b.WriteString(e.Hint)
	b.WriteByte('\x00')
	b.WriteString(e.Tooltip)
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatFloat(e.Rect.X, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(e.Rect.Y, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(e.Rect.W, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(e.Rect.H, 'f', -1, 64))
	b.WriteByte('\x00')
	b.WriteString(strings.Join(e.Actions, ","))
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatBool(e.IsPlaceholder))
	b.WriteByte('\x00')
	b.WriteString(e.PlaceholderReason)
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatBool(e.IsInteractable))
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatBool(e.IsButton))
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatBool(e.IsTextField))
	b.WriteByte('\x00')

	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(e.Metadata[k])
			b.WriteByte(';')
		}
	}

	return xxhash.Sum64String(b.String())
}

// Snapshot is one point-in-time capture of the indexed tree.
type Snapshot struct {
	Elements              []*IndexedElement
	ByID                  map[string]*IndexedElement
	CachedAtSnapshotTime  float64
	LastResponseWasCached bool
	CacheAgeSeconds       float64
}

// Diff is the result of comparing two consecutive snapshots, keyed by
// fap_id (meaningful only between two snapshots taken back to back;
// fap_id is not stable across a disconnect/reconnect cycle).
type Diff struct {
	Added   []*IndexedElement `json:"added"`
	Removed []string          `json:"removed"`
	Updated []*IndexedElement `json:"updated"`
}

// computeDiff compares prev and cur by fap_id.
func computeDiff(prev, cur *Snapshot) *Diff {
	diff := &Diff{}

	if prev == nil {
		diff.Added = append(diff.Added, cur.Elements...)

		return diff
	}

	for _, elem := range cur.Elements {
		prior, existed := prev.ByID[elem.FapID]
		if !existed {
			diff.Added = append(diff.Added, elem)

			continue
		}

		if elem.contentHash != prior.contentHash {
			diff.Updated = append(diff.Updated, elem)
		}
	}

	for _, elem := range prev.Elements {
		if _, stillPresent := cur.ByID[elem.FapID]; !stillPresent {
			diff.Removed = append(diff.Removed, elem.FapID)
		}
	}

	return diff
}
