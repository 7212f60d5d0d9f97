// Package dedup groups files sharing identical content and selects the
// canonical survivor of each group.
package dedup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/sdejongh/desktidy/pkg/fingerprint"
	"github.com/sdejongh/desktidy/pkg/logging"
	"github.com/sdejongh/desktidy/pkg/models"
	"github.com/sdejongh/desktidy/pkg/storage"
)

// Detector finds exact-content duplicates among scanned entries.
// Detection is a pure read-only pass: no filesystem mutation.
type Detector struct {
	fp         *fingerprint.Fingerprinter
	logger     logging.Logger
	bufferSize int
	bufferPool *sync.Pool
}

// NewDetector creates a detector using the given fingerprinter
func NewDetector(fp *fingerprint.Fingerprinter, bufferSize int, logger logging.Logger) *Detector {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Detector{
		fp:         fp,
		logger:     logger,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// candidate pairs an entry with its computed identity and discovery order
type candidate struct {
	entry    models.FileEntry
	identity models.ContentIdentity
	order    int
}

// Detect fingerprints every entry, buckets them by identity key, and
// returns the verified duplicate groups. Each group's members are
// ordered canonical-first: earliest creation time wins, unknown
// creation times sort last, ties keep discovery order. Groups are
// sorted by the canonical member's path for deterministic output.
//
// Entries whose fingerprinting fails are logged and excluded; this is
// never fatal to the pass.
func (d *Detector) Detect(ctx context.Context, backend storage.Backend, entries []models.FileEntry) ([]models.DuplicateGroup, error) {
	buckets := make(map[string][]candidate)

	for i, entry := range entries {
		identity, err := d.fp.Fingerprint(ctx, backend, entry.RelativePath)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.logger.Warn(ctx, "fingerprinting failed, excluding file from duplicate detection", logging.Fields{
				"path":  entry.RelativePath,
				"error": err.Error(),
			})
			continue
		}

		key := identity.Key()
		buckets[key] = append(buckets[key], candidate{entry: entry, identity: identity, order: i})
	}

	var groups []models.DuplicateGroup
	for key, members := range buckets {
		group, ok := d.verifyGroup(ctx, backend, key, members)
		if !ok {
			continue
		}
		groups = append(groups, group)
	}

	// Map iteration order is nondeterministic; sort by canonical path
	// so reports and re-runs are stable.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Canonical().RelativePath < groups[j].Canonical().RelativePath
	})

	return groups, nil
}

// verifyGroup confirms that every bucket member is byte-identical to
// the first one and orders the survivors canonical-first. The size and
// digest re-checks are redundant with the bucket key; they guard
// against key construction bugs. The byte comparison guards against
// digest collisions: a collision must not silently merge distinct
// content.
func (d *Detector) verifyGroup(ctx context.Context, backend storage.Backend, key string, members []candidate) (models.DuplicateGroup, bool) {
	if len(members) < 2 {
		return models.DuplicateGroup{}, false
	}

	base := members[0]
	verified := []candidate{base}

	for _, m := range members[1:] {
		if m.identity.Size != base.identity.Size {
			d.logger.Warn(ctx, "size mismatch inside identity bucket, excluding file", logging.Fields{
				"path": m.entry.RelativePath,
				"base": base.entry.RelativePath,
			})
			continue
		}
		if m.identity.MD5 != base.identity.MD5 || m.identity.SHA256 != base.identity.SHA256 {
			d.logger.Warn(ctx, "digest mismatch inside identity bucket, excluding file", logging.Fields{
				"path": m.entry.RelativePath,
				"base": base.entry.RelativePath,
			})
			continue
		}

		same, err := d.bytesIdentical(ctx, backend, base.entry.RelativePath, m.entry.RelativePath)
		if err != nil {
			d.logger.Warn(ctx, "byte verification failed, excluding file", logging.Fields{
				"path":  m.entry.RelativePath,
				"error": err.Error(),
			})
			continue
		}
		if !same {
			d.logger.Warn(ctx, "digest collision detected, excluding file", logging.Fields{
				"path": m.entry.RelativePath,
				"base": base.entry.RelativePath,
			})
			continue
		}

		verified = append(verified, m)
	}

	if len(verified) < 2 {
		return models.DuplicateGroup{}, false
	}

	d.orderCanonicalFirst(ctx, backend, verified)

	group := models.DuplicateGroup{Key: key}
	for _, c := range verified {
		group.Files = append(group.Files, c.entry)
	}

	d.logger.Info(ctx, "duplicate group found", logging.Fields{
		"canonical": group.Canonical().RelativePath,
		"redundant": len(group.Redundant()),
	})

	return group, true
}

// orderCanonicalFirst stable-sorts members by creation time ascending.
// Files with unknown creation time sort last: a freshly created file
// must never displace a dated one as canonical. The stable sort keeps
// discovery order among ties.
func (d *Detector) orderCanonicalFirst(ctx context.Context, backend storage.Backend, members []candidate) {
	type ranked struct {
		member candidate
		known  bool
		at     int64
	}

	rank := make([]ranked, len(members))
	for i, m := range members {
		rank[i] = ranked{member: m}
		info, err := backend.Stat(ctx, m.entry.RelativePath)
		if err != nil || !info.CreatedAtKnown {
			continue
		}
		rank[i].known = true
		rank[i].at = info.CreatedAt.UnixNano()
	}

	sort.SliceStable(rank, func(i, j int) bool {
		if rank[i].known != rank[j].known {
			return rank[i].known
		}
		if !rank[i].known {
			return false
		}
		return rank[i].at < rank[j].at
	})

	for i := range rank {
		members[i] = rank[i].member
	}
}

// bytesIdentical compares two files byte-by-byte with pooled buffers
func (d *Detector) bytesIdentical(ctx context.Context, backend storage.Backend, pathA, pathB string) (bool, error) {
	readerA, err := backend.Read(ctx, pathA)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", pathA, err)
	}
	defer readerA.Close()

	readerB, err := backend.Read(ctx, pathB)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", pathB, err)
	}
	defer readerB.Close()

	bufAPtr := d.bufferPool.Get().(*[]byte)
	defer d.bufferPool.Put(bufAPtr)
	bufA := *bufAPtr

	bufBPtr := d.bufferPool.Get().(*[]byte)
	defer d.bufferPool.Put(bufBPtr)
	bufB := *bufBPtr

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		nA, errA := io.ReadFull(readerA, bufA)
		nB, errB := io.ReadFull(readerB, bufB)

		if nA != nB {
			return false, nil
		}
		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		endA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		endB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if endA && endB {
			return true, nil
		}
		if endA != endB {
			return false, nil
		}
		if errA != nil {
			return false, fmt.Errorf("failed to read %s: %w", pathA, errA)
		}
		if errB != nil {
			return false, fmt.Errorf("failed to read %s: %w", pathB, errB)
		}
	}
}
