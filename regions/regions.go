// Package regions holds BED intervals in per-chromosome interval trees.
package regions

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
)

type irange struct {
	Start, End int
	UID        uintptr
}

// Half-open interval indexing.
func (i irange) Overlap(b interval.IntRange) bool {
	return i.End > b.Start && i.Start < b.End
}
func (i irange) ID() uintptr              { return i.UID }
func (i irange) Range() interval.IntRange { return interval.IntRange{Start: i.Start, End: i.End} }

// Set is a collection of intervals keyed by chromosome.
type Set struct {
	trees map[string]*interval.IntTree
	n     int
}

// New returns an empty Set.
func New() *Set {
	return &Set{trees: make(map[string]*interval.IntTree, 24)}
}

// Add inserts the 0-based, half-open interval [start, end).
func (s *Set) Add(chrom string, start, end int) error {
	if end < start {
		return errors.Errorf("regions: end %d < start %d on %s", end, start, chrom)
	}
	t, ok := s.trees[chrom]
	if !ok {
		t = &interval.IntTree{}
		s.trees[chrom] = t
	}
	s.n++
	return t.Insert(irange{Start: start, End: end, UID: uintptr(s.n)}, false)
}

// Len is the number of intervals added.
func (s *Set) Len() int { return s.n }

func (s *Set) tree(chrom string) *interval.IntTree {
	if t, ok := s.trees[chrom]; ok {
		return t
	}
	if strings.HasPrefix(chrom, "chr") {
		return s.trees[chrom[3:]]
	}
	return s.trees["chr"+chrom]
}

// Overlaps reports whether [start, end) overlaps any interval on chrom. A
// "chr" prefix missing from either side is tolerated. Zero-length queries
// are widened to a single base.
func (s *Set) Overlaps(chrom string, start, end int) bool {
	if s == nil {
		return false
	}
	t := s.tree(chrom)
	if t == nil {
		return false
	}
	if end <= start {
		end = start + 1
	}
	var found bool
	t.DoMatching(func(interval.IntInterface) bool {
		found = true
		return true
	}, irange{Start: start, End: end})
	return found
}

// ReadFrom parses BED lines from r.
func ReadFrom(r io.Reader) (*Set, error) {
	s := New()
	br := bufio.NewReader(r)
	for k := 1; ; k++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if perr := s.addLine(line); perr != nil {
				return nil, errors.Wrapf(perr, "regions: line %d", k)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "regions: reading bed")
		}
	}
	return s, nil
}

func (s *Set) addLine(line string) error {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || line[0] == '#' || strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
		return nil
	}
	toks := strings.SplitN(line, "\t", 4)
	if len(toks) < 3 {
		return errors.Errorf("expected at least 3 fields, got %d", len(toks))
	}
	start, err := strconv.Atoi(toks[1])
	if err != nil {
		return errors.Wrap(err, "bad start")
	}
	end, err := strconv.Atoi(toks[2])
	if err != nil {
		return errors.Wrap(err, "bad end")
	}
	return s.Add(toks[0], start, end)
}

// Read opens a (possibly gzipped) BED file.
func Read(path string) (*Set, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "regions: opening %s", path)
	}
	defer f.Close()
	s, err := ReadFrom(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}
