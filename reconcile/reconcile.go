// Package reconcile turns a stream of merged SV calls into per-sample sets
// of call identifiers.
package reconcile

import (
	"fmt"
	"io"
	"sort"

	"github.com/brentp/svbench/genotype"
	"github.com/pkg/errors"
)

// Labels of the two samples in a truth/test comparison, in merge order.
const (
	Truth = "truth"
	Test  = "test"
)

// MergedCall is one record of the merged call set.
type MergedCall struct {
	ID string
	// Calls holds one indicator per input sample in input order.
	Calls []genotype.Indicator

	// Locus is only used for filtering and reporting.
	Chrom    string
	Pos, End int
}

// Reader yields merged calls until it returns io.EOF.
type Reader interface {
	Read() (*MergedCall, error)
}

// MalformedRecordError is returned when a record carries fewer indicators
// than there are samples.
type MalformedRecordError struct {
	ID    string
	Index int
	Want  int
	Got   int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed merged record %q (#%d): expected %d genotype indicators, got %d", e.ID, e.Index, e.Want, e.Got)
}

// Set is a deduplicating set of call identifiers.
type Set map[string]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s Set) Add(id string) { s[id] = struct{}{} }

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int { return len(s) }

// IntersectLen is |s ∩ o|.
func (s Set) IntersectLen(o Set) int {
	a, b := s, o
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for id := range a {
		if b.Has(id) {
			n++
		}
	}
	return n
}

// Sorted returns the ids in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Membership maps a sample label to its set.
type Membership map[string]Set

// Reconciler builds a Membership from a Reader. Labels name the samples in
// input order; a record must carry at least len(Labels) indicators.
type Reconciler struct {
	Labels []string
	// OnCall, if set, is called for every record with the qualification of
	// each labelled sample. qualifies is reused between records.
	OnCall func(c *MergedCall, qualifies []bool)
}

// Run consumes r once. No state is kept between calls.
func (rc *Reconciler) Run(r Reader) (Membership, error) {
	if len(rc.Labels) == 0 {
		return nil, errors.New("reconcile: no sample labels")
	}
	m := make(Membership, len(rc.Labels))
	for _, l := range rc.Labels {
		m[l] = make(Set, 256)
	}
	q := make([]bool, len(rc.Labels))
	for i := 0; ; i++ {
		c, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reconcile: reading record #%d", i)
		}
		if len(c.Calls) < len(rc.Labels) {
			return nil, &MalformedRecordError{ID: c.ID, Index: i, Want: len(rc.Labels), Got: len(c.Calls)}
		}
		for k, l := range rc.Labels {
			q[k] = genotype.IsVariant(c.Calls[k])
			if q[k] {
				m[l].Add(c.ID)
			}
		}
		if rc.OnCall != nil {
			rc.OnCall(c, q)
		}
	}
	return m, nil
}

// Reconcile builds the membership of the labelled samples from r.
func Reconcile(r Reader, labels ...string) (Membership, error) {
	rc := &Reconciler{Labels: labels}
	return rc.Run(r)
}

// Pair is Reconcile for the two-sample truth/test case.
func Pair(r Reader) (truth, test Set, err error) {
	m, err := Reconcile(r, Truth, Test)
	if err != nil {
		return nil, nil, err
	}
	return m[Truth], m[Test], nil
}

// SliceReader serves calls from memory.
type SliceReader struct {
	Calls []MergedCall
	i     int
}

func (s *SliceReader) Read() (*MergedCall, error) {
	if s.i >= len(s.Calls) {
		return nil, io.EOF
	}
	s.i++
	return &s.Calls[s.i-1], nil
}
