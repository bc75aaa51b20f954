// Package mergedvcf decodes a SURVIVOR-merged VCF into a stream of
// reconcile.MergedCall.
package mergedvcf

import (
	"fmt"
	"io"

	"github.com/brentp/svbench/genotype"
	"github.com/brentp/svbench/reconcile"
	"github.com/brentp/svbench/regions"
	"github.com/brentp/svbench/shared"
	"github.com/brentp/vcfgo"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
)

// Mode selects where per-sample indicators come from.
type Mode int

const (
	// GT uses each sample's genotype.
	GT Mode = iota
	// Support uses the SUPP_VEC INFO field written by SURVIVOR. This is
	// useful when the inputs are sites-only and every GT is missing.
	Support
)

const suppVec = "SUPP_VEC"

type Options struct {
	Mode Mode
	// Exclude drops calls whose span overlaps any region.
	Exclude *regions.Set
	// ExcludeChroms drops calls on these chromosomes; see shared.Contains.
	ExcludeChroms []string
}

// Reader implements reconcile.Reader.
type Reader struct {
	vcf     *vcfgo.Reader
	opts    Options
	skipped int
	closer  io.Closer
}

// NewReader reads a merged VCF from r.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	vcf, err := vcfgo.NewReader(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "mergedvcf: reading header")
	}
	return &Reader{vcf: vcf, opts: opts}, nil
}

// Open opens a merged VCF at path (use - for stdin).
func Open(path string, opts Options) (*Reader, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mergedvcf: opening %s", path)
	}
	r, err := NewReader(f, opts)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, path)
	}
	r.closer = f
	return r, nil
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Samples returns the sample names in column order.
func (r *Reader) Samples() []string {
	return r.vcf.Header.SampleNames
}

// Skipped is the number of records dropped by the filters so far.
func (r *Reader) Skipped() int { return r.skipped }

// Err returns any non-fatal parse errors that vcfgo accumulated.
func (r *Reader) Err() error {
	return r.vcf.Error()
}

func (r *Reader) excluded(v *vcfgo.Variant) bool {
	if len(r.opts.ExcludeChroms) > 0 && shared.Contains(r.opts.ExcludeChroms, v.Chromosome) {
		return true
	}
	return r.opts.Exclude.Overlaps(v.Chromosome, int(v.Start()), int(v.End()))
}

// Read returns the next call that passes the filters or io.EOF.
func (r *Reader) Read() (*reconcile.MergedCall, error) {
	for {
		v := r.vcf.Read()
		if v == nil {
			return nil, io.EOF
		}
		if r.excluded(v) {
			r.skipped++
			continue
		}
		c := &reconcile.MergedCall{ID: v.Id(), Chrom: v.Chromosome, Pos: int(v.Pos), End: int(v.End())}
		switch r.opts.Mode {
		case Support:
			c.Calls = fromSupport(v)
		default:
			c.Calls = fromSamples(v)
		}
		return c, nil
	}
}

func fromSamples(v *vcfgo.Variant) []genotype.Indicator {
	calls := make([]genotype.Indicator, len(v.Samples))
	for i, s := range v.Samples {
		if s == nil {
			calls[i] = genotype.Unknown
			continue
		}
		calls[i] = genotype.FromGT(s.GT)
	}
	return calls
}

// a record without SUPP_VEC yields no indicators and is rejected as
// malformed downstream.
func fromSupport(v *vcfgo.Variant) []genotype.Indicator {
	val, err := v.Info().Get(suppVec)
	if err != nil || val == nil {
		return nil
	}
	var sv string
	switch t := val.(type) {
	case string:
		sv = t
	case []string:
		if len(t) > 0 {
			sv = t[0]
		}
	default:
		sv = fmt.Sprint(t)
	}
	calls := make([]genotype.Indicator, len(sv))
	for i := 0; i < len(sv); i++ {
		calls[i] = genotype.FromSupport(sv[i])
	}
	return calls
}
