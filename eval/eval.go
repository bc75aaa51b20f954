// Package eval merges a test call set with a truth set and reports the
// precision and recall of the test calls.
package eval

import (
	"io"
	"os"
	"strings"

	arg "github.com/alexflint/go-arg"
	"github.com/brentp/go-athenaeum/tempclean"
	"github.com/brentp/svbench/merge"
	"github.com/brentp/svbench/mergedvcf"
	"github.com/brentp/svbench/metrics"
	"github.com/brentp/svbench/reconcile"
	"github.com/brentp/svbench/regions"
	"github.com/brentp/svbench/report"
	"github.com/brentp/svbench/shared"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
)

// Scoring holds the options used to read and score a merged VCF.
type Scoring struct {
	Exclude       string `arg:"-e,help:BED of regions; calls overlapping these are ignored."`
	ExcludeChroms string `arg:"-C,--excludechroms,help:ignore calls on this comma-delimited list of chroms. If this starts with ~ it is treated as a regular expression to exclude."`
	SuppVec       bool   `arg:"--suppvec,help:use SURVIVOR's SUPP_VEC rather than sample genotypes to decide membership."`
	Fasta         string `arg:"-f,help:reference fasta (with .fai) used to order the --table output."`
	Table         string `arg:"--table,help:optional path to write per-call truth/test membership."`
	JSON          string `arg:"--json,help:optional path to write metrics as JSON."`
}

// duplicates counts the merged call IDs that occur more than once. Such
// calls collapse into a single set member.
type duplicates struct {
	seen map[string]int
	n    int
}

func (d *duplicates) add(c *reconcile.MergedCall, _ []bool) {
	if d.seen == nil {
		d.seen = make(map[string]int)
	}
	d.seen[c.ID]++
	if d.seen[c.ID] == 2 {
		d.n++
	}
}

// Score reconciles the truth and test membership of the calls in rdr and
// computes their metrics. If tbl is not nil it receives every call.
func Score(rdr reconcile.Reader, tbl *report.Table) (metrics.Result, error) {
	res, _, err := score(rdr, tbl)
	return res, err
}

func score(rdr reconcile.Reader, tbl *report.Table) (metrics.Result, int, error) {
	rc := &reconcile.Reconciler{Labels: []string{reconcile.Truth, reconcile.Test}}
	dups := &duplicates{}
	rc.OnCall = dups.add
	if tbl != nil {
		tbl.Labels = rc.Labels
		rc.OnCall = func(c *reconcile.MergedCall, q []bool) {
			dups.add(c, q)
			tbl.Add(c, q)
		}
	}
	m, err := rc.Run(rdr)
	if err != nil {
		return metrics.Result{}, dups.n, err
	}
	res, err := metrics.Compute(m[reconcile.Truth], m[reconcile.Test])
	return res, dups.n, err
}

func (s Scoring) options() (mergedvcf.Options, error) {
	var o mergedvcf.Options
	if s.SuppVec {
		o.Mode = mergedvcf.Support
	}
	if s.ExcludeChroms != "" {
		o.ExcludeChroms = strings.Split(strings.TrimSpace(s.ExcludeChroms), ",")
	}
	if s.Exclude != "" {
		ex, err := regions.Read(s.Exclude)
		if err != nil {
			return o, err
		}
		shared.Slogger.Printf("read %d exclude regions from %s", ex.Len(), s.Exclude)
		o.Exclude = ex
	}
	return o, nil
}

func writeTo(path string, fn func(io.Writer) error) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	if err := fn(w); err != nil {
		w.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return w.Close()
}

// ScoreVCF scores the merged VCF at path and writes any requested side
// outputs.
func ScoreVCF(path string, s Scoring) (metrics.Result, error) {
	opts, err := s.options()
	if err != nil {
		return metrics.Result{}, err
	}
	rdr, err := mergedvcf.Open(path, opts)
	if err != nil {
		return metrics.Result{}, err
	}
	defer rdr.Close()
	if samples := rdr.Samples(); len(samples) != 2 {
		shared.Slogger.Printf("expected 2 samples (truth, test) in %s, found %d; using the first two", path, len(samples))
	}

	var tbl *report.Table
	if s.Table != "" {
		tbl = &report.Table{}
	}
	res, ndup, err := score(rdr, tbl)
	if ndup > 0 {
		shared.Slogger.Printf("warning: %d merged call IDs in %s occur more than once; each is counted once", ndup, path)
	}
	if verr := rdr.Err(); verr != nil {
		shared.Slogger.Println(verr)
	}
	if rdr.Skipped() > 0 {
		shared.Slogger.Printf("skipped %d excluded calls", rdr.Skipped())
	}
	if err != nil {
		return res, errors.Wrapf(err, "scoring %s", path)
	}

	if tbl != nil {
		if s.Fasta != "" {
			idx, err := report.ReadFai(s.Fasta)
			if err != nil {
				return res, err
			}
			tbl.Sort(idx)
		}
		if err := writeTo(s.Table, tbl.Write); err != nil {
			return res, err
		}
		shared.Slogger.Printf("wrote %d calls to %s", tbl.Len(), s.Table)
	}
	if s.JSON != "" {
		if err := writeTo(s.JSON, func(w io.Writer) error { return report.JSON(w, res) }); err != nil {
			return res, err
		}
	}
	shared.Slogger.Printf("truth: %d, test: %d, shared: %d", res.TruthCount, res.TestCount, res.TruePositives)
	return res, nil
}

type cliargs struct {
	merge.Options
	Scoring
	Truth  string `arg:"--truth,required,help:vcf containing truth set."`
	Test   string `arg:"--test,required,help:vcf containing test set."`
	Name   string `arg:"-n,help:project name used in output files."`
	OutDir string `arg:"-o,help:output directory."`
}

func (c *cliargs) Description() string {
	return "calculate precision and recall of a test SV vcf against a truth vcf"
}

type scoreargs struct {
	Scoring
	VCF string `arg:"positional,required,help:merged VCF with truth then test sample (use - for stdin)."`
}

func (c *scoreargs) Description() string {
	return "calculate precision and recall from an already merged VCF"
}

func fatal(err error) {
	if metrics.IsEmptySet(err) {
		shared.Slogger.Printf("precision and recall are undefined")
	}
	tempclean.Fatalf("%s", err)
}

func Main() {
	cli := cliargs{Options: merge.DefaultOptions(), Name: "svbench", OutDir: "./"}
	arg.MustParse(&cli)
	if err := os.MkdirAll(cli.OutDir, 0755); err != nil {
		fatal(err)
	}
	out := merge.Output(cli.OutDir, cli.Name)
	if err := merge.Run([]string{cli.Truth, cli.Test}, out, cli.Options); err != nil {
		fatal(err)
	}
	res, err := ScoreVCF(out, cli.Scoring)
	if err != nil {
		fatal(err)
	}
	if err := report.Write(os.Stdout, res); err != nil {
		fatal(err)
	}
}

func ScoreMain() {
	cli := scoreargs{}
	arg.MustParse(&cli)
	res, err := ScoreVCF(cli.VCF, cli.Scoring)
	if err != nil {
		fatal(err)
	}
	if err := report.Write(os.Stdout, res); err != nil {
		fatal(err)
	}
}
