// Package report renders metrics and per-call membership.
package report

import (
	"bufio"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/hts/fai"
	"github.com/brentp/svbench/metrics"
	"github.com/brentp/svbench/reconcile"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
	"github.com/valyala/fasttemplate"
)

const summaryTmpl = "Precision: {{precision}}%\nRecall: {{recall}}%\n"

func pct(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}

// Write prints precision and recall, one decimal each.
func Write(w io.Writer, r metrics.Result) error {
	t := fasttemplate.New(summaryTmpl, "{{", "}}")
	_, err := t.Execute(w, map[string]interface{}{
		"precision": pct(r.Precision),
		"recall":    pct(r.Recall),
	})
	return err
}

// JSON writes the full result as an indented JSON object.
func JSON(w io.Writer, r metrics.Result) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

type row struct {
	id    string
	chrom string
	pos   int
	in    []bool
}

// Table collects the calls carried by at least one sample. Its Add method
// is meant to be used as a reconcile.Reconciler OnCall hook.
type Table struct {
	Labels []string
	rows   []row
}

func (t *Table) Add(c *reconcile.MergedCall, qualifies []bool) {
	var carried bool
	for _, q := range qualifies {
		carried = carried || q
	}
	if !carried {
		return
	}
	t.rows = append(t.rows, row{id: c.ID, chrom: c.Chrom, pos: c.Pos, in: append([]bool(nil), qualifies...)})
}

func (t *Table) Len() int { return len(t.rows) }

// Sort orders rows by contig order in idx, then position, then id. Contigs
// missing from idx sort after those present, by name.
func (t *Table) Sort(idx fai.Index) {
	order := make(map[string]int, len(idx))
	for name, rec := range idx {
		order[name] = int(rec.Start)
	}
	rank := func(chrom string) (int, bool) {
		if o, ok := order[chrom]; ok {
			return o, true
		}
		if strings.HasPrefix(chrom, "chr") {
			o, ok := order[chrom[3:]]
			return o, ok
		}
		o, ok := order["chr"+chrom]
		return o, ok
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		if a.chrom != b.chrom {
			ra, oka := rank(a.chrom)
			rb, okb := rank(b.chrom)
			if oka != okb {
				return oka
			}
			if oka && ra != rb {
				return ra < rb
			}
			if !oka {
				return a.chrom < b.chrom
			}
		}
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		return a.id < b.id
	})
}

// Write writes a tab-delimited table with a 0/1 column per label.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("#id\tchrom\tpos")
	for _, l := range t.Labels {
		bw.WriteString("\t" + l)
	}
	bw.WriteByte('\n')
	for _, r := range t.rows {
		bw.WriteString(r.id + "\t" + r.chrom + "\t" + strconv.Itoa(r.pos))
		for _, in := range r.in {
			if in {
				bw.WriteString("\t1")
			} else {
				bw.WriteString("\t0")
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadFai reads the .fai index for a fasta (or the .fai path itself).
func ReadFai(path string) (fai.Index, error) {
	if !strings.HasSuffix(path, ".fai") {
		path += ".fai"
	}
	f, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "report: opening %s", path)
	}
	defer f.Close()
	idx, err := fai.ReadFrom(f)
	if err != nil {
		return nil, errors.Wrapf(err, "report: reading %s", path)
	}
	return idx, nil
}
