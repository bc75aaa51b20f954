package report

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/fai"
	"github.com/brentp/svbench/genotype"
	"github.com/brentp/svbench/metrics"
	"github.com/brentp/svbench/reconcile"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	r := metrics.Result{TruePositives: 2, Precision: 66.7, Recall: 100}
	if err := Write(&buf, r); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Precision: 66.7%\nRecall: 100.0%\n" {
		t.Errorf("bad output: %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	r := metrics.Result{TruePositives: 2, Precision: 66.7, Recall: 66.7, TruthCount: 3, TestCount: 3, FalsePositives: 1, FalseNegatives: 1}
	if err := JSON(&buf, r); err != nil {
		t.Fatal(err)
	}
	var got metrics.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got != r {
		t.Errorf("got %+v", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"precision_pct": 66.7`)) {
		t.Errorf("missing precision_pct: %s", buf.String())
	}
}

func mc(id, chrom string, pos int, a, b genotype.Indicator) reconcile.MergedCall {
	return reconcile.MergedCall{ID: id, Chrom: chrom, Pos: pos, Calls: []genotype.Indicator{a, b}}
}

func TestTable(t *testing.T) {
	tbl := &Table{Labels: []string{reconcile.Truth, reconcile.Test}}
	rc := &reconcile.Reconciler{Labels: tbl.Labels, OnCall: tbl.Add}
	_, err := rc.Run(&reconcile.SliceReader{Calls: []reconcile.MergedCall{
		mc("D", "2", 9000, genotype.NoCall, genotype.Het),
		mc("Z", "GL1", 5, genotype.Het, genotype.Het),
		mc("A", "1", 1000, genotype.Het, genotype.NoCall),
		mc("R", "1", 1200, genotype.HomRef, genotype.NoCall),
		mc("C", "chr2", 100, genotype.Het, genotype.HomAlt),
		mc("B", "1", 5000, genotype.Het, genotype.Het),
	}})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", tbl.Len())
	}
	tbl.Sort(fai.Index{
		"1": fai.Record{Name: "1", Length: 10000, Start: 3},
		"2": fai.Record{Name: "2", Length: 10000, Start: 10300},
	})
	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatal(err)
	}
	want := "#id\tchrom\tpos\ttruth\ttest\n" +
		"A\t1\t1000\t1\t0\n" +
		"B\t1\t5000\t1\t1\n" +
		"C\tchr2\t100\t1\t1\n" +
		"D\t2\t9000\t0\t1\n" +
		"Z\tGL1\t5\t1\t1\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestReadFai(t *testing.T) {
	dir, err := ioutil.TempDir("", "svbench-report")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fa := filepath.Join(dir, "ref.fa")
	if err := ioutil.WriteFile(fa+".fai", []byte("1\t100\t3\t60\t61\n2\t50\t110\t60\t61\n"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{fa, fa + ".fai"} {
		idx, err := ReadFai(p)
		if err != nil {
			t.Fatal(err)
		}
		if len(idx) != 2 || idx["2"].Length != 50 || idx["2"].Start != 110 {
			t.Errorf("bad index: %+v", idx)
		}
	}
	if _, err := ReadFai(filepath.Join(dir, "missing.fa")); err == nil {
		t.Errorf("expected error for missing index")
	}
}
