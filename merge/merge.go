// Package merge runs SURVIVOR to cluster the calls of a truth and a test VCF
// into a single merged VCF.
package merge

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	arg "github.com/alexflint/go-arg"
	"github.com/brentp/go-athenaeum/tempclean"
	"github.com/brentp/svbench/shared"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
)

const Prog = "SURVIVOR"

// Options are the SURVIVOR merge parameters.
type Options struct {
	Distance         int  `arg:"-d,help:maximum distance between test and truth call."`
	MinLength        int  `arg:"--minlength,help:minimum length of SVs to be taken into account (-1 for all)."`
	IgnoreType       bool `arg:"-i,--ignoretype,help:ignore the type of the structural variant."`
	MinSupport       int  `arg:"-"`
	SameStrand       bool `arg:"-"`
	EstimateDistance bool `arg:"-"`
}

// DefaultOptions match a single-caller-support merge with type matching.
func DefaultOptions() Options {
	return Options{Distance: 500, MinLength: -1, MinSupport: 1}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "-1"
}

// Args are the arguments passed to SURVIVOR for a merge of the samples
// listed in fofn into out.
func (o Options) Args(fofn, out string) []string {
	typ := "1"
	if o.IgnoreType {
		typ = "-1"
	}
	support := o.MinSupport
	if support < 1 {
		support = 1
	}
	return []string{"merge", fofn,
		strconv.Itoa(o.Distance),
		strconv.Itoa(support),
		typ,
		flag(o.SameStrand),
		flag(o.EstimateDistance),
		strconv.Itoa(o.MinLength),
		out}
}

// Command renders the SURVIVOR merge command line for logging.
func (o Options) Command(fofn, out string) string {
	return Prog + " " + strings.Join(o.Args(fofn, out), " ")
}

// CountRecords returns the number of non-header lines in a (possibly
// gzipped) VCF.
func CountRecords(path string) (int, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return 0, errors.Wrapf(err, "merge: opening %s", path)
	}
	defer f.Close()
	count := 0
	for {
		line, err := f.ReadBytes('\n')
		if len(line) > 0 && line[0] != '#' {
			count++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, errors.Wrapf(err, "merge: reading %s", path)
		}
	}
	return count, nil
}

// countAll counts the records in each VCF concurrently.
func countAll(vcfs []string) ([]int, error) {
	counts := make([]int, len(vcfs))
	errs := make([]error, len(vcfs))
	var wg sync.WaitGroup
	wg.Add(len(vcfs))
	for i, v := range vcfs {
		go func(i int, v string) {
			counts[i], errs[i] = CountRecords(v)
			wg.Done()
		}(i, v)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return counts, nil
}

// SURVIVOR can't read compressed input so gzipped VCFs are expanded to a
// temporary file.
func plain(path string) (string, error) {
	if !strings.HasSuffix(path, ".gz") {
		return path, nil
	}
	r, err := xopen.Ropen(path)
	if err != nil {
		return "", errors.Wrapf(err, "merge: opening %s", path)
	}
	defer r.Close()
	t, err := tempclean.TempFile("", "svbench-"+strings.TrimSuffix(filepath.Base(path), ".gz")+"-")
	if err != nil {
		return "", errors.Wrap(err, "merge: creating temp vcf")
	}
	if _, err := io.Copy(t, r); err != nil {
		t.Close()
		return "", errors.Wrapf(err, "merge: decompressing %s", path)
	}
	return t.Name(), t.Close()
}

// WriteFOFN writes one path per line to a temporary file of file names.
func WriteFOFN(vcfs []string) (string, error) {
	f, err := tempclean.TempFile("", "svbench-samples.fofn")
	if err != nil {
		return "", errors.Wrap(err, "merge: creating fofn")
	}
	for _, v := range vcfs {
		if _, err := f.WriteString(v + "\n"); err != nil {
			f.Close()
			return "", errors.Wrap(err, "merge: writing fofn")
		}
	}
	return f.Name(), f.Close()
}

// Run merges vcfs (in order: truth first) into out.
func Run(vcfs []string, out string, opts Options) error {
	if _, err := exec.LookPath(Prog); err != nil {
		return errors.Errorf("merge: %s not found on PATH", Prog)
	}
	counts, err := countAll(vcfs)
	if err != nil {
		return err
	}
	inputs := make([]string, len(vcfs))
	for i, v := range vcfs {
		shared.Slogger.Printf("%s had %d variants", v, counts[i])
		if inputs[i], err = plain(v); err != nil {
			return err
		}
		if inputs[i] != v {
			defer os.Remove(inputs[i])
		}
	}
	fofn, err := WriteFOFN(inputs)
	if err != nil {
		return err
	}
	defer os.Remove(fofn)

	shared.Slogger.Printf("executing: %s", opts.Command(fofn, out))
	p := exec.Command(Prog, opts.Args(fofn, out)...)
	p.Stderr = shared.Slogger
	p.Stdout = shared.Slogger
	if err := p.Run(); err != nil {
		return errors.Wrapf(err, "merge: running %s", Prog)
	}
	if !xopen.Exists(out) {
		return errors.Errorf("merge: %s did not write %s", Prog, out)
	}
	n, err := CountRecords(out)
	if err != nil {
		return err
	}
	shared.Slogger.Printf("wrote %d merged variants to %s", n, out)
	return nil
}

type cliargs struct {
	Options
	Name   string `arg:"-n,help:project name used in output files."`
	OutDir string `arg:"-o,help:output directory."`
	Truth  string `arg:"--truth,required,help:vcf containing truth set."`
	Test   string `arg:"--test,required,help:vcf containing test set."`
}

func (c *cliargs) Description() string {
	return "merge truth and test calls with SURVIVOR"
}

// Output is the path of the merged VCF for a project.
func Output(outdir, name string) string {
	return filepath.Join(outdir, name) + ".survivor.vcf"
}

func Main() {
	cli := cliargs{Options: DefaultOptions(), Name: "svbench", OutDir: "./"}
	arg.MustParse(&cli)
	if err := os.MkdirAll(cli.OutDir, 0755); err != nil {
		tempclean.Fatalf("%s", err)
	}
	if err := Run([]string{cli.Truth, cli.Test}, Output(cli.OutDir, cli.Name), cli.Options); err != nil {
		tempclean.Fatalf("%s", err)
	}
}
