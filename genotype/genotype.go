// Package genotype maps per-sample calls from a merged VCF onto a small
// closed set of indicators and decides which of them mean "this sample has
// the variant".
package genotype

import "strconv"

// Indicator is the per-sample, per-call genotype code.
type Indicator int

const (
	NoCall Indicator = 0
	Het    Indicator = 1
	HomRef Indicator = 2
	HomAlt Indicator = 3
	// Unknown covers every other encoding.
	Unknown Indicator = -1
)

// IsVariant is true only for Het and HomAlt. NoCall, HomRef and Unknown all
// collapse to false.
func IsVariant(i Indicator) bool {
	switch i {
	case Het, HomAlt:
		return true
	}
	return false
}

func (i Indicator) String() string {
	switch i {
	case NoCall:
		return "NO_CALL"
	case Het:
		return "HETEROZYGOUS"
	case HomRef:
		return "HOMOZYGOUS_REFERENCE"
	case HomAlt:
		return "HOMOZYGOUS_ALTERNATE"
	}
	return "UNKNOWN(" + strconv.Itoa(int(i)) + ")"
}

// FromCode converts a numeric code as written by other tools. Codes outside
// 0..3 are Unknown.
func FromCode(c int) Indicator {
	if c < int(NoCall) || c > int(HomAlt) {
		return Unknown
	}
	return Indicator(c)
}

// FromGT converts decoded GT alleles (missing alleles are negative).
func FromGT(gt []int) Indicator {
	if len(gt) == 0 {
		return Unknown
	}
	nref := 0
	for _, a := range gt {
		if a < 0 {
			return NoCall
		}
		if a == 0 {
			nref++
		}
	}
	if nref == len(gt) {
		return HomRef
	}
	if nref > 0 {
		return Het
	}
	for _, a := range gt[1:] {
		if a != gt[0] {
			return Het
		}
	}
	return HomAlt
}

// FromSupport converts one character of a SURVIVOR SUPP_VEC.
func FromSupport(b byte) Indicator {
	switch b {
	case '1':
		return HomAlt
	case '0':
		return NoCall
	}
	return Unknown
}
