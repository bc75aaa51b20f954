package genotype

import "testing"

func TestIsVariant(t *testing.T) {
	for code := -5; code < 10; code++ {
		i := FromCode(code)
		want := code == 1 || code == 3
		if got := IsVariant(i); got != want {
			t.Errorf("code %d (%s): got %v, want %v", code, i, got, want)
		}
	}
}

func TestFromGT(t *testing.T) {
	cases := []struct {
		gt   []int
		want Indicator
	}{
		{nil, Unknown},
		{[]int{-1, -1}, NoCall},
		{[]int{-1, 1}, NoCall},
		{[]int{0, 0}, HomRef},
		{[]int{0}, HomRef},
		{[]int{0, 1}, Het},
		{[]int{1, 0}, Het},
		{[]int{1, 2}, Het},
		{[]int{1, 1}, HomAlt},
		{[]int{2, 2}, HomAlt},
		{[]int{1}, HomAlt},
	}
	for _, c := range cases {
		if got := FromGT(c.gt); got != c.want {
			t.Errorf("%v: got %s, want %s", c.gt, got, c.want)
		}
	}
}

func TestFromSupport(t *testing.T) {
	if FromSupport('1') != HomAlt || !IsVariant(FromSupport('1')) {
		t.Errorf("expected '1' to qualify")
	}
	if FromSupport('0') != NoCall || IsVariant(FromSupport('0')) {
		t.Errorf("expected '0' to not qualify")
	}
	if FromSupport('x') != Unknown {
		t.Errorf("expected 'x' to be unknown")
	}
}

func TestString(t *testing.T) {
	if Het.String() != "HETEROZYGOUS" {
		t.Errorf("bad name: %s", Het)
	}
	if Indicator(7).String() != "UNKNOWN(7)" {
		t.Errorf("bad name: %s", Indicator(7))
	}
}
