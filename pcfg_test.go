package pcfg

import "testing"

func TestSpan(t *testing.T) {
	s := MakeSpan(2, 5)
	if s.From() != 2 || s.To() != 7 || s.Len() != 5 {
		t.Errorf("unexpected span %v", s)
	}
	l, r := s.Split(2)
	if l != MakeSpan(2, 2) || r != MakeSpan(4, 3) {
		t.Errorf("split of %v at 2 yields %v and %v", s, l, r)
	}
	if e := l.Extend(r); e != s {
		t.Errorf("extending %v by %v should yield %v, is %v", l, r, s, e)
	}
	if s.String() != "(2…7)" {
		t.Errorf("unexpected span string %q", s.String())
	}
}
