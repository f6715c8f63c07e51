package textbridge

import "testing"

func TestSource_Union(t *testing.T) {
	var zero Source
	if zero.Kind() != SourceInvalid {
		t.Fatal("zero Source should be invalid")
	}

	p := PathSource("/models/en.tb")
	if p.Kind() != SourcePath || p.Path() != "/models/en.tb" {
		t.Fatalf("PathSource = %v", p)
	}

	f := FDSource(5)
	if f.Kind() != SourceFD || f.FD() != 5 {
		t.Fatalf("FDSource = %v", f)
	}

	r := RegionSource(5, 100, 2048)
	if r.Kind() != SourceRegion {
		t.Fatalf("RegionSource kind = %v", r.Kind())
	}
	offset, length := r.Region()
	if offset != 100 || length != 2048 {
		t.Fatalf("Region = (%d, %d)", offset, length)
	}
}

func TestSource_String(t *testing.T) {
	cases := []struct {
		src  Source
		want string
	}{
		{PathSource("m.tb"), "path(m.tb)"},
		{FDSource(3), "fd(3)"},
		{RegionSource(3, 8, 16), "fd(3)+8:16"},
		{Source{}, "invalid"},
	}
	for _, c := range cases {
		if got := c.src.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}
