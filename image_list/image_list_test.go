package image_list

import (
	"errors"
	"testing"

	"img2pdf/contracts"
)

func img(name string) SourceImage {
	return SourceImage{Name: name, MIMEType: contracts.MIMEPNG, Content: []byte(name), Size: int64(len(name))}
}

func names(l *List) []string {
	var out []string
	for _, it := range l.Items() {
		out = append(out, it.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newABC(t *testing.T) *List {
	t.Helper()
	l := New()
	if _, err := l.AppendImages([]SourceImage{img("A"), img("B"), img("C")}); err != nil {
		t.Fatalf("AppendImages failed: %v", err)
	}
	return l
}

func TestMoveImage(t *testing.T) {
	cases := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"B", "C", "A"}},
		{2, 0, []string{"C", "A", "B"}},
		{1, 2, []string{"A", "C", "B"}},
		{1, 1, []string{"A", "B", "C"}},
	}
	for _, tc := range cases {
		l := newABC(t)
		if err := l.MoveImage(tc.from, tc.to); err != nil {
			t.Fatalf("MoveImage(%d,%d) failed: %v", tc.from, tc.to, err)
		}
		if got := names(l); !equal(got, tc.want) {
			t.Errorf("MoveImage(%d,%d) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}

	t.Run("out of range", func(t *testing.T) {
		l := newABC(t)
		for _, args := range [][2]int{{-1, 0}, {0, 3}, {3, 0}} {
			if err := l.MoveImage(args[0], args[1]); !errors.Is(err, contracts.ErrIndexOutOfRange) {
				t.Errorf("MoveImage(%d,%d) error = %v, want ErrIndexOutOfRange", args[0], args[1], err)
			}
		}
		if got := names(l); !equal(got, []string{"A", "B", "C"}) {
			t.Errorf("list changed after failed moves: %v", got)
		}
	})
}

func TestRemoveImage(t *testing.T) {
	l := newABC(t)
	if err := l.RemoveImage(1); err != nil {
		t.Fatalf("RemoveImage failed: %v", err)
	}
	if got := names(l); !equal(got, []string{"A", "C"}) {
		t.Errorf("RemoveImage(1) = %v, want [A C]", got)
	}
	if err := l.RemoveImage(2); !errors.Is(err, contracts.ErrIndexOutOfRange) {
		t.Errorf("RemoveImage(2) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestAppendImages(t *testing.T) {
	t.Run("all unsupported leaves list unchanged", func(t *testing.T) {
		l := newABC(t)
		batch := []SourceImage{
			{Name: "a.gif", MIMEType: "image/gif"},
			{Name: "b.txt", MIMEType: "text/plain"},
			{Name: "c.tiff", MIMEType: "image/tiff"},
		}
		rejected, err := l.AppendImages(batch)
		var notice *contracts.UnsupportedFilesError
		if !errors.As(err, &notice) {
			t.Fatalf("expected UnsupportedFilesError, got %v", err)
		}
		if !errors.Is(err, contracts.ErrUnsupportedFileType) {
			t.Error("notice should match ErrUnsupportedFileType")
		}
		if len(notice.Names) != 3 || len(rejected) != 3 {
			t.Errorf("expected 3 rejected files, got names=%v rejected=%d", notice.Names, len(rejected))
		}
		if got := names(l); !equal(got, []string{"A", "B", "C"}) {
			t.Errorf("list changed: %v", got)
		}
	})

	t.Run("mixed batch keeps supported in order", func(t *testing.T) {
		l := New()
		batch := []SourceImage{
			{Name: "1.png", MIMEType: contracts.MIMEPNG},
			{Name: "2.gif", MIMEType: "image/gif"},
			{Name: "3.jpg", MIMEType: contracts.MIMEJPG},
			{Name: "4.webp", MIMEType: contracts.MIMEWEBP},
			{Name: "5.jpeg", MIMEType: contracts.MIMEJPEG},
		}
		rejected, err := l.AppendImages(batch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rejected) != 1 || rejected[0].Name != "2.gif" {
			t.Errorf("unexpected rejected set: %v", rejected)
		}
		if got := names(l); !equal(got, []string{"1.png", "3.jpg", "4.webp", "5.jpeg"}) {
			t.Errorf("unexpected order: %v", got)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		l := New()
		if _, err := l.AppendImages(nil); err != nil {
			t.Errorf("empty batch should not error: %v", err)
		}
	})
}

func TestClearAndSnapshot(t *testing.T) {
	l := newABC(t)
	snap := l.Items()
	snap[0].Name = "changed"
	if l.Items()[0].Name != "A" {
		t.Error("Items should return a copy")
	}
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len after Clear = %d", l.Len())
	}
}
