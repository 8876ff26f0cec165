package ui

import (
	"strings"
	"testing"
)

func TestCanvasNormalizesNewlines(t *testing.T) {
	canvas := NewCanvas(8, 4)
	canvas.DrawStringAt(0, 0, "A\nB")

	output := canvas.Render()
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %d", len(lines))
	}
	if got := strings.TrimSpace(stripANSI(lines[0])); got != "A" {
		t.Fatalf("line 0 mismatch, expected A got %q", got)
	}
	if got := strings.TrimSpace(stripANSI(lines[1])); got != "B" {
		t.Fatalf("line 1 mismatch, expected B got %q", got)
	}
}

func TestCanvasDrawPlaced(t *testing.T) {
	t.Run("PaintsAtPlacement", func(t *testing.T) {
		canvas := NewCanvas(20, 6)
		canvas.DrawStringAt(0, 0, strings.Repeat(".\n", 5)+".")
		canvas.DrawPlaced(Placement{X: 4, Y: 2, W: 4, H: 2}, "AAAA\nBBBB")

		lines := strings.Split(canvas.Render(), "\n")
		if idx := strings.Index(stripANSI(lines[2]), "AAAA"); idx != 4 {
			t.Fatalf("expected AAAA at column 4 of row 2, got %d", idx)
		}
		if idx := strings.Index(stripANSI(lines[3]), "BBBB"); idx != 4 {
			t.Fatalf("expected BBBB at column 4 of row 3, got %d", idx)
		}
	})

	t.Run("CropsBelowPlacement", func(t *testing.T) {
		canvas := NewCanvas(10, 5)
		canvas.DrawPlaced(Placement{X: 0, Y: 0, W: 4, H: 2}, "AA\nBB\nCC")

		lines := strings.Split(canvas.Render(), "\n")
		if !strings.Contains(stripANSI(lines[0]), "AA") || !strings.Contains(stripANSI(lines[1]), "BB") {
			t.Fatalf("expected first two rows kept:\n%s", canvas.Render())
		}
		for _, line := range lines[2:] {
			if strings.Contains(stripANSI(line), "CC") {
				t.Fatal("expected third row cropped")
			}
		}
	})

	t.Run("CropsFromTopWhenFlippedAbove", func(t *testing.T) {
		canvas := NewCanvas(10, 5)
		// Anchored above the control: keep the rows nearest it.
		canvas.DrawPlaced(Placement{X: 0, Y: 0, W: 4, H: 2, Above: true}, "AA\nBB\nCC")

		lines := strings.Split(canvas.Render(), "\n")
		if !strings.Contains(stripANSI(lines[0]), "BB") || !strings.Contains(stripANSI(lines[1]), "CC") {
			t.Fatalf("expected bottom rows kept when flipped:\n%s", canvas.Render())
		}
	})
}

func TestBlockSize(t *testing.T) {
	w, h := blockSize("abcd\nab")
	if w != 4 || h != 2 {
		t.Fatalf("expected 4x2, got %dx%d", w, h)
	}
	if w, _ := blockSize("\x1b[1mab\x1b[0m"); w != 2 {
		t.Fatalf("expected styling ignored in width, got %d", w)
	}
}
