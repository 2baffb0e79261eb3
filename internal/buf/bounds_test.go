package buf

import (
	"math"
	"testing"
)

func TestAddSize(t *testing.T) {
	if sum, ok := AddSize(10, 5); !ok || sum != 15 {
		t.Fatalf("AddSize(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddSize(math.MaxUint, 1); ok {
		t.Fatalf("expected overflow when adding to MaxUint")
	}
	if sum, ok := AddSize(math.MaxUint, 0); !ok || sum != math.MaxUint {
		t.Fatalf("AddSize(MaxUint,0)=%d,%v want MaxUint,true", sum, ok)
	}
}

func TestMulSize(t *testing.T) {
	if p, ok := MulSize(0, math.MaxUint); !ok || p != 0 {
		t.Fatalf("MulSize(0,MaxUint)=%d,%v want 0,true", p, ok)
	}
	if p, ok := MulSize(16, 8); !ok || p != 128 {
		t.Fatalf("MulSize(16,8)=%d,%v want 128,true", p, ok)
	}
	if _, ok := MulSize(math.MaxUint/2+1, 2); ok {
		t.Fatalf("expected overflow for MaxUint/2+1 * 2")
	}
}

func TestArraySize(t *testing.T) {
	total, err := ArraySize(8, 4, 16)
	if err != nil || total != 72 {
		t.Fatalf("ArraySize(8,4,16)=%d,%v want 72,nil", total, err)
	}
	if _, err := ArraySize(8, math.MaxUint, 2); err == nil {
		t.Fatalf("expected multiplication overflow")
	}
	if _, err := ArraySize(math.MaxUint, 1, 1); err == nil {
		t.Fatalf("expected addition overflow")
	}
}

func TestFitsUint32(t *testing.T) {
	if !FitsUint32(math.MaxUint32) {
		t.Fatalf("MaxUint32 should fit")
	}
	if FitsUint32(0) != true {
		t.Fatalf("0 should fit")
	}
}
